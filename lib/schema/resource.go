// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// ResourceType classifies a physical resource.
type ResourceType string

const (
	ResourceEquipment      ResourceType = "equipment"
	ResourceVehicle        ResourceType = "vehicle"
	ResourceSecurityDevice ResourceType = "security_device"
)

// ResourceTypes lists every known type in display order. Used to
// populate the type selector in the resource form.
var ResourceTypes = []ResourceType{
	ResourceEquipment,
	ResourceVehicle,
	ResourceSecurityDevice,
}

// Label returns the display form of the resource type.
func (resourceType ResourceType) Label() string {
	switch resourceType {
	case ResourceEquipment:
		return "Equipment"
	case ResourceVehicle:
		return "Vehicle"
	case ResourceSecurityDevice:
		return "Security Device"
	default:
		return string(resourceType)
	}
}

// ResourceStatus is the lifecycle state of a resource.
type ResourceStatus string

const (
	ResourceActive      ResourceStatus = "active"
	ResourceMaintenance ResourceStatus = "maintenance"
	ResourceInactive    ResourceStatus = "inactive"
	ResourceAssigned    ResourceStatus = "assigned"
)

// ResourceStatuses lists every known status in display order.
var ResourceStatuses = []ResourceStatus{
	ResourceActive,
	ResourceMaintenance,
	ResourceInactive,
	ResourceAssigned,
}

// Label returns the display form of the resource status.
func (status ResourceStatus) Label() string {
	switch status {
	case ResourceActive:
		return "Active"
	case ResourceMaintenance:
		return "Maintenance"
	case ResourceInactive:
		return "Inactive"
	case ResourceAssigned:
		return "Assigned"
	default:
		return string(status)
	}
}

// Resource is a single inventory record as returned by the service.
type Resource struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Type            ResourceType   `json:"type"`
	Category        string         `json:"category"`
	Location        string         `json:"location"`
	Status          ResourceStatus `json:"status"`
	AssignedTo      string         `json:"assigned_to,omitempty"`
	Description     string         `json:"description"`
	AcquisitionDate Time           `json:"acquisition_date"`
	LastMaintenance Time           `json:"last_maintenance,omitempty"`
	CreatedAt       Time           `json:"created_at"`
	CreatedBy       string         `json:"created_by"`
}

// ResourceDraft is the create/update payload. The validate tags drive
// the client-side required-field check ([ValidateDraft]) that runs
// before any request is sent; the service performs its own
// authoritative validation on receipt.
type ResourceDraft struct {
	Name            string         `json:"name"             validate:"required"`
	Type            ResourceType   `json:"type"             validate:"required"`
	Category        string         `json:"category"         validate:"required"`
	Location        string         `json:"location"         validate:"required"`
	Status          ResourceStatus `json:"status"           validate:"required"`
	AssignedTo      string         `json:"assigned_to,omitempty"`
	Description     string         `json:"description"`
	AcquisitionDate Time           `json:"acquisition_date" validate:"required"`
}

// DraftFromResource converts an existing resource to a draft for the
// edit form, preserving every editable field.
func DraftFromResource(resource Resource) ResourceDraft {
	return ResourceDraft{
		Name:            resource.Name,
		Type:            resource.Type,
		Category:        resource.Category,
		Location:        resource.Location,
		Status:          resource.Status,
		AssignedTo:      resource.AssignedTo,
		Description:     resource.Description,
		AcquisitionDate: resource.AcquisitionDate,
	}
}
