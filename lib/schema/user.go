// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// Role is an operator's role as assigned by the service.
type Role string

const (
	RoleEmployee      Role = "employee"
	RoleManager       Role = "manager"
	RoleSecurityAdmin Role = "security_admin"
)

// Label returns the display form of the role.
func (role Role) Label() string {
	switch role {
	case RoleEmployee:
		return "Employee"
	case RoleManager:
		return "Manager"
	case RoleSecurityAdmin:
		return "Security Admin"
	default:
		return string(role)
	}
}

// Clearance levels. The service assigns a level per role; capability
// checks compare against these thresholds rather than role names so
// that a new role slots in by level alone.
const (
	// ClearanceEmployee is the baseline level with read-only access
	// to inventory and the dashboard.
	ClearanceEmployee = 1
	// ClearanceManager is the threshold for inventory mutation and
	// security data visibility.
	ClearanceManager = 2
	// ClearanceSecurityAdmin is the highest level.
	ClearanceSecurityAdmin = 3
)

// User is the operator identity resolved by the service. Immutable for
// the lifetime of a session; replaced wholesale on re-login.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        Role   `json:"role"`
	Department  string `json:"department"`
	IsActive    bool   `json:"is_active"`
	AccessLevel int    `json:"access_level"`
	CreatedAt   Time   `json:"created_at"`
}
