// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"testing"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

var filterFixtures = []schema.Resource{
	{ID: "r-1", Name: "Tumbler", Type: schema.ResourceVehicle, Category: "Armored Vehicle", Location: "Cave Garage B3", Status: schema.ResourceActive, AssignedTo: "bruce.wayne"},
	{ID: "r-2", Name: "Grapple Gun", Type: schema.ResourceEquipment, Category: "Field Equipment", Location: "Armory", Status: schema.ResourceAssigned, AssignedTo: "bruce.wayne"},
	{ID: "r-3", Name: "Perimeter Sensor Array", Type: schema.ResourceSecurityDevice, Category: "Surveillance", Location: "Grounds", Status: schema.ResourceMaintenance},
	{ID: "r-4", Name: "Batwing", Type: schema.ResourceVehicle, Category: "Aircraft", Location: "Cave Hangar", Status: schema.ResourceMaintenance},
}

func idsOf(resources []schema.Resource) []string {
	ids := make([]string, len(resources))
	for index, resource := range resources {
		ids[index] = resource.ID
	}
	return ids
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	filter := ResourceFilter{}
	if got := filter.Apply(filterFixtures); len(got) != len(filterFixtures) {
		t.Fatalf("empty filter kept %d of %d", len(got), len(filterFixtures))
	}
}

func TestQueryMatchesAcrossFields(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"tumbler", []string{"r-1"}},           // name, case-insensitive
		{"cave", []string{"r-1", "r-4"}},       // location
		{"surveillance", []string{"r-3"}},      // category
		{"bruce", []string{"r-1", "r-2"}},      // assignee
		{"zzz", nil},                           // no field matches
	}
	for _, testCase := range cases {
		filter := ResourceFilter{Query: testCase.query}
		got := idsOf(filter.Apply(filterFixtures))
		if len(got) != len(testCase.want) {
			t.Errorf("query %q kept %v, want %v", testCase.query, got, testCase.want)
			continue
		}
		for index := range got {
			if got[index] != testCase.want[index] {
				t.Errorf("query %q kept %v, want %v", testCase.query, got, testCase.want)
				break
			}
		}
	}
}

func TestCriteriaComposeWithAND(t *testing.T) {
	filter := ResourceFilter{
		Query:  "cave",
		Status: schema.ResourceMaintenance,
		Type:   schema.ResourceVehicle,
	}
	got := idsOf(filter.Apply(filterFixtures))
	if len(got) != 1 || got[0] != "r-4" {
		t.Fatalf("composed filter kept %v, want [r-4]", got)
	}
}

func TestCriteriaOrderIrrelevant(t *testing.T) {
	// The same three criteria, set in any order, keep the same rows.
	byQueryFirst := ResourceFilter{Query: "cave"}
	byQueryFirst.Status = schema.ResourceMaintenance
	byQueryFirst.Type = schema.ResourceVehicle

	byTypeFirst := ResourceFilter{Type: schema.ResourceVehicle}
	byTypeFirst.Status = schema.ResourceMaintenance
	byTypeFirst.Query = "cave"

	first := idsOf(byQueryFirst.Apply(filterFixtures))
	second := idsOf(byTypeFirst.Apply(filterFixtures))
	if len(first) != len(second) {
		t.Fatalf("order-dependent filtering: %v vs %v", first, second)
	}
	for index := range first {
		if first[index] != second[index] {
			t.Fatalf("order-dependent filtering: %v vs %v", first, second)
		}
	}
}

func TestCycleStatusWrapsToUnset(t *testing.T) {
	filter := ResourceFilter{}
	seen := map[schema.ResourceStatus]bool{}
	for range schema.ResourceStatuses {
		filter.CycleStatus()
		if filter.Status == "" {
			t.Fatal("cycle reached unset before visiting every status")
		}
		seen[filter.Status] = true
	}
	if len(seen) != len(schema.ResourceStatuses) {
		t.Fatalf("cycle visited %d of %d statuses", len(seen), len(schema.ResourceStatuses))
	}
	filter.CycleStatus()
	if filter.Status != "" {
		t.Fatalf("cycle did not wrap to unset, got %q", filter.Status)
	}
}

var alertFixtures = []schema.SecurityAlert{
	{ID: "a-1", Title: "Perimeter breach", Message: "Motion on the north fence", Location: "North Gate", Severity: schema.SeverityCritical, Status: schema.AlertActive},
	{ID: "a-2", Title: "Badge reuse", Message: "Same badge at two doors", Location: "Lab", Severity: schema.SeverityLow, Status: schema.AlertInvestigating},
	{ID: "a-3", Title: "Fence sensor fault", Message: "Perimeter segment 4 offline", Location: "North Gate", Severity: schema.SeverityCritical, Status: schema.AlertResolved},
}

func alertIDs(alerts []schema.SecurityAlert) []string {
	ids := make([]string, len(alerts))
	for index, alert := range alerts {
		ids[index] = alert.ID
	}
	return ids
}

func TestAlertFilterBySeverity(t *testing.T) {
	filter := AlertFilter{Severity: schema.SeverityCritical}
	kept := filter.Apply(alertFixtures)
	if len(kept) != 2 || kept[0].ID != "a-1" || kept[1].ID != "a-3" {
		t.Fatalf("severity filter kept %v", alertIDs(kept))
	}
}

func TestAlertFilterByStatus(t *testing.T) {
	filter := AlertFilter{Status: schema.AlertInvestigating}
	kept := filter.Apply(alertFixtures)
	if len(kept) != 1 || kept[0].ID != "a-2" {
		t.Fatalf("status filter kept %v", alertIDs(kept))
	}
}

func TestAlertQueryMatchesAcrossFields(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"badge", []string{"a-2"}},            // title, case-insensitive
		{"perimeter", []string{"a-1", "a-3"}}, // title and message
		{"lab", []string{"a-2"}},              // location
		{"zzz", nil},                          // no field matches
	}
	for _, testCase := range cases {
		filter := AlertFilter{Query: testCase.query}
		got := alertIDs(filter.Apply(alertFixtures))
		if len(got) != len(testCase.want) {
			t.Errorf("query %q kept %v, want %v", testCase.query, got, testCase.want)
			continue
		}
		for index := range got {
			if got[index] != testCase.want[index] {
				t.Errorf("query %q kept %v, want %v", testCase.query, got, testCase.want)
				break
			}
		}
	}
}

func TestAlertCriteriaComposeWithAND(t *testing.T) {
	filter := AlertFilter{
		Query:    "perimeter",
		Severity: schema.SeverityCritical,
		Status:   schema.AlertResolved,
	}
	got := alertIDs(filter.Apply(alertFixtures))
	if len(got) != 1 || got[0] != "a-3" {
		t.Fatalf("composed filter kept %v, want [a-3]", got)
	}
}

func TestAlertCriteriaOrderIrrelevant(t *testing.T) {
	byQueryFirst := AlertFilter{Query: "perimeter"}
	byQueryFirst.Severity = schema.SeverityCritical
	byQueryFirst.Status = schema.AlertResolved

	byStatusFirst := AlertFilter{Status: schema.AlertResolved}
	byStatusFirst.Severity = schema.SeverityCritical
	byStatusFirst.Query = "perimeter"

	first := alertIDs(byQueryFirst.Apply(alertFixtures))
	second := alertIDs(byStatusFirst.Apply(alertFixtures))
	if len(first) != len(second) {
		t.Fatalf("order-dependent filtering: %v vs %v", first, second)
	}
	for index := range first {
		if first[index] != second[index] {
			t.Fatalf("order-dependent filtering: %v vs %v", first, second)
		}
	}
}
