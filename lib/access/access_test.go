// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package access

import (
	"testing"

	"github.com/sentinel-ops/sentinel/lib/schema"
)

func TestCapabilityThreshold(t *testing.T) {
	cases := []struct {
		name       string
		user       schema.User
		wantMutate bool
	}{
		{
			name:       "employee",
			user:       schema.User{Role: schema.RoleEmployee, AccessLevel: schema.ClearanceEmployee},
			wantMutate: false,
		},
		{
			name:       "manager",
			user:       schema.User{Role: schema.RoleManager, AccessLevel: schema.ClearanceManager},
			wantMutate: true,
		},
		{
			name:       "security admin",
			user:       schema.User{Role: schema.RoleSecurityAdmin, AccessLevel: schema.ClearanceSecurityAdmin},
			wantMutate: true,
		},
		{
			name: "admin role with downgraded level",
			// The level decides, not the role label.
			user:       schema.User{Role: schema.RoleSecurityAdmin, AccessLevel: 1},
			wantMutate: false,
		},
		{
			name:       "zero value user",
			user:       schema.User{},
			wantMutate: false,
		},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := CanMutateInventory(testCase.user); got != testCase.wantMutate {
				t.Errorf("CanMutateInventory = %v, want %v", got, testCase.wantMutate)
			}
			if got := CanViewSecurityData(testCase.user); got != testCase.wantMutate {
				t.Errorf("CanViewSecurityData = %v, want %v", got, testCase.wantMutate)
			}
			if got := CanTransitionAlerts(testCase.user); got != testCase.wantMutate {
				t.Errorf("CanTransitionAlerts = %v, want %v", got, testCase.wantMutate)
			}
		})
	}
}
