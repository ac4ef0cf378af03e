// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package access decides what an authenticated operator may do in the
// console. Decisions derive from the operator's numeric access level,
// not the role name: the service enforces the same threshold, so the
// two stay in agreement even if role labels change.
//
// Callers use these predicates to decide whether a control exists at
// all. A denied capability means the control is absent from the
// interface, never rendered disabled.
package access

import "github.com/sentinel-ops/sentinel/lib/schema"

// mutationThreshold is the minimum access level for inventory writes
// and for viewing the security feeds. Managers and security admins
// clear it; employees do not.
const mutationThreshold = schema.ClearanceManager

// CanMutateInventory reports whether the operator may create, edit, or
// delete inventory records.
func CanMutateInventory(user schema.User) bool {
	return user.AccessLevel >= mutationThreshold
}

// CanViewSecurityData reports whether the operator may read the
// security alert and access log feeds.
func CanViewSecurityData(user schema.User) bool {
	return user.AccessLevel >= mutationThreshold
}

// CanTransitionAlerts reports whether the operator may move a security
// alert through its lifecycle. Alert mutation rides the same threshold
// as viewing: anyone cleared to see the feed may work it.
func CanTransitionAlerts(user schema.User) bool {
	return CanViewSecurityData(user)
}
