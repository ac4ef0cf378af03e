// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability.
//
// Production code injects [Real]; tests inject [Fake] and drive time
// forward deterministically with Advance. Any component that polls,
// schedules, or timestamps takes a Clock instead of calling the time
// package directly, so its timing behavior can be exercised in tests
// without real waiting.
package clock
