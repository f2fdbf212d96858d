// SPDX-License-Identifier: EPL-2.0

// Package envelope schedules per-track gain curves for a mix.
//
// An Envelope is an ordered list of breakpoints in absolute render time. Each
// breakpoint names the value reached at its time and the curve used to get
// there from the previous breakpoint. Builders exist for every track kind of
// a mix: the intro bed, the speech, the outro bed and break effects.
package envelope
