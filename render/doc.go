// SPDX-License-Identifier: EPL-2.0

// Package render mixes scheduled tracks into a single asset offline.
//
// Every track is an asset placed at an offset and scaled by a gain envelope
// in absolute render time. Tracks are summed without clipping protection;
// choosing volumes that avoid clipping is left to the caller.
//
// Rendering is a pure function of its inputs. Tracks may be rendered
// concurrently, but they are always summed in the order given, so the
// output is bit-identical whatever the parallelism.
package render
