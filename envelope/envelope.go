// SPDX-License-Identifier: EPL-2.0

package envelope

import (
	"fmt"
	"math"
)

const (
	// MaxValue bounds breakpoint values; the outro may be boosted past unity.
	MaxValue = 1.5
	// Floor replaces zero as the target of exponential ramps.
	Floor = 0.0001
)

// Curve is the shape used to reach a breakpoint from the one before it.
type Curve int

const (
	// Step holds the previous value until the breakpoint, then jumps.
	Step Curve = iota
	Linear
	Exponential
)

func (c Curve) String() string {
	switch c {
	case Step:
		return "step"
	case Linear:
		return "linear"
	case Exponential:
		return "exponential"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

type Breakpoint struct {
	Time  float64
	Value float64
	Curve Curve
}

type Envelope struct {
	Points []Breakpoint
}

// Constant is a flat envelope at v.
func Constant(v float64) Envelope {
	return Envelope{Points: []Breakpoint{{Time: 0, Value: v, Curve: Step}}}
}

// Validate checks that the first breakpoint is at 0, that times strictly
// increase and that every value lies in [0, MaxValue].
func (e Envelope) Validate() error {
	if len(e.Points) == 0 {
		return ErrEmptyEnvelope
	}
	if e.Points[0].Time != 0 {
		return fmt.Errorf("first breakpoint at %v: %w", e.Points[0].Time, ErrInvalidPoint)
	}

	for i, p := range e.Points {
		if math.IsNaN(p.Value) || p.Value < 0 || p.Value > MaxValue {
			return fmt.Errorf("breakpoint %d value %v: %w", i, p.Value, ErrInvalidPoint)
		}
		if math.IsNaN(p.Time) || math.IsInf(p.Time, 0) {
			return fmt.Errorf("breakpoint %d time %v: %w", i, p.Time, ErrInvalidPoint)
		}
		if i > 0 && p.Time <= e.Points[i-1].Time {
			return fmt.Errorf("breakpoint %d at %v not after %v: %w", i, p.Time, e.Points[i-1].Time, ErrInvalidPoint)
		}
		if p.Curve < Step || p.Curve > Exponential {
			return fmt.Errorf("breakpoint %d curve %v: %w", i, p.Curve, ErrInvalidPoint)
		}
	}
	return nil
}

// At evaluates the envelope at time t (seconds).
func (e Envelope) At(t float64) float64 {
	n := len(e.Points)
	if n == 0 {
		return 0
	}
	if t <= e.Points[0].Time {
		return e.Points[0].Value
	}
	if t >= e.Points[n-1].Time {
		return e.Points[n-1].Value
	}

	// First breakpoint strictly after t.
	lo, hi := 1, n-1
	for lo < hi {
		mid := (lo + hi) / 2
		if e.Points[mid].Time > t {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return interpolate(e.Points[lo-1], e.Points[lo], t)
}

// Fill writes the gain for frames start, start+1, ... at rate into dst.
// Each value equals At(frame/rate).
func (e Envelope) Fill(dst []float32, start, rate int) {
	n := len(e.Points)
	if n == 0 {
		clear(dst)
		return
	}

	next := 0 // first breakpoint with Time > t
	for i := range dst {
		t := float64(start+i) / float64(rate)
		for next < n && e.Points[next].Time <= t {
			next++
		}

		switch {
		case t <= e.Points[0].Time:
			dst[i] = float32(e.Points[0].Value)
		case next >= n:
			dst[i] = float32(e.Points[n-1].Value)
		default:
			dst[i] = float32(interpolate(e.Points[next-1], e.Points[next], t))
		}
	}
}

// Peak is the largest breakpoint value.
func (e Envelope) Peak() float64 {
	var peak float64
	for _, p := range e.Points {
		peak = max(peak, p.Value)
	}
	return peak
}

func interpolate(a, b Breakpoint, t float64) float64 {
	frac := (t - a.Time) / (b.Time - a.Time)

	switch b.Curve {
	case Linear:
		return a.Value + (b.Value-a.Value)*frac
	case Exponential:
		if a.Value <= 0 || b.Value <= 0 {
			return a.Value + (b.Value-a.Value)*frac
		}
		return a.Value * math.Pow(b.Value/a.Value, frac)
	default:
		return a.Value
	}
}
