// SPDX-License-Identifier: EPL-2.0

package audiotest

import "testing"

func TestSpeech_Layout(t *testing.T) {
	t.Parallel()

	a := Speech(1000, Span{Seconds: 1}, Span{Seconds: 0.5, Silent: true}, Span{Seconds: 1})

	if a.Frames() != 2500 {
		t.Fatalf("Frames() = %d, want 2500", a.Frames())
	}
	if p := Peak(a, 1.0, 1.5); p != 0 {
		t.Errorf("gap peak = %v, want 0", p)
	}
	if p := Peak(a, 0, 1); p < 0.45 {
		t.Errorf("tone peak = %v, want about 0.5", p)
	}
}

func TestConcat_Empty(t *testing.T) {
	t.Parallel()

	if Concat() != nil {
		t.Error("Concat() = non-nil, want nil")
	}
}
