// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Is(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	sentinels := map[Stage]error{
		StageDecode:    ErrDecode,
		StageConfigure: ErrConfiguration,
		StageRender:    ErrRender,
		StageEncode:    ErrEncode,
	}

	for stage, sentinel := range sentinels {
		err := fmt.Errorf("outer: %w", stageError(stage, cause))

		if !errors.Is(err, sentinel) {
			t.Errorf("%s: errors.Is(%v) = false", stage, sentinel)
		}
		if !errors.Is(err, cause) {
			t.Errorf("%s: cause not reachable", stage)
		}
		for other, s := range sentinels {
			if other != stage && errors.Is(err, s) {
				t.Errorf("%s error matches %s sentinel", stage, other)
			}
		}
	}
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := stageError(StageRender, errors.New("out of tracks"))
	if got, want := err.Error(), "audmix render: out of tracks"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
