// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"fmt"
)

var (
	ErrDecode        = errors.New("decode failed")
	ErrConfiguration = errors.New("invalid mix configuration")
	ErrRender        = errors.New("render failed")
	ErrEncode        = errors.New("encode failed")
	ErrBusy          = errors.New("mixer is busy")
	ErrNoSpeech      = errors.New("no speech asset")
	ErrNoIntroAsset  = errors.New("mixing enabled but no intro or music asset")
)

// Stage names the part of a mix that failed.
type Stage string

const (
	StageDecode    Stage = "decode"
	StageConfigure Stage = "configure"
	StageRender    Stage = "render"
	StageEncode    Stage = "encode"
)

// Error is returned for every failed mix. errors.Is matches both the
// wrapped cause and the sentinel of the stage (ErrDecode, ErrConfiguration,
// ErrRender, ErrEncode).
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("audmix %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch e.Stage {
	case StageDecode:
		return target == ErrDecode
	case StageConfigure:
		return target == ErrConfiguration
	case StageRender:
		return target == ErrRender
	case StageEncode:
		return target == ErrEncode
	}
	return false
}

func stageError(stage Stage, err error) error {
	return &Error{Stage: stage, Err: err}
}
