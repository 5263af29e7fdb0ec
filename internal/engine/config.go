package engine

import (
	"errors"
	"fmt"
)

// Executable is the binary the compiled arguments are meant for.
const Executable = "dsda-doom"

// LaunchConfig describes one engine start. Zero values of the optional
// fields mean "let the engine decide" and compile to no tokens.
type LaunchConfig struct {
	MainAsset          string
	StartLevel         uint8 // 0 = not set
	Renderer           Renderer
	Skill              Skill
	CompatibilityLevel CompatLevel
	RestartEachLevel   bool
	SupplementalAssets []string
	Passthrough        []string
}

var (
	ErrEmptyMainAsset = errors.New("main asset is required")
	ErrInvalidEnum    = errors.New("value outside declared set")
)

// Validate reports configurations Compile must never see: an empty main
// asset or an enum value that was not built from the declared constants.
func (c LaunchConfig) Validate() error {
	var errs []error
	if c.MainAsset == "" {
		errs = append(errs, ErrEmptyMainAsset)
	}
	if !c.Renderer.Valid() {
		errs = append(errs, fmt.Errorf("renderer %d: %w", uint8(c.Renderer), ErrInvalidEnum))
	}
	if !c.Skill.Valid() {
		errs = append(errs, fmt.Errorf("skill %d: %w", uint8(c.Skill), ErrInvalidEnum))
	}
	if !c.CompatibilityLevel.Valid() {
		errs = append(errs, fmt.Errorf("complevel %d: %w", uint8(c.CompatibilityLevel), ErrInvalidEnum))
	}
	return errors.Join(errs...)
}
