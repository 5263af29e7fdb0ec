// Package options turns raw, string-typed launch input (CLI flags and config
// profiles) into a validated engine.LaunchConfig.
package options

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rntlauncher/rnt/internal/engine"
	"github.com/rntlauncher/rnt/internal/log"
)

// Options is the untyped form of a launch. Profiles in config.yaml decode
// into it and CLI flags fill it in; empty fields mean "not set".
type Options struct {
	IWAD        string   `mapstructure:"iwad" yaml:"iwad,omitempty"`
	Warp        *int     `mapstructure:"warp" yaml:"warp,omitempty"`
	Renderer    string   `mapstructure:"renderer" yaml:"renderer,omitempty"`
	Skill       string   `mapstructure:"skill" yaml:"skill,omitempty"`
	Complevel   string   `mapstructure:"complevel" yaml:"complevel,omitempty"`
	Pistolstart *bool    `mapstructure:"pistolstart" yaml:"pistolstart,omitempty"`
	Files       []string `mapstructure:"files" yaml:"files,omitempty"`
	Extra       []string `mapstructure:"extra" yaml:"extra,omitempty"`
}

var (
	ErrMissingMainAsset   = errors.New("iwad is required")
	ErrLevelOutOfRange    = errors.New("warp level must be between 1 and 255")
	ErrUnknownRenderer    = errors.New("unknown renderer")
	ErrUnknownSkill       = errors.New("unknown skill")
	ErrUnknownCompatLevel = errors.New("unknown complevel")
)

// Resolver maps an asset name to the path handed to the engine.
type Resolver interface {
	Resolve(ctx context.Context, name string) string
}

// Merge overlays layers from lowest to highest precedence. Scalars set in a
// later layer replace earlier ones; files and extra accumulate in layer order.
func Merge(layers ...Options) Options {
	var out Options
	for _, l := range layers {
		if l.IWAD != "" {
			out.IWAD = l.IWAD
		}
		if l.Warp != nil {
			v := *l.Warp
			out.Warp = &v
		}
		if l.Renderer != "" {
			out.Renderer = l.Renderer
		}
		if l.Skill != "" {
			out.Skill = l.Skill
		}
		if l.Complevel != "" {
			out.Complevel = l.Complevel
		}
		if l.Pistolstart != nil {
			v := *l.Pistolstart
			out.Pistolstart = &v
		}
		out.Files = append(out.Files, l.Files...)
		out.Extra = append(out.Extra, l.Extra...)
	}
	return out
}

// Validate checks o without resolving any asset paths.
func (o Options) Validate() error {
	_, err := o.typed()
	return err
}

// ValidateValues checks the fields that are set, without requiring an iwad.
// Profiles are partial and only need this.
func (o Options) ValidateValues() error {
	_, errs := o.parse()
	return errors.Join(errs...)
}

// Build validates o and produces the LaunchConfig. Asset names go through
// resolver when it is non-nil. All validation failures are reported together.
func Build(ctx context.Context, o Options, resolver Resolver) (engine.LaunchConfig, error) {
	cfg, err := o.typed()
	if err != nil {
		log.ErrorErr(log.CatConfig, "Invalid launch options", err)
		return engine.LaunchConfig{}, err
	}

	if resolver != nil {
		cfg.MainAsset = resolver.Resolve(ctx, cfg.MainAsset)
		for i, f := range cfg.SupplementalAssets {
			cfg.SupplementalAssets[i] = resolver.Resolve(ctx, f)
		}
	}
	return cfg, nil
}

func (o Options) typed() (engine.LaunchConfig, error) {
	cfg, errs := o.parse()
	if o.IWAD == "" {
		errs = append([]error{ErrMissingMainAsset}, errs...)
	}
	if len(errs) > 0 {
		return engine.LaunchConfig{}, errors.Join(errs...)
	}
	return cfg, nil
}

func (o Options) parse() (engine.LaunchConfig, []error) {
	var errs []error

	var level uint8
	if o.Warp != nil {
		if *o.Warp < 1 || *o.Warp > math.MaxUint8 {
			errs = append(errs, fmt.Errorf("%w: got %d", ErrLevelOutOfRange, *o.Warp))
		} else {
			level = uint8(*o.Warp)
		}
	}
	renderer, err := ParseRenderer(o.Renderer)
	if err != nil {
		errs = append(errs, err)
	}
	skill, err := ParseSkill(o.Skill)
	if err != nil {
		errs = append(errs, err)
	}
	complevel, err := ParseCompatLevel(o.Complevel)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return engine.LaunchConfig{}, errs
	}

	return engine.LaunchConfig{
		MainAsset:          o.IWAD,
		StartLevel:         level,
		Renderer:           renderer,
		Skill:              skill,
		CompatibilityLevel: complevel,
		RestartEachLevel:   o.Pistolstart != nil && *o.Pistolstart,
		SupplementalAssets: clone(o.Files),
		Passthrough:        clone(o.Extra),
	}, nil
}

func clone(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
