package engine

import "strconv"

// Flag names understood by dsda-doom.
const (
	FlagIWAD        = "-iwad"
	FlagWarp        = "-warp"
	FlagVidMode     = "-vidmode"
	FlagSkill       = "-skill"
	FlagCompLevel   = "-complevel"
	FlagPistolStart = "-pistolstart"
	FlagFile        = "-file"
)

// Segment is the run of tokens contributed by one LaunchConfig field.
type Segment struct {
	Name   string
	Tokens []string
}

type segmentBuilder struct {
	name  string
	build func(cfg LaunchConfig, dst []string) []string
}

// segments is applied in order. Reordering this table changes the command line.
var segments = [...]segmentBuilder{
	{"iwad", appendMainAsset},
	{"warp", appendStartLevel},
	{"vidmode", appendRenderer},
	{"skill", appendSkill},
	{"complevel", appendCompatLevel},
	{"pistolstart", appendRestartEachLevel},
	{"file", appendSupplementalAssets},
	{"passthrough", appendPassthrough},
}

// Compile returns the argument list for cfg, without the executable name.
// It panics if cfg holds an enum value outside its declared set; run
// Validate on configurations assembled from untyped input.
func Compile(cfg LaunchConfig) []string {
	args := make([]string, 0, 12+len(cfg.SupplementalAssets)+len(cfg.Passthrough))
	for _, s := range segments {
		args = s.build(cfg, args)
	}
	return args
}

// Explain returns the non-empty segments of cfg in command-line order.
// Flatten(Explain(cfg)) equals Compile(cfg).
func Explain(cfg LaunchConfig) []Segment {
	var out []Segment
	for _, s := range segments {
		tokens := s.build(cfg, nil)
		if len(tokens) == 0 {
			continue
		}
		out = append(out, Segment{Name: s.name, Tokens: tokens})
	}
	return out
}

// Flatten concatenates segment tokens.
func Flatten(segs []Segment) []string {
	var args []string
	for _, s := range segs {
		args = append(args, s.Tokens...)
	}
	return args
}

func appendMainAsset(cfg LaunchConfig, dst []string) []string {
	return append(dst, FlagIWAD, cfg.MainAsset)
}

func appendStartLevel(cfg LaunchConfig, dst []string) []string {
	if cfg.StartLevel == 0 {
		return dst
	}
	return append(dst, FlagWarp, strconv.Itoa(int(cfg.StartLevel)))
}

func appendRenderer(cfg LaunchConfig, dst []string) []string {
	if cfg.Renderer == RendererDefault {
		return dst
	}
	return append(dst, FlagVidMode, cfg.Renderer.Token())
}

func appendSkill(cfg LaunchConfig, dst []string) []string {
	if cfg.Skill == SkillDefault {
		return dst
	}
	return append(dst, FlagSkill, cfg.Skill.Token())
}

func appendCompatLevel(cfg LaunchConfig, dst []string) []string {
	if cfg.CompatibilityLevel == CompatDefault {
		return dst
	}
	return append(dst, FlagCompLevel, cfg.CompatibilityLevel.Token())
}

func appendRestartEachLevel(cfg LaunchConfig, dst []string) []string {
	if !cfg.RestartEachLevel {
		return dst
	}
	return append(dst, FlagPistolStart)
}

func appendSupplementalAssets(cfg LaunchConfig, dst []string) []string {
	if len(cfg.SupplementalAssets) == 0 {
		return dst
	}
	dst = append(dst, FlagFile)
	return append(dst, cfg.SupplementalAssets...)
}

func appendPassthrough(cfg LaunchConfig, dst []string) []string {
	return append(dst, cfg.Passthrough...)
}
