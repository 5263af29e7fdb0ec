package engine

import "fmt"

// Renderer selects the video backend.
type Renderer uint8

const (
	RendererDefault Renderer = iota // engine default, emits nothing
	RendererSoftware
	RendererOpenGL
)

// Renderers lists every selectable renderer in declaration order.
var Renderers = []Renderer{RendererSoftware, RendererOpenGL}

// Valid reports whether r is one of the declared renderer values.
func (r Renderer) Valid() bool {
	return r <= RendererOpenGL
}

// Token returns the -vidmode value for r.
func (r Renderer) Token() string {
	switch r {
	case RendererSoftware:
		return "sw"
	case RendererOpenGL:
		return "gl"
	}
	panic(fmt.Sprintf("engine: renderer %d has no token", r))
}

func (r Renderer) String() string {
	switch r {
	case RendererDefault:
		return "default"
	case RendererSoftware:
		return "software"
	case RendererOpenGL:
		return "opengl"
	default:
		return fmt.Sprintf("Renderer(%d)", uint8(r))
	}
}

// Skill is the difficulty level.
type Skill uint8

const (
	SkillDefault Skill = iota // engine default, emits nothing
	SkillBaby
	SkillEasy
	SkillMedium
	SkillHard
	SkillNightmare
)

// Skills lists every selectable skill in declaration order.
var Skills = []Skill{SkillBaby, SkillEasy, SkillMedium, SkillHard, SkillNightmare}

// Valid reports whether s is one of the declared skill values.
func (s Skill) Valid() bool {
	return s <= SkillNightmare
}

// Token returns the -skill value for s.
func (s Skill) Token() string {
	switch s {
	case SkillBaby:
		return "1"
	case SkillEasy:
		return "2"
	case SkillMedium:
		return "3"
	case SkillHard:
		return "4"
	case SkillNightmare:
		return "5"
	}
	panic(fmt.Sprintf("engine: skill %d has no token", s))
}

func (s Skill) String() string {
	switch s {
	case SkillDefault:
		return "default"
	case SkillBaby:
		return "baby"
	case SkillEasy:
		return "easy"
	case SkillMedium:
		return "medium"
	case SkillHard:
		return "hard"
	case SkillNightmare:
		return "nightmare"
	default:
		return fmt.Sprintf("Skill(%d)", uint8(s))
	}
}

// CompatLevel is the engine compatibility level (-complevel).
type CompatLevel uint8

const (
	CompatDefault CompatLevel = iota // engine default, emits nothing
	CompatDoom19
	CompatUltimateDoom
	CompatFinalDoom
	CompatBoom
	CompatMBF
	CompatMBF21
)

// CompatLevels lists every selectable compatibility level in declaration order.
var CompatLevels = []CompatLevel{
	CompatDoom19,
	CompatUltimateDoom,
	CompatFinalDoom,
	CompatBoom,
	CompatMBF,
	CompatMBF21,
}

// Valid reports whether c is one of the declared compatibility levels.
func (c CompatLevel) Valid() bool {
	return c <= CompatMBF21
}

// Token returns the -complevel value for c.
func (c CompatLevel) Token() string {
	switch c {
	case CompatDoom19:
		return "2"
	case CompatUltimateDoom:
		return "3"
	case CompatFinalDoom:
		return "4"
	case CompatBoom:
		return "9"
	case CompatMBF:
		return "11"
	case CompatMBF21:
		return "21"
	}
	panic(fmt.Sprintf("engine: compatibility level %d has no token", c))
}

func (c CompatLevel) String() string {
	switch c {
	case CompatDefault:
		return "default"
	case CompatDoom19:
		return "doom19"
	case CompatUltimateDoom:
		return "ultimate-doom"
	case CompatFinalDoom:
		return "final-doom"
	case CompatBoom:
		return "boom"
	case CompatMBF:
		return "mbf"
	case CompatMBF21:
		return "mbf21"
	default:
		return fmt.Sprintf("CompatLevel(%d)", uint8(c))
	}
}
