package options

import (
	"fmt"
	"strings"

	"github.com/rntlauncher/rnt/internal/engine"
)

var rendererNames = map[string]engine.Renderer{
	"software": engine.RendererSoftware,
	"sw":       engine.RendererSoftware,
	"opengl":   engine.RendererOpenGL,
	"open-gl":  engine.RendererOpenGL,
	"gl":       engine.RendererOpenGL,
}

var skillNames = map[string]engine.Skill{
	"baby":      engine.SkillBaby,
	"easy":      engine.SkillEasy,
	"medium":    engine.SkillMedium,
	"hard":      engine.SkillHard,
	"nightmare": engine.SkillNightmare,
}

var compatNames = map[string]engine.CompatLevel{
	"doom19":        engine.CompatDoom19,
	"ultimate-doom": engine.CompatUltimateDoom,
	"final-doom":    engine.CompatFinalDoom,
	"boom":          engine.CompatBoom,
	"mbf":           engine.CompatMBF,
	"mbf21":         engine.CompatMBF21,
}

// ParseRenderer maps a renderer name to its value. The empty string is the
// engine default.
func ParseRenderer(name string) (engine.Renderer, error) {
	if name == "" {
		return engine.RendererDefault, nil
	}
	if r, ok := rendererNames[normalize(name)]; ok {
		return r, nil
	}
	return engine.RendererDefault, fmt.Errorf("%w %q (want one of %s)", ErrUnknownRenderer, name, names(engine.Renderers))
}

// ParseSkill maps a skill name to its value. The empty string is the engine
// default.
func ParseSkill(name string) (engine.Skill, error) {
	if name == "" {
		return engine.SkillDefault, nil
	}
	if s, ok := skillNames[normalize(name)]; ok {
		return s, nil
	}
	return engine.SkillDefault, fmt.Errorf("%w %q (want one of %s)", ErrUnknownSkill, name, names(engine.Skills))
}

// ParseCompatLevel maps a compatibility level name to its value. The empty
// string is the engine default.
func ParseCompatLevel(name string) (engine.CompatLevel, error) {
	if name == "" {
		return engine.CompatDefault, nil
	}
	if c, ok := compatNames[normalize(name)]; ok {
		return c, nil
	}
	return engine.CompatDefault, fmt.Errorf("%w %q (want one of %s)", ErrUnknownCompatLevel, name, names(engine.CompatLevels))
}

// "Ultimate_Doom" and "ultimate-doom" are the same name.
func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

func names[T fmt.Stringer](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
