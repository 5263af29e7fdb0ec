package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompile_MinimalConfig(t *testing.T) {
	args := Compile(LaunchConfig{MainAsset: "doom2.wad"})
	require.Equal(t, []string{"-iwad", "doom2.wad"}, args)
}

func TestCompile_AllFieldsSet(t *testing.T) {
	cfg := LaunchConfig{
		MainAsset:          "doom2.wad",
		StartLevel:         1,
		Renderer:           RendererSoftware,
		Skill:              SkillHard,
		CompatibilityLevel: CompatDoom19,
		RestartEachLevel:   true,
		SupplementalAssets: []string{"test.wad", "test2.wad"},
		Passthrough:        []string{"-extra"},
	}

	expected := []string{
		"-iwad", "doom2.wad",
		"-warp", "1",
		"-vidmode", "sw",
		"-skill", "4",
		"-complevel", "2",
		"-pistolstart",
		"-file", "test.wad", "test2.wad",
		"-extra",
	}
	require.Equal(t, expected, Compile(cfg))
}

func TestCompile_MainAssetNotNormalized(t *testing.T) {
	args := Compile(LaunchConfig{MainAsset: "./wads/../DOOM2.WAD"})
	require.Equal(t, "./wads/../DOOM2.WAD", args[1])
}

func TestCompile_StartLevelRendering(t *testing.T) {
	tests := []struct {
		level uint8
		want  string
	}{
		{1, "1"},
		{9, "9"},
		{10, "10"},
		{32, "32"},
		{255, "255"},
	}
	for _, tt := range tests {
		args := Compile(LaunchConfig{MainAsset: "doom.wad", StartLevel: tt.level})
		require.Equal(t, []string{"-iwad", "doom.wad", "-warp", tt.want}, args)
	}
}

func TestCompile_RendererTokens(t *testing.T) {
	tests := []struct {
		renderer Renderer
		want     string
	}{
		{RendererSoftware, "sw"},
		{RendererOpenGL, "gl"},
	}
	for _, tt := range tests {
		t.Run(tt.renderer.String(), func(t *testing.T) {
			args := Compile(LaunchConfig{MainAsset: "doom.wad", Renderer: tt.renderer})
			require.Equal(t, []string{"-iwad", "doom.wad", "-vidmode", tt.want}, args)
		})
	}
}

func TestCompile_SkillTokens(t *testing.T) {
	tests := []struct {
		skill Skill
		want  string
	}{
		{SkillBaby, "1"},
		{SkillEasy, "2"},
		{SkillMedium, "3"},
		{SkillHard, "4"},
		{SkillNightmare, "5"},
	}
	for _, tt := range tests {
		t.Run(tt.skill.String(), func(t *testing.T) {
			args := Compile(LaunchConfig{MainAsset: "doom.wad", Skill: tt.skill})
			require.Equal(t, []string{"-iwad", "doom.wad", "-skill", tt.want}, args)
		})
	}
}

func TestCompile_CompatLevelTokens(t *testing.T) {
	tests := []struct {
		level CompatLevel
		want  string
	}{
		{CompatDoom19, "2"},
		{CompatUltimateDoom, "3"},
		{CompatFinalDoom, "4"},
		{CompatBoom, "9"},
		{CompatMBF, "11"},
		{CompatMBF21, "21"},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			args := Compile(LaunchConfig{MainAsset: "doom.wad", CompatibilityLevel: tt.level})
			require.Equal(t, []string{"-iwad", "doom.wad", "-complevel", tt.want}, args)
		})
	}
}

func TestCompile_EmptySupplementalAssetsOmitsFileFlag(t *testing.T) {
	args := Compile(LaunchConfig{MainAsset: "doom.wad", SupplementalAssets: []string{}})
	require.NotContains(t, args, "-file")
	require.Len(t, args, 2)
}

func TestCompile_PistolStartHasNoValue(t *testing.T) {
	args := Compile(LaunchConfig{MainAsset: "doom.wad", RestartEachLevel: true})
	require.Equal(t, []string{"-iwad", "doom.wad", "-pistolstart"}, args)
}

func TestCompile_PassthroughIsVerbatimAndLast(t *testing.T) {
	cfg := LaunchConfig{
		MainAsset:          "doom.wad",
		SupplementalAssets: []string{"map.wad"},
		Passthrough:        []string{"-skill", "", "-nomonsters"},
	}
	args := Compile(cfg)
	require.Equal(t, []string{"-iwad", "doom.wad", "-file", "map.wad", "-skill", "", "-nomonsters"}, args)
}

func TestCompile_DoesNotAliasInput(t *testing.T) {
	files := []string{"a.wad", "b.wad"}
	cfg := LaunchConfig{MainAsset: "doom.wad", SupplementalAssets: files}

	args := Compile(cfg)
	args[3] = "mutated.wad"

	require.Equal(t, []string{"a.wad", "b.wad"}, files)
}

func TestCompile_PanicsOnUndeclaredEnum(t *testing.T) {
	require.Panics(t, func() {
		Compile(LaunchConfig{MainAsset: "doom.wad", Skill: Skill(42)})
	})
}

func TestExplain_SkipsAbsentSegments(t *testing.T) {
	cfg := LaunchConfig{
		MainAsset:        "doom2.wad",
		Skill:            SkillNightmare,
		RestartEachLevel: true,
	}

	segs := Explain(cfg)
	require.Equal(t, []Segment{
		{Name: "iwad", Tokens: []string{"-iwad", "doom2.wad"}},
		{Name: "skill", Tokens: []string{"-skill", "5"}},
		{Name: "pistolstart", Tokens: []string{"-pistolstart"}},
	}, segs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LaunchConfig
		wantErr error
	}{
		{"valid", LaunchConfig{MainAsset: "doom.wad", Skill: SkillHard}, nil},
		{"empty main asset", LaunchConfig{}, ErrEmptyMainAsset},
		{"bad renderer", LaunchConfig{MainAsset: "doom.wad", Renderer: Renderer(9)}, ErrInvalidEnum},
		{"bad skill", LaunchConfig{MainAsset: "doom.wad", Skill: Skill(6)}, ErrInvalidEnum},
		{"bad complevel", LaunchConfig{MainAsset: "doom.wad", CompatibilityLevel: CompatLevel(7)}, ErrInvalidEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "opengl", RendererOpenGL.String())
	require.Equal(t, "ultimate-doom", CompatUltimateDoom.String())
	require.Equal(t, "Skill(9)", Skill(9).String())
}
