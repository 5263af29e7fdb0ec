package cmd

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rntlauncher/rnt/internal/launcher"
	"github.com/rntlauncher/rnt/internal/log"
	"github.com/rntlauncher/rnt/internal/options"
)

// run executes the command tree with args against the config at cfgPath
// and returns stdout.
func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	out, _, err := runContext(t, context.Background(), cfgPath, args...)
	return out, err
}

// runContext is run with a caller-supplied context that also returns stderr.
func runContext(t *testing.T, ctx context.Context, cfgPath string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("DOOMWADDIR", "")
	t.Setenv("DOOMWADPATH", "")
	t.Setenv("RNT_DEBUG", "")
	t.Cleanup(log.Reset)

	rootCmd := NewRootCmd()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

// writeEngine writes a shell script standing in for the engine.
func writeEngine(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "fake-engine")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700)) //nolint:gosec // test script must be executable
	return path
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDryRun_AllOptions(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, cfg, "--dry-run",
		"--iwad", "doom2.wad", "--warp", "1", "--vid", "software", "--skill", "hard",
		"--complevel", "doom19", "--pistolstart", "test.wad", "test2.wad", "--", "-extra")
	require.NoError(t, err)
	require.Equal(t,
		"dsda-doom -iwad doom2.wad -warp 1 -vidmode sw -skill 4 -complevel 2 -pistolstart -file test.wad test2.wad -extra\n",
		out)
}

func TestDryRun_ProfileLayering(t *testing.T) {
	cfg := writeConfig(t, `
default_profile: base
profiles:
  base:
    iwad: doom2.wad
    complevel: doom19
    files: [base.wad]
  fast:
    skill: nightmare
    extra: [-fast]
`)

	out, err := run(t, cfg, "-n", "--profile", "fast", "--complevel", "mbf21", "map.wad")
	require.NoError(t, err)
	require.Equal(t,
		"dsda-doom -iwad doom2.wad -skill 5 -complevel 21 -file base.wad map.wad -fast\n",
		out)
}

func TestDryRun_ResolvesFromAssetDirs(t *testing.T) {
	wads := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(wads, "DOOM2.WAD"), nil, 0o600))
	cfg := writeConfig(t, "engine:\n  asset_dirs: ["+wads+"]\n")

	out, err := run(t, cfg, "-n", "--iwad", "doom2.wad")
	require.NoError(t, err)
	require.Equal(t, "dsda-doom -iwad "+filepath.Join(wads, "DOOM2.WAD")+"\n", out)
}

func TestLaunch_UnknownSkill(t *testing.T) {
	cfg := writeConfig(t, "")

	_, err := run(t, cfg, "-n", "--iwad", "doom2.wad", "--skill", "ultra")
	require.ErrorIs(t, err, options.ErrUnknownSkill)
}

func TestLaunch_MissingIWAD(t *testing.T) {
	cfg := writeConfig(t, "")

	_, err := run(t, cfg, "-n", "map.wad")
	require.ErrorIs(t, err, options.ErrMissingMainAsset)
}

func TestLaunch_ZeroWarp(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, cfg, "-n", "--iwad", "doom2.wad", "--warp", "0")
	require.ErrorIs(t, err, options.ErrLevelOutOfRange)
	require.Empty(t, out)
}

func TestLaunch_ZeroWarpOverProfile(t *testing.T) {
	cfg := writeConfig(t, "profiles:\n  e1:\n    iwad: doom.wad\n    warp: 12\n")

	_, err := run(t, cfg, "-n", "-P", "e1", "-w", "0")
	require.ErrorIs(t, err, options.ErrLevelOutOfRange)
}

func TestLaunch_EngineExitCode(t *testing.T) {
	falseBin, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}
	cfg := writeConfig(t, "")

	_, err = run(t, cfg, "--engine", falseBin, "--iwad", "doom2.wad")
	var exitErr *launcher.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.Code)
	require.Equal(t, 1, launcher.ExitCode(err))
}

func TestLaunch_InterruptIsNotAnError(t *testing.T) {
	engine := writeEngine(t, "exec sleep 10")
	cfg := writeConfig(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := runContext(t, ctx, cfg, "--engine", engine, "--iwad", "doom2.wad")
	require.NoError(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
	require.Equal(t, 0, launcher.ExitCode(err))
}

func TestLaunch_DebugLogsSearchDirsAndTrace(t *testing.T) {
	engine := writeEngine(t, "exit 0")
	wads := t.TempDir()
	traces := filepath.Join(t.TempDir(), "traces.jsonl")
	cfg := writeConfig(t, "engine:\n  asset_dirs: ["+wads+"]\ntracing:\n  enabled: true\n  exporter: file\n  file_path: "+traces+"\n")

	_, stderr, err := runContext(t, context.Background(), cfg, "--debug", "--engine", engine, "--iwad", "doom2.wad")
	require.NoError(t, err)
	require.Contains(t, stderr, "Asset search dirs dirs=["+wads+"]")
	require.Contains(t, stderr, "Tracing launch trace_id=")

	data, err := os.ReadFile(traces)
	require.NoError(t, err)
	require.Contains(t, string(data), `"rnt.launch"`)
	require.Contains(t, string(data), `"engine.process"`)
}

func TestRecordChanges_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan []string)
	out := recordChanges(ctx, in)

	in <- []string{"/wads/map.wad"}
	require.Equal(t, []string{"/wads/map.wad"}, <-out)

	// in is never closed; cancelling must still end the forwarder.
	cancel()
	select {
	case _, ok := <-out:
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("forwarder did not stop after cancel")
	}
}

func TestRecordChanges_ClosedInput(t *testing.T) {
	in := make(chan []string)
	out := recordChanges(context.Background(), in)
	close(in)

	_, ok := <-out
	require.False(t, ok)
}

func TestLaunch_EngineNotFound(t *testing.T) {
	cfg := writeConfig(t, "")

	_, err := run(t, cfg, "--engine", "rnt-no-such-engine", "--iwad", "doom2.wad")
	require.ErrorIs(t, err, launcher.ErrExecutableNotFound)
}

func TestLaunch_InvalidConfig(t *testing.T) {
	cfg := writeConfig(t, "profiles:\n  bad:\n    renderer: vulkan\n")

	_, err := run(t, cfg, "-n", "--iwad", "doom2.wad")
	require.ErrorIs(t, err, options.ErrUnknownRenderer)
}

func TestArgs_OnePerLine(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, cfg, "args", "--iwad", "doom.wad", "-w", "32", "my map.wad")
	require.NoError(t, err)
	require.Equal(t, "-iwad\ndoom.wad\n-warp\n32\n-file\nmy map.wad\n", out)
}

func TestArgs_Null(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, cfg, "args", "--null", "--no-resolve", "--iwad", "doom.wad")
	require.NoError(t, err)
	require.Equal(t, "-iwad\x00doom.wad\x00", out)
}

func TestArgs_Explain(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, cfg, "args", "--explain", "--no-resolve", "--iwad", "doom.wad", "-s", "easy")
	require.NoError(t, err)
	require.Contains(t, out, "iwad")
	require.Contains(t, out, "skill")
	require.NotContains(t, out, "warp")
	require.Contains(t, out, "dsda-doom -iwad doom.wad -skill 2")
}

func TestDiff_Profiles(t *testing.T) {
	cfg := writeConfig(t, `
profiles:
  a:
    iwad: doom2.wad
    skill: hard
  b:
    iwad: doom2.wad
    skill: nightmare
`)

	out, err := run(t, cfg, "diff", "a", "b")
	require.NoError(t, err)
	require.Contains(t, out, "- 4")
	require.Contains(t, out, "+ 5")
	require.Contains(t, out, "  -iwad")
}

func TestDiff_Identical(t *testing.T) {
	cfg := writeConfig(t, `
profiles:
  a: {iwad: doom2.wad}
  b: {iwad: doom2.wad}
`)

	out, err := run(t, cfg, "diff", "a", "b")
	require.NoError(t, err)
	require.Contains(t, out, "same arguments")
}

func TestDiff_UnknownProfile(t *testing.T) {
	cfg := writeConfig(t, "")

	_, err := run(t, cfg, "diff", "a", "b")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown profile")
}

func TestProfile_SaveListShow(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	out, err := run(t, cfg, "profile", "save", "UV", "--iwad", "doom2.wad", "-s", "nightmare", "-p", "sigil.wad", "--", "-fast")
	require.NoError(t, err)
	require.Contains(t, out, `saved profile "UV"`)

	data, err := os.ReadFile(cfg)
	require.NoError(t, err)
	require.Contains(t, string(data), "uv:")
	require.Contains(t, string(data), "pistolstart: true")

	out, err = run(t, cfg, "profile", "list")
	require.NoError(t, err)
	require.Equal(t, "  uv\n", out)

	out, err = run(t, cfg, "profile", "show", "uv")
	require.NoError(t, err)
	require.Contains(t, out, "skill: nightmare")
	require.Contains(t, out, "# dsda-doom -iwad doom2.wad -skill 5 -pistolstart -file sigil.wad -fast")
}

func TestProfile_SaveRejectsBadValues(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")

	_, err := run(t, cfg, "profile", "save", "bad", "--complevel", "doom3")
	require.ErrorIs(t, err, options.ErrUnknownCompatLevel)
	require.NoFileExists(t, cfg)
}

func TestProfile_ListMarksDefault(t *testing.T) {
	cfg := writeConfig(t, `
default_profile: b
profiles:
  a: {iwad: doom.wad}
  b: {iwad: doom2.wad}
`)

	out, err := run(t, cfg, "profile", "list")
	require.NoError(t, err)
	require.Equal(t, "  a\n* b\n", out)
}

func TestProfile_ShowPartial(t *testing.T) {
	cfg := writeConfig(t, "profiles:\n  fast:\n    extra: [-fast]\n")

	out, err := run(t, cfg, "profile", "show", "fast")
	require.NoError(t, err)
	require.Contains(t, out, "not launchable on its own")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := run(t, path, "config", "init")
	require.NoError(t, err)
	require.Equal(t, "wrote "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "# rnt configuration"))

	_, err = run(t, path, "config", "init")
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func TestConfigPath(t *testing.T) {
	cfg := writeConfig(t, "")

	out, err := run(t, cfg, "config", "path")
	require.NoError(t, err)
	require.Equal(t, cfg+"\n", out)
}
