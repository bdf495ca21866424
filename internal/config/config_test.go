package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func ptr[T any](v T) *T { return &v }

func TestResolve_Defaults_When_NoSourcesSet(t *testing.T) {
	isolate(t)

	cfg, err := Resolve(Flags{}, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ".json", cfg.SuccessSuffix)
	assert.Equal(t, ".fail.json", cfg.FailSuffix)
	assert.False(t, cfg.ProtectInput)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.NoColor)
	assert.False(t, cfg.Quiet)
	assert.Empty(t, cfg.Source)
}

func TestResolve_ReadsLocalConfig_When_FileExists(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, FileName), "protect_input: true\nfail_suffix: .rebuild.json\n")

	cfg, err := Resolve(Flags{}, map[string]string{})
	require.NoError(t, err)

	assert.True(t, cfg.ProtectInput)
	assert.Equal(t, ".rebuild.json", cfg.FailSuffix)
	assert.Equal(t, ".json", cfg.SuccessSuffix, "unset keys keep defaults")
	assert.Equal(t, FileName, cfg.Source)
}

func TestResolve_UsesXDGConfig_When_LocalMissing(t *testing.T) {
	dir := isolate(t)
	xdgPath := filepath.Join(dir, "xdg", "ccsplit", FileName)
	writeConfig(t, xdgPath, "quiet: true\n")

	cfg, err := Resolve(Flags{}, map[string]string{})
	require.NoError(t, err)

	assert.True(t, cfg.Quiet)
	assert.Equal(t, xdgPath, cfg.Source)
}

func TestResolve_ExplicitConfig(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, FileName), "quiet: true\n")
	explicit := filepath.Join(dir, "other.yaml")
	writeConfig(t, explicit, "debug: true\n")

	cfg, err := Resolve(Flags{ConfigPath: explicit}, map[string]string{})
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Quiet, "explicit config replaces the lookup")
	assert.Equal(t, explicit, cfg.Source)
}

func TestResolve_EmptyConfigFile_KeepsDefaults(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, FileName), "")

	cfg, err := Resolve(Flags{}, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default().SuccessSuffix, cfg.SuccessSuffix)
}

func TestResolve_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		flags   func(dir string) Flags
		wantErr string
	}{
		{
			name:    "explicit file missing",
			flags:   func(dir string) Flags { return Flags{ConfigPath: filepath.Join(dir, "missing.yaml")} },
			wantErr: "read config",
		},
		{
			name:    "unknown key",
			content: "protect: true\n",
			flags:   func(string) Flags { return Flags{} },
			wantErr: "parse config",
		},
		{
			name:    "wrong type",
			content: "quiet: [1, 2]\n",
			flags:   func(string) Flags { return Flags{} },
			wantErr: "parse config",
		},
		{
			name:    "suffix without dot",
			content: "success_suffix: json\n",
			flags:   func(string) Flags { return Flags{} },
			wantErr: "invalid success_suffix",
		},
		{
			name:    "suffix with separator",
			content: "fail_suffix: ./fail.json\n",
			flags:   func(string) Flags { return Flags{} },
			wantErr: "invalid fail_suffix",
		},
		{
			name:    "same suffixes",
			content: "success_suffix: .json\nfail_suffix: .json\n",
			flags:   func(string) Flags { return Flags{} },
			wantErr: "both",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.content != "" {
				writeConfig(t, filepath.Join(dir, FileName), tt.content)
			}

			_, err := Resolve(tt.flags(dir), map[string]string{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, FileName), "success_suffix: .ok.json\nprotect_input: false\n")

	cfg, err := Resolve(Flags{}, map[string]string{
		"CCSPLIT_SUCCESS_SUFFIX": ".good.json",
		"CCSPLIT_PROTECT_INPUT":  "1",
	})
	require.NoError(t, err)

	assert.Equal(t, ".good.json", cfg.SuccessSuffix)
	assert.True(t, cfg.ProtectInput)
}

func TestResolve_NoColorEnv(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		want    bool
	}{
		{name: "unset", environ: map[string]string{}, want: false},
		{name: "NO_COLOR any value", environ: map[string]string{"NO_COLOR": "yes please"}, want: true},
		{name: "CCSPLIT_NO_COLOR", environ: map[string]string{"CCSPLIT_NO_COLOR": "true"}, want: true},
		{name: "empty NO_COLOR", environ: map[string]string{"NO_COLOR": ""}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			cfg, err := Resolve(Flags{}, tt.environ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.NoColor)
		})
	}
}

func TestResolve_InvalidEnvBool(t *testing.T) {
	isolate(t)

	_, err := Resolve(Flags{}, map[string]string{"CCSPLIT_DEBUG": "maybe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestResolve_FlagsOverrideEnvAndFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, FileName), "quiet: true\nfail_suffix: .file.json\n")

	cfg, err := Resolve(Flags{
		FailSuffix: ptr(".flag.json"),
		Quiet:      ptr(false),
		NoColor:    ptr(false),
		Debug:      ptr(true),
	}, map[string]string{
		"CCSPLIT_FAIL_SUFFIX": ".env.json",
		"NO_COLOR":            "1",
	})
	require.NoError(t, err)

	assert.Equal(t, ".flag.json", cfg.FailSuffix)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.NoColor)
	assert.True(t, cfg.Debug)
}

func TestConfig_Naming(t *testing.T) {
	t.Parallel()

	cfg := Config{SuccessSuffix: ".a.json", FailSuffix: ".b.json", ProtectInput: true}
	n := cfg.Naming()

	assert.Equal(t, ".a.json", n.SuccessSuffix)
	assert.Equal(t, ".b.json", n.FailSuffix)
	assert.True(t, n.ProtectInput)
}
