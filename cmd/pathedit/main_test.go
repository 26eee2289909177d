package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	status int
	stdout string
	stderr string
}

func runWith(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	status := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{status, stdout.String(), stderr.String()}
}

const (
	noisy  = "M0,0 L10,0.2 L20,-0.1 L30,0 L30,30"
	corner = "M0,0 L100,0 L100,100"
	smooth = "M-100,0 C-80,0 -20,0 0,0 C20,0 80,0 100,0"
)

func TestSimplify(t *testing.T) {
	res := runWith(t, "", "simplify", noisy)
	assert.Equal(t, exitOK, res.status)
	assert.Equal(t, "M0,0 L30,0 L30,30\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestSimplifyStdin(t *testing.T) {
	res := runWith(t, noisy+"\n", "-tolerance", "0.05", "simplify")
	assert.Equal(t, exitOK, res.status)
	assert.Equal(t, "M0,0 L10,0.2 L20,-0.1 L30,0 L30,30\n", res.stdout)
}

func TestSmooth(t *testing.T) {
	res := runWith(t, "", "smooth", "M0,0 L50,0 L100,0")
	assert.Equal(t, exitOK, res.status)
	assert.Equal(t, "M0,0 C16.667,0 33.333,0 50,0 C66.667,0 83.333,0 100,0\n", res.stdout)

	res = runWith(t, "", "-grid", "1", "smooth", "M0,0 L50,0 L100,0")
	assert.Equal(t, "M0,0 C17,0 33,0 50,0 C67,0 83,0 100,0\n", res.stdout)
}

func TestActions(t *testing.T) {
	res := runWith(t, "", "-anchor", "1", "actions", corner)
	assert.Equal(t, exitOK, res.status)
	assert.Equal(t, "convert-both-to-curves\n", res.stdout)

	res = runWith(t, "", "-anchor", "1", "actions", smooth)
	assert.Equal(t, "normalize-from-current\nnormalize-from-other\nbreak-control-points\n", res.stdout)

	res = runWith(t, "", "-anchor", "1", "-alt", "actions", smooth)
	assert.Equal(t, "break-control-points\nnormalize-from-current\nnormalize-from-other\n", res.stdout)

	res = runWith(t, "", "-anchor", "0", "actions", corner)
	assert.Equal(t, exitOK, res.status)
	assert.Empty(t, res.stdout)
}

func TestNormalize(t *testing.T) {
	res := runWith(t, "", "-anchor", "1", "-action", "convert-both-to-curves", "-precision", "2", "normalize", corner)
	assert.Equal(t, exitOK, res.status)
	assert.Equal(t, "M0,0 C30,0 78.79,-21.21 100,0 C121.21,21.21 100,70 100,100\n", res.stdout)

	// Action names are accepted in any case style.
	res = runWith(t, "", "-anchor", "1", "-action", "ConvertBothToCurves", "-precision", "2", "normalize", corner)
	assert.Equal(t, exitOK, res.status)
	assert.Equal(t, "M0,0 C30,0 78.79,-21.21 100,0 C121.21,21.21 100,70 100,100\n", res.stdout)
}

func TestNormalizeNotApplicable(t *testing.T) {
	res := runWith(t, "", "-anchor", "1", "-action", "break-control-points", "normalize", corner)
	assert.Equal(t, exitError, res.status)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "action not applicable")
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		status int
		stderr string
	}{
		{"no command", nil, exitUsage, "Usage:"},
		{"unknown command", []string{"flatten", corner}, exitUsage, `unknown command "flatten"`},
		{"too many arguments", []string{"smooth", corner, corner}, exitUsage, "Usage:"},
		{"unknown flag", []string{"-bogus", "smooth", corner}, exitUsage, "-bogus"},
		{"bad path data", []string{"smooth", "M0,0 Q1,1 2,2"}, exitError, "not supported"},
		{"missing anchor", []string{"actions", corner}, exitUsage, "missing -anchor"},
		{"anchor out of range", []string{"-anchor", "3", "actions", corner}, exitError, "anchor out of range"},
		{"missing action", []string{"-anchor", "1", "normalize", corner}, exitUsage, "requires -action"},
		{"unknown action", []string{"-anchor", "1", "-action", "flip", "normalize", corner}, exitUsage, "unknown action"},
		{"missing config", []string{"-config", filepath.Join(t.TempDir(), "none.toml"), "smooth", corner}, exitError, "none.toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runWith(t, "", tt.args...)
			assert.Equal(t, tt.status, res.status)
			assert.Empty(t, res.stdout)
			assert.Contains(t, res.stderr, tt.stderr)
		})
	}
}

func TestHelp(t *testing.T) {
	res := runWith(t, "", "-h")
	assert.Equal(t, exitOK, res.status)
	assert.Contains(t, res.stderr, "Usage: pathedit")
	assert.Contains(t, res.stderr, "-tolerance")
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "pathedit.toml")
	require.NoError(t, os.WriteFile(name, []byte(contents), 0o644))
	return name
}

func TestConfig(t *testing.T) {
	name := writeConfig(t, "tolerance = 0.05\nprecision = 1\n")

	res := runWith(t, "", "-config", name, "simplify", noisy)
	assert.Equal(t, exitOK, res.status)
	assert.Equal(t, "M0,0 L10,0.2 L20,-0.1 L30,0 L30,30\n", res.stdout)

	// Flags take precedence over the file.
	res = runWith(t, "", "-config", name, "-tolerance", "1", "simplify", noisy)
	assert.Equal(t, exitOK, res.status)
	assert.Equal(t, "M0,0 L30,0 L30,30\n", res.stdout)
}

func TestConfigErrors(t *testing.T) {
	name := writeConfig(t, "tolerance = 1\ncolor = \"red\"\n")
	res := runWith(t, "", "-config", name, "simplify", noisy)
	assert.Equal(t, exitError, res.status)
	assert.Contains(t, res.stderr, name)

	name = writeConfig(t, "tolerance = \n")
	res = runWith(t, "", "-config", name, "simplify", noisy)
	assert.Equal(t, exitError, res.status)

	name = writeConfig(t, "log_level = \"loud\"\n")
	res = runWith(t, "", "-config", name, "simplify", noisy)
	assert.Equal(t, exitError, res.status)
	assert.Contains(t, res.stderr, "log_level")
}

func TestVerbose(t *testing.T) {
	res := runWith(t, "", "-v", "simplify", noisy)
	assert.Equal(t, exitOK, res.status)
	assert.Contains(t, res.stderr, "level=DEBUG")
	assert.Contains(t, res.stderr, "anchors_after=3")

	name := writeConfig(t, "log_level = \"debug\"\n")
	res = runWith(t, "", "-config", name, "-anchor", "1", "actions", corner)
	assert.Contains(t, res.stderr, "prev=Line next=Line")
}

func TestDefaultConfigMatchesLibrary(t *testing.T) {
	cfg := defaultConfig()
	opts := cfg.simplifyOptions()
	assert.Equal(t, 1.0, opts.Tolerance)
	assert.Equal(t, 0.5, opts.MinSpacing)
	assert.Equal(t, 16, opts.FlattenSteps)
	assert.Equal(t, 8, opts.MaxLookahead)
	assert.False(t, opts.FitCurves)
	assert.Nil(t, opts.Snap)
}
