package main

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inkcalc/internal/config"
	"github.com/example/inkcalc/internal/devserver"
)

type testRoot struct {
	*root
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestRoot(t *testing.T) testRoot {
	t.Helper()
	r := newRootWithConfig(config.New())
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	r.stdout, r.stderr = out, errOut
	r.stdin = strings.NewReader("")
	return testRoot{root: r, out: out, err: errOut}
}

func fixtureBackend(t *testing.T, set devserver.FixtureSet) string {
	t.Helper()
	ts := httptest.NewServer(devserver.New(set).Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestRootWithoutCommandShowsUsage(t *testing.T) {
	tr := newTestRoot(t)
	err := tr.Run(nil)
	var uerr *UsageError
	require.True(t, errors.As(err, &uerr), "got %v", err)
	help := uerr.Error()
	for _, want := range []string{"Usage: inkcalc", "console", "solve", "-api", "INKCALC_API_URL"} {
		assert.Contains(t, help, want)
	}
}

func TestUnknownCommandShowsUsage(t *testing.T) {
	tr := newTestRoot(t)
	err := tr.Run([]string{"paint"})
	var uerr *UsageError
	assert.True(t, errors.As(err, &uerr))
}

func TestSubcommandHelpUsesOwnTemplate(t *testing.T) {
	tr := newTestRoot(t)
	cmd, err := parseSolveCmd([]string{"-file", "x.png"}, tr.subcommand("solve"))
	require.NoError(t, err)
	help := (&UsageError{of: cmd}).Error()
	assert.Contains(t, help, "Usage: inkcalc solve")
	assert.Contains(t, help, "-var")
}

func TestParseSolveRequiresFile(t *testing.T) {
	tr := newTestRoot(t)
	_, err := parseSolveCmd(nil, tr.root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file is required")
}

func TestVarListSet(t *testing.T) {
	v := varList{}
	require.NoError(t, v.Set("x=3"))
	require.NoError(t, v.Set(" y = 4 "))
	assert.Equal(t, varList{"x": "3", "y": "4"}, v)
	assert.Error(t, v.Set("z"))
	assert.Error(t, v.Set("=1"))
}

func TestParsePoints(t *testing.T) {
	pts, err := parsePoints([]string{"1", "2", "3", "4"})
	require.NoError(t, err)
	assert.Len(t, pts, 2)

	_, err = parsePoints([]string{"1", "2"})
	assert.Error(t, err)
	_, err = parsePoints([]string{"1", "2", "3"})
	assert.Error(t, err)
	_, err = parsePoints([]string{"1", "a", "3", "4"})
	assert.Error(t, err)
}

func TestConsoleRunAgainstFixtures(t *testing.T) {
	url := fixtureBackend(t, devserver.FixtureSet{Responses: []devserver.Fixture{{
		Status: "success",
		Data: []devserver.Entry{
			{Expr: "x", Result: "3", Assign: true},
			{Expr: "x + 1", Result: "4"},
		},
	}}})
	tr := newTestRoot(t)
	err := tr.Run([]string{"-api", url, "console",
		"-e", "stroke 10 10 60 60 100 20",
		"-e", "run",
		"-e", "results",
		"-e", "vars",
		"-e", "status",
	})
	require.NoError(t, err, tr.err.String())

	out := tr.out.String()
	assert.Contains(t, out, "Solved x = 3, x + 1 = 4")
	assert.Contains(t, out, "x + 1 = 4\n")
	assert.Contains(t, out, "history 2, redo 0")
	assert.Contains(t, out, "results 2, vars 1")
}

func TestConsoleRunReportsServerMessage(t *testing.T) {
	url := fixtureBackend(t, devserver.FixtureSet{Responses: []devserver.Fixture{{
		Status:  "error",
		Message: "could not read handwriting",
	}}})
	tr := newTestRoot(t)
	err := tr.Run([]string{"-api", url, "console", "-e", "stroke 0 0 5 5", "-e", "run"})
	require.NoError(t, err)
	assert.Contains(t, tr.err.String(), "error: could not read handwriting")
}

func TestConsoleUndoRedoAndSave(t *testing.T) {
	tr := newTestRoot(t)
	path := filepath.Join(t.TempDir(), "out.png")
	err := tr.Run([]string{"console", "-width", "50", "-height", "40",
		"-e", "color red",
		"-e", "width 4",
		"-e", "stroke 5 5 30 30",
		"-e", "undo",
		"-e", "undo",
		"-e", "redo",
		"-e", "save " + path,
		"-e", "status",
		"-e", "exit",
		"-e", "status",
	})
	require.NoError(t, err)
	out := tr.out.String()
	assert.Contains(t, out, "nothing to undo")
	assert.Contains(t, out, "saved "+path)
	assert.Equal(t, 1, strings.Count(out, "history 2, redo 0, pen #EE3333 width 4"))

	img, err := loadPNG(path)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	r, g, b, _ := img.At(17, 17).RGBA()
	assert.Equal(t, [3]uint32{238, 51, 51}, [3]uint32{r >> 8, g >> 8, b >> 8})
}

func TestConsoleUnknownCommandFails(t *testing.T) {
	tr := newTestRoot(t)
	err := tr.Run([]string{"console", "-e", "paint"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "paint"`)
}

func TestConsoleReadsStdin(t *testing.T) {
	tr := newTestRoot(t)
	tr.stdin = strings.NewReader("width 2\n\n# comment\nstatus\nexit\n")
	require.NoError(t, tr.Run([]string{"console"}))
	assert.Contains(t, tr.out.String(), "width 2")
}

func TestSolvePrintsResults(t *testing.T) {
	url := fixtureBackend(t, devserver.FixtureSet{Responses: []devserver.Fixture{{
		Status: "success",
		Data:   []devserver.Entry{{Expr: "y", Result: "$y", Assign: true}, {Expr: "2y", Result: "10"}},
	}}})
	path := filepath.Join(t.TempDir(), "in.png")
	tr := newTestRoot(t)
	require.NoError(t, tr.Run([]string{"console", "-e", "stroke 1 1 9 9", "-e", "save " + path}))

	tr = newTestRoot(t)
	require.NoError(t, tr.Run([]string{"-api", url, "solve", "-file", path, "-var", "y=5"}))
	assert.Equal(t, "y = 5 (assigned)\n2y = 10\n", tr.out.String())
}

func TestSolveEmptyAndFailure(t *testing.T) {
	url := fixtureBackend(t, devserver.FixtureSet{Responses: []devserver.Fixture{
		{Status: "success"},
		{Status: "error", Message: "bad input"},
	}})
	path := filepath.Join(t.TempDir(), "in.png")
	tr := newTestRoot(t)
	require.NoError(t, tr.Run([]string{"console", "-e", "save " + path}))

	tr = newTestRoot(t)
	require.NoError(t, tr.Run([]string{"-api", url, "solve", "-file", path}))
	assert.Equal(t, "No result found\n", tr.out.String())

	tr = newTestRoot(t)
	err := tr.Run([]string{"-api", url, "solve", "-file", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad input")
}

func TestSolveMissingFile(t *testing.T) {
	tr := newTestRoot(t)
	err := tr.Run([]string{"solve", "-file", filepath.Join(t.TempDir(), "missing.png")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestServeLoadsFixtures(t *testing.T) {
	tr := newTestRoot(t)
	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(path, []byte("responses:\n  - status: success\n"), 0o644))
	cmd, err := parseServeCmd([]string{"-fixtures", path, "-addr", "127.0.0.1:0"}, tr.root)
	require.NoError(t, err)
	_, err = cmd.server()
	require.NoError(t, err)

	cmd.fixtures = filepath.Join(t.TempDir(), "none.yaml")
	_, err = cmd.server()
	assert.Error(t, err)
}

func TestColorsMarksPen(t *testing.T) {
	tr := newTestRoot(t)
	require.NoError(t, tr.Run([]string{"colors"}))
	lines := strings.Split(tr.out.String(), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[1], "*  1: White"), "got %q", lines[1])
}

func TestConfigPrintIncludesOverrides(t *testing.T) {
	tr := newTestRoot(t)
	require.NoError(t, tr.Run([]string{"-api", "http://calc.local", "-notify-result", "config", "print"}))
	out := tr.out.String()
	assert.Contains(t, out, "api_url = http://calc.local\n")
	assert.Contains(t, out, "result = true\n")
	assert.Contains(t, out, "[results]\n")
}

func TestVersion(t *testing.T) {
	tr := newTestRoot(t)
	require.NoError(t, tr.Run([]string{"version"}))
	assert.Equal(t, "inkcalc version dev\n", tr.out.String())
}

func TestWindowTitle(t *testing.T) {
	got := windowTitle(titleOptions{Mode: "draw", Endpoint: "http://localhost:8900", Theme: "dark"})
	assert.Equal(t, "inkcalc - draw - http://localhost:8900 - theme dark - vdev", got)
}
