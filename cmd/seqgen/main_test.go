package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqgen/internal/driver"
	"seqgen/internal/trace"
)

const enumTemplate = `package colors

type Color int

const (
	seq!(N in 0..3 {
		#(
		Color~N Color = N
		)*
	})
)
`

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	s := &session{}
	cmd := newRootCmd(s)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	err = cmd.Execute()
	s.finish(err)
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "colors.go.seq"), enumTemplate)

	_, stderr, err := run(t, "generate", "--ui", "off", "--no-cache", dir)
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, "generated 1 template(s), 1 written")

	data, err := os.ReadFile(filepath.Join(dir, "colors.go"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), driver.GeneratedHeader))
	assert.Contains(t, string(data), "\tColor2 Color = 2\n")
}

func TestGenerateQuiet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "colors.go.seq"), enumTemplate)

	_, stderr, err := run(t, "--quiet", "generate", "--ui", "off", "--no-cache", dir)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestCheckReportsErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.go.seq"), enumTemplate)
	writeFile(t, filepath.Join(dir, "bad.go.seq"), "package p\n\nseq!(N in 3 { x })\n")

	_, stderr, err := run(t, "check", dir)
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "ERROR SYN2104")
	assert.Contains(t, stderr, "checked 2 template(s), 1 failed")

	_, statErr := os.Stat(filepath.Join(dir, "ok.go"))
	assert.True(t, os.IsNotExist(statErr), "check must not write outputs")
}

func TestCheckShortFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.go.seq"), "seq!(N in 0..1 { x )\n")

	_, stderr, err := run(t, "check", "--format", "short", dir)
	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stderr, "SYN2002")
	assert.Contains(t, stderr, "bad.go.seq:1:20")
}

func TestCheckJSONFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go.seq"), enumTemplate)
	writeFile(t, filepath.Join(dir, "b.go.seq"), "seq!(N in 0..1 { x )\n")

	stdout, _, err := run(t, "check", "--format", "json", "--with-notes", dir)
	require.ErrorIs(t, err, errDiagnostics)

	var doc struct {
		Templates []struct {
			Template    string `json:"template"`
			Status      string `json:"status"`
			Diagnostics []struct {
				Code  string            `json:"code"`
				Notes []json.RawMessage `json:"notes"`
			} `json:"diagnostics"`
		} `json:"templates"`
		Errors int `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), stdout)
	require.Len(t, doc.Templates, 2)
	assert.Equal(t, "ok", doc.Templates[0].Status)
	assert.Empty(t, doc.Templates[0].Diagnostics)
	assert.Equal(t, "failed", doc.Templates[1].Status)
	assert.Positive(t, doc.Errors)
	var closer int
	for _, d := range doc.Templates[1].Diagnostics {
		if d.Code == "SYN2002" {
			closer++
			assert.Len(t, d.Notes, 1, "the stray ')' points at the open '{'")
		}
	}
	assert.Equal(t, 1, closer)
}

func TestExpandCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.go.seq")
	writeFile(t, path, enumTemplate)

	stdout, _, err := run(t, "expand", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, driver.GeneratedHeader+"package colors\n"))
	assert.Contains(t, stdout, "Color0 Color = 0")

	out := filepath.Join(dir, "out.go")
	_, _, err = run(t, "expand", "-o", out, path)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, stdout, string(data))
}

func TestExpandWithConfig(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "seqgen.toml")
	writeFile(t, config, "[generate]\nheader = false\n")
	path := filepath.Join(dir, "colors.go.seq")
	writeFile(t, path, enumTemplate)

	stdout, _, err := run(t, "--config", config, "expand", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "package colors\n"))

	writeFile(t, config, "[generate]\nheaders = false\n")
	_, _, err = run(t, "--config", config, "expand", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestTokenizeTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.go.seq")
	writeFile(t, path, "f(x)")

	stdout, _, err := run(t, "tokenize", "--tree", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ident f")
	assert.Contains(t, stdout, "Ident x")

	stdout, _, err = run(t, "tokenize", "--format", "json", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"kind": "Ident"`)
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := run(t, "version", "--format", "json")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, "seqgen", payload.Tool)
	assert.NotEmpty(t, payload.Version)
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiAuto, "AUTO": uiAuto, "on": uiOn, " off ": uiOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := readUIMode("sometimes")
	assert.Error(t, err)
}

func TestUseProgressUI(t *testing.T) {
	tests := []struct {
		ui, format string
		want       bool
		wantErr    bool
	}{
		{ui: "auto", format: "pretty", want: false}, // stdout is a buffer
		{ui: "on", format: "pretty", want: true},
		{ui: "off", format: "pretty", want: false},
		{ui: "auto", format: "json", want: false},
		{ui: "on", format: "short", wantErr: true},
	}
	for _, tt := range tests {
		cmd := &cobra.Command{}
		cmd.Flags().String("ui", "auto", "")
		cmd.SetOut(&bytes.Buffer{})
		require.NoError(t, cmd.Flags().Set("ui", tt.ui))

		got, err := useProgressUI(cmd, tt.format)
		if tt.wantErr {
			assert.Error(t, err, "ui=%s format=%s", tt.ui, tt.format)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ui=%s format=%s", tt.ui, tt.format)
	}
}

func TestInvalidColor(t *testing.T) {
	_, _, err := run(t, "--color", "rainbow", "version")
	assert.Error(t, err)
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")

	_, _, err := run(t, "--cpu-profile", cpu, "--mem-profile", mem, "version")
	require.NoError(t, err)
	assert.FileExists(t, cpu)
	assert.FileExists(t, mem)
}

func TestTraceStreamWritesSpans(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "colors.go.seq"), enumTemplate)
	out := filepath.Join(dir, "trace.log")

	_, stderr, err := run(t, "--trace", out, "check", dir)
	require.NoError(t, err, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "→ generate")
	assert.Contains(t, string(data), "← generate")
}

func TestTraceRingDumpsOnlyOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "colors.go.seq"), enumTemplate)
	out := filepath.Join(dir, "ring.log")

	_, _, err := run(t, "--trace", out, "--trace-mode", "ring", "check", dir)
	require.NoError(t, err)
	assert.NoFileExists(t, out)

	writeFile(t, filepath.Join(dir, "bad.go.seq"), "seq!(N in 3 { x })\n")
	_, _, err = run(t, "--trace", out, "--trace-mode", "ring", "check", dir)
	require.ErrorIs(t, err, errDiagnostics)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "generate")
	// точка отказа несёт путь шаблона даже на уровне phase, где span файла отфильтрован
	assert.Regexp(t, `• failed @\S*bad\.go\.seq \(\d+ errors\)`, string(data))
	assert.Regexp(t, `→ expand @\S*colors\.go\.seq`, string(data))
}

func TestTraceInvalidMode(t *testing.T) {
	_, _, err := run(t, "--trace", "-", "--trace-mode", "tape", "version")
	assert.ErrorContains(t, err, "invalid trace mode")
}

func TestCleanDropsCacheAndOutputs(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "colors.go.seq"), enumTemplate)
	writeFile(t, filepath.Join(dir, "hand.go.seq"), "package colors\n")
	_, stderr, err := run(t, "generate", "--ui", "off", dir)
	require.NoError(t, err, stderr)
	// hand.go is replaced by a file without the header and must survive clean
	writeFile(t, filepath.Join(dir, "hand.go"), "package colors\n")
	require.NotZero(t, countFiles(t, filepath.Join(cacheHome, "seqgen")))

	stdout, _, err := run(t, "clean", "--outputs", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "cache cleared")
	assert.Contains(t, stdout, "colors.go")
	assert.Zero(t, countFiles(t, filepath.Join(cacheHome, "seqgen")))
	assert.NoFileExists(t, filepath.Join(dir, "colors.go"))
	assert.FileExists(t, filepath.Join(dir, "hand.go"))
	assert.FileExists(t, filepath.Join(dir, "colors.go.seq"))
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestTraceNDJSONFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "colors.go.seq"), enumTemplate)
	out := filepath.Join(dir, "trace.out")

	_, _, err := run(t, "--trace", out, "--trace-format", "ndjson", "check", dir)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	first, _, _ := strings.Cut(string(data), "\n")
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(first), &ev))
	assert.Equal(t, "generate", ev["name"])
}

func TestTraceConfig(t *testing.T) {
	parse := func(args ...string) *cobra.Command {
		root := newRootCmd(&session{})
		require.NoError(t, root.PersistentFlags().Parse(args))
		return root
	}

	cfg, err := traceConfig(parse("--trace", "t.ndjson"))
	require.NoError(t, err)
	assert.Equal(t, trace.LevelPhase, cfg.Level)
	assert.Equal(t, trace.ModeStream, cfg.Mode)

	// явный off побеждает --trace
	cfg, err = traceConfig(parse("--trace", "t.ndjson", "--trace-level", "off"))
	require.NoError(t, err)
	assert.Equal(t, trace.LevelOff, cfg.Level)

	cfg, err = traceConfig(parse("--trace-level", "debug", "--trace-mode", "RING", "--trace-ring-size", "8"))
	require.NoError(t, err)
	assert.Equal(t, trace.ModeRing, cfg.Mode)
	assert.Equal(t, 8, cfg.RingSize)

	_, err = traceConfig(parse("--trace-level", "loud"))
	assert.ErrorContains(t, err, "invalid trace level")
}

func TestCheckMaxDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.go.seq"), "seq!(N in 0..1 { x )\n")

	_, stderr, err := run(t, "--max-diagnostics", "1", "check", "--format", "short", dir)
	require.ErrorIs(t, err, errDiagnostics)
	assert.Equal(t, 1, strings.Count(stderr, " SYN"), stderr)
	assert.Regexp(t, `\.\.\. \d+ more diagnostics not shown`, stderr)
}
