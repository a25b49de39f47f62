package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[generate]\nsuffix = \".tmpl\"\njobs = 2\n\n[expand]\nmax_iterations = 1000\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := LoadManifest(nested)
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	cfg := m.Config
	if cfg.Generate.Suffix != ".tmpl" || cfg.Generate.Jobs != 2 || cfg.Expand.MaxIterations != 1000 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	// не заданные ключи берутся из DefaultConfig
	if !cfg.Generate.Gofmt || !cfg.Generate.Header {
		t.Fatalf("defaults lost: %+v", cfg.Generate)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	dir := t.TempDir()
	// go.mod останавливает поиск, так что результат не зависит от того, что выше TempDir
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/m\n")
	m, ok, err := LoadManifest(dir)
	if err != nil || ok || m != nil {
		t.Fatalf("LoadManifest: m=%v ok=%v err=%v", m, ok, err)
	}
}

func TestFindManifestStopsAtModuleRoot(t *testing.T) {
	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ManifestName), "")
	module := filepath.Join(outer, "mod")
	writeFile(t, filepath.Join(module, "go.mod"), "module example.com/m\n")
	pkg := filepath.Join(module, "internal", "gen")
	if err := os.MkdirAll(pkg, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := FindManifest(pkg); err != nil || ok {
		t.Fatalf("manifest above go.mod must not be found: ok=%v err=%v", ok, err)
	}

	// манифест рядом с go.mod находится
	writeFile(t, filepath.Join(module, ManifestName), "")
	path, ok, err := FindManifest(pkg)
	if err != nil || !ok || path != filepath.Join(module, ManifestName) {
		t.Fatalf("FindManifest = %q, %v, %v", path, ok, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "syntax", content: "[generate\n", want: "failed to parse TOML"},
		{name: "unknown key", content: "[generate]\nsufix = \".seq\"\n", want: "unknown keys: generate.sufix"},
		{name: "suffix", content: "[generate]\nsuffix = \"seq\"\n", want: "must start with '.'"},
		{name: "jobs", content: "[generate]\njobs = -1\n", want: "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in, suffix, want string
		ok               bool
	}{
		{in: "foo.go.seq", want: "foo.go", ok: true},
		{in: "dir/foo.go.tmpl", suffix: ".tmpl", want: "dir/foo.go", ok: true},
		{in: "foo.go", ok: false},
		{in: ".seq", ok: false},
		{in: "dir/.seq", ok: false},
	}
	for _, tt := range tests {
		got, ok := OutputPath(tt.in, tt.suffix)
		if got != tt.want || ok != tt.ok {
			t.Errorf("OutputPath(%q, %q) = %q, %v; want %q, %v", tt.in, tt.suffix, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDigest(t *testing.T) {
	a := HashString("a")
	if a.IsZero() {
		t.Fatal("hash of a is zero")
	}
	if Combine(a, HashString("b")) == Combine(a, HashString("c")) {
		t.Fatal("Combine ignores parts")
	}
	if Combine(a) == a {
		t.Fatal("Combine must rehash")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex length = %d", len(a.String()))
	}
}
