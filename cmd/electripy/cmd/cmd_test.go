package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"

	"github.com/electripy/electripy/cmd/electripy/internal/cache"
	"github.com/electripy/electripy/cmd/electripy/internal/config"
	"github.com/electripy/electripy/pkg/core"
)

const testConfig = `app:
  title: Demo
log:
  level: error
`

const testLayout = `padding: [4, 8]
elements:
  - kind: Paragraph
    class: para
    text: Hello
    position: {x: 10, y: 20}
    on:
      onKeyPress: pressed
`

// setupProject writes a project into a temporary directory, enters it and
// captures stdout.
func setupProject(t *testing.T) *bytes.Buffer {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		config.FileName:      testConfig,
		config.DefaultLayout: testLayout,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	t.Setenv(cache.EnvVar, filepath.Join(t.TempDir(), "cache"))
	t.Cleanup(func() { cache.SetCacheDir("") })

	var out bytes.Buffer
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &out, &bytes.Buffer{}
	t.Cleanup(func() { stdout, stderr = prevOut, prevErr })
	return &out
}

func TestUnknownCommand(t *testing.T) {
	setupProject(t)
	if err := execute([]string{"bogus"}); err == nil {
		t.Fatal("unknown command succeeded")
	}
}

func TestVersion(t *testing.T) {
	out := setupProject(t)
	if err := execute([]string{"--version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "electripy version "+Version) {
		t.Errorf("version output = %q", out.String())
	}
}

func TestHelp(t *testing.T) {
	out := setupProject(t)
	if err := execute(nil); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"tree", "serve", "ELECTRIPY_CACHE_DIR"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestTreePlain(t *testing.T) {
	out := setupProject(t)
	if err := execute([]string{"--cache-dir", t.TempDir(), "tree", "--no-color"}); err != nil {
		t.Fatal(err)
	}
	want := "<App title=Demo size=(1000, 600) transparent=true rounded_corners=true window_shadow=true resizable=false icon_path=./ui/public/logo.png>\n" +
		"| <Body class=body id=3e561>\n" +
		"|===> <Paragraph class=para id=29290>\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("tree output (-want +got):\n%s", diff)
	}
}

func TestTreeColor(t *testing.T) {
	out := setupProject(t)
	if err := execute([]string{"tree", "--color"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\x1b[") {
		t.Errorf("colored output has no escape sequences: %q", out.String())
	}
	if !strings.Contains(out.String(), "Paragraph") {
		t.Errorf("colored output missing element: %q", out.String())
	}
}

func TestTreeJSON(t *testing.T) {
	out := setupProject(t)
	if err := execute([]string{"tree", config.DefaultLayout, "--json"}); err != nil {
		t.Fatal(err)
	}
	var got core.RenderedNode
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if got.Kind != core.KindBody || len(got.Children) != 1 {
		t.Fatalf("root = %+v", got)
	}
	para := got.Children[0]
	if para.Text != "Hello" {
		t.Errorf("paragraph text = %q", para.Text)
	}
	if diff := cmp.Diff([]string{core.ExposedName("29290", core.OnKeyPress)}, para.Callbacks); diff != "" {
		t.Errorf("callbacks (-want +got):\n%s", diff)
	}
}

func TestTreeArgs(t *testing.T) {
	setupProject(t)
	if err := execute([]string{"tree", "--bogus"}); err == nil {
		t.Error("unknown flag accepted")
	}
	if err := execute([]string{"tree", "a.yaml", "b.yaml"}); err == nil {
		t.Error("two layouts accepted")
	}
	if err := execute([]string{"tree", "missing.yaml"}); err == nil {
		t.Error("missing layout accepted")
	}
}

func TestParseServeFlags(t *testing.T) {
	tests := []struct {
		args    []string
		want    overrides
		wantErr bool
	}{
		{args: nil, want: overrides{}},
		{args: []string{"ui.yaml", "--host", "0.0.0.0", "--eel-port=9000"}, want: overrides{layout: "ui.yaml", host: "0.0.0.0", eelPort: 9000}},
		{args: []string{"--frontend-port", "5173"}, want: overrides{frontendPort: 5173}},
		{args: []string{"--eel-port"}, wantErr: true},
		{args: []string{"--eel-port", "0"}, wantErr: true},
		{args: []string{"--frontend-port=http"}, wantErr: true},
		{args: []string{"--verbose"}, wantErr: true},
		{args: []string{"a.yaml", "b.yaml"}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseServeFlags(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseServeFlags(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseServeFlags(%q) = %+v, want %+v", tt.args, got, tt.want)
		}
	}
}

func TestOverridesApply(t *testing.T) {
	cfg := &config.Resolved{Layout: "/p/layout.yaml", Host: "localhost", EelPort: 8888, FrontendPort: 3000}
	overrides{host: "0.0.0.0", eelPort: 9000}.apply(cfg)
	if cfg.Layout != "/p/layout.yaml" || cfg.Host != "0.0.0.0" || cfg.EelPort != 9000 || cfg.FrontendPort != 3000 {
		t.Errorf("apply = %+v", cfg)
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("loud", false); err == nil {
		t.Error("invalid level accepted")
	}
	l, err := newLogger("debug", true)
	if err != nil {
		t.Fatal(err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level not enabled")
	}
}
