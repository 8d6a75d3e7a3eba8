package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charlie0129/healthcalc/pkg/calc/units"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", p, err)
	}
	return p
}

func TestMissingFileUsesDefaults(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "missing.json"), "")
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	if f.ListenAddr() != "127.0.0.1:8787" || f.LogLevel() != "info" || f.DefaultUnits() != units.Metric {
		t.Fatalf("unexpected defaults: %v", f.LogrusFields())
	}
	if f.UnixSocket() != "" {
		t.Fatalf("unix socket should be disabled by default, got %q", f.UnixSocket())
	}
}

func TestEmptyFileUsesDefaults(t *testing.T) {
	p := writeFile(t, t.TempDir(), "healthcalc.json", "  \n")
	f, err := NewFile(p, "")
	if err != nil {
		t.Fatal(err)
	}
	if f.GinMode() != "release" {
		t.Fatalf("expected release mode, got %s", f.GinMode())
	}
}

func TestFileValues(t *testing.T) {
	p := writeFile(t, t.TempDir(), "healthcalc.json", `{
  "listenAddr": ":9000",
  "logLevel": "debug",
  "defaultUnits": "us",
  "trustedProxies": ["10.0.0.1"]
}`)
	f, err := NewFile(p, "")
	if err != nil {
		t.Fatal(err)
	}
	if f.ListenAddr() != ":9000" || f.LogLevel() != "debug" {
		t.Fatalf("unexpected values: %v", f.LogrusFields())
	}
	// "us" is normalized on load.
	if f.DefaultUnits() != units.Imperial {
		t.Fatalf("expected imperial, got %s", f.DefaultUnits())
	}
	if got := f.TrustedProxies(); len(got) != 1 || got[0] != "10.0.0.1" {
		t.Fatalf("unexpected trusted proxies %v", got)
	}
}

func TestInvalidFile(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"syntax.json":  `{"listenAddr":`,
		"level.json":   `{"logLevel":"loud"}`,
		"units.json":   `{"defaultUnits":"cubits"}`,
		"ginmode.json": `{"ginMode":"turbo"}`,
	} {
		if _, err := NewFile(writeFile(t, dir, name, content), ""); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "healthcalc.json", `{"listenAddr":":9000","logLevel":"debug"}`)
	envFile := writeFile(t, dir, ".env", "HEALTHCALC_LOG_LEVEL=warn\nHEALTHCALC_DEFAULT_UNITS=imperial\n")

	t.Setenv(EnvListenAddr, ":7000")
	// Registered for cleanup so values loaded from envFile do not leak.
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDefaultUnits, "")
	os.Unsetenv(EnvLogLevel)
	os.Unsetenv(EnvDefaultUnits)

	f, err := NewFile(p, envFile)
	if err != nil {
		t.Fatal(err)
	}
	if f.ListenAddr() != ":7000" {
		t.Errorf("environment should win over file, got %s", f.ListenAddr())
	}
	if f.LogLevel() != "warn" {
		t.Errorf(".env should win over file, got %s", f.LogLevel())
	}
	if f.DefaultUnits() != units.Imperial {
		t.Errorf("expected imperial from .env, got %s", f.DefaultUnits())
	}
}

func TestSaveAndReload(t *testing.T) {
	p := filepath.Join(t.TempDir(), "healthcalc.json")
	f, err := NewFile(p, "")
	if err != nil {
		t.Fatal(err)
	}
	f.SetListenAddr(":8123")
	f.SetDefaultUnits(units.Imperial)
	if err := f.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	g, err := NewFile(p, "")
	if err != nil {
		t.Fatal(err)
	}
	if g.ListenAddr() != ":8123" || g.DefaultUnits() != units.Imperial {
		t.Fatalf("saved values not reloaded: %v", g.LogrusFields())
	}
}

func TestRawFileConfigSnapshot(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	raw, err := NewRawFileConfigFromConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if *raw.ListenAddr != "127.0.0.1:8787" || *raw.DefaultUnits != "metric" {
		t.Fatalf("unexpected snapshot %+v", raw)
	}
	if _, err := NewRawFileConfigFromConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
