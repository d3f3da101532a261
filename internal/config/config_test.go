package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cdsctl.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
store:
  driver: sqlite
  path: /tmp/cds.db
blob:
  driver: fs
  fs_root: /tmp/attachments
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.Path != "/tmp/cds.db" {
		t.Fatalf("store = %+v", cfg.Store)
	}
	if cfg.Blob.Driver != "fs" || cfg.Blob.FSRoot != "/tmp/attachments" {
		t.Fatalf("blob = %+v", cfg.Blob)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
store:
  driver: sqlite
  path: /tmp/cds.db
`)
	t.Setenv("CDSCORE_STORE_DRIVER", "postgres")
	t.Setenv("CDSCORE_STORE_DSN", "postgres://localhost/cds")
	t.Setenv("CDSCORE_LOG_LEVEL", "error")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != "postgres" || cfg.Store.DSN != "postgres://localhost/cds" {
		t.Fatalf("store = %+v", cfg.Store)
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsUnknownDrivers(t *testing.T) {
	t.Setenv("CDSCORE_STORE_DRIVER", "oracle")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown store driver")
	}
	t.Setenv("CDSCORE_STORE_DRIVER", "memory")
	t.Setenv("CDSCORE_BLOB_DRIVER", "tape")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown blob driver")
	}
}

func TestSqliteRequiresPath(t *testing.T) {
	t.Setenv("CDSCORE_STORE_DRIVER", "sqlite")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing sqlite path")
	}
}

func TestMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error")
	}
}
