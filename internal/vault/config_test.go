package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// testEnv isolates a test from the developer's real global config.
func testEnv(t *testing.T) map[string]string {
	t.Helper()

	return map[string]string{"XDG_CONFIG_HOME": t.TempDir()}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()

	cfg, sources, err := LoadConfig(workDir, "", Config{}, testEnv(t))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Extension != "txt" {
		t.Errorf("default extension = %q, want %q", cfg.Extension, "txt")
	}

	if sources.Project != "" {
		t.Errorf("no project config should be loaded, got %q", sources.Project)
	}
}

func TestLoadConfigReadsProjectFileWithComments(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	cfgFile := filepath.Join(workDir, ConfigFileName)

	jwcc := "{\n  // articles ship as markdown in this archive\n  \"extension\": \"md\",\n}\n"
	if err := os.WriteFile(cfgFile, []byte(jwcc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, sources, err := LoadConfig(workDir, "", Config{}, testEnv(t))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Extension != "md" {
		t.Errorf("extension = %q, want %q", cfg.Extension, "md")
	}

	if sources.Project != cfgFile {
		t.Errorf("project source = %q, want %q", sources.Project, cfgFile)
	}
}

func TestLoadConfigCLIOverrideWins(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	cfgFile := filepath.Join(workDir, ConfigFileName)

	if err := os.WriteFile(cfgFile, []byte(`{"extension": "md"}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := LoadConfig(workDir, "", Config{Extension: "text"}, testEnv(t))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Extension != "text" {
		t.Errorf("extension = %q, want %q", cfg.Extension, "text")
	}
}

func TestLoadConfigExplicitFileMustExist(t *testing.T) {
	t.Parallel()

	_, _, err := LoadConfig(t.TempDir(), "missing.json", Config{}, testEnv(t))
	if !errors.Is(err, ErrConfigFileNotFound) {
		t.Errorf("expected ErrConfigFileNotFound, got %v", err)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"empty extension", `{"extension": ""}`, nil}, // empty string falls back to default
		{"dotted extension", `{"extension": ".txt"}`, ErrExtensionDot},
		{"broken json", `{"extension": `, ErrConfigInvalid},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			workDir := t.TempDir()
			cfgFile := filepath.Join(workDir, ConfigFileName)

			if err := os.WriteFile(cfgFile, []byte(testCase.content), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}

			_, _, err := LoadConfig(workDir, "", Config{}, testEnv(t))
			if testCase.want == nil {
				if err != nil {
					t.Errorf("LoadConfig failed: %v", err)
				}

				return
			}

			if !errors.Is(err, testCase.want) {
				t.Errorf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}

func TestGlobalConfigPathPrefersXDG(t *testing.T) {
	t.Parallel()

	got := globalConfigPath(map[string]string{"XDG_CONFIG_HOME": "/tmp/xdg"})
	want := filepath.Join("/tmp/xdg", "rollnote", "config.json")

	if got != want {
		t.Errorf("globalConfigPath = %q, want %q", got, want)
	}
}
