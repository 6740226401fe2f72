package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Path != "./scribe.db" {
		t.Errorf("default db path = %q", cfg.Database.Path)
	}
	if cfg.Storage.PublicPath != "/generated-images" {
		t.Errorf("default public path = %q", cfg.Storage.PublicPath)
	}
	if cfg.Generation.Mode != "pipeline" {
		t.Errorf("default mode = %q, want pipeline", cfg.Generation.Mode)
	}
	if cfg.Generation.TextProvider != "gemini" {
		t.Errorf("default text provider = %q", cfg.Generation.TextProvider)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q", cfg.Logging.Level)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
generation:
  mode: agent
  gemini_api_key: file-key
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Generation.Mode != "agent" {
		t.Errorf("mode = %q, want agent", cfg.Generation.Mode)
	}
	// Unset fields keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default", cfg.Server.Host)
	}
	if cfg.Generation.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("openai model = %q, want default", cfg.Generation.OpenAIModel)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a mapping"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed yaml")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GOOGLE_AI_API_KEY", "env-gemini")
	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("HUGGINGFACE_API_KEY", "env-hf")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("generation:\n  gemini_api_key: file-key\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generation.GeminiAPIKey != "env-gemini" {
		t.Errorf("env should win over file, got %q", cfg.Generation.GeminiAPIKey)
	}
	if cfg.Generation.OpenAIAPIKey != "env-openai" {
		t.Errorf("openai key = %q", cfg.Generation.OpenAIAPIKey)
	}
	if cfg.Generation.HuggingFaceAPIKey != "env-hf" {
		t.Errorf("huggingface key = %q", cfg.Generation.HuggingFaceAPIKey)
	}
}

func TestEnvOverridesApplyWithoutConfigFile(t *testing.T) {
	t.Setenv("GOOGLE_AI_API_KEY", "env-only")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generation.GeminiAPIKey != "env-only" {
		t.Errorf("gemini key = %q, want env value", cfg.Generation.GeminiAPIKey)
	}
}
