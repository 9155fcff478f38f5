package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigHasSaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Processing.NumWorkers <= 0 {
		t.Fatal("expected a positive default worker count")
	}
	if cfg.GAC.Smoothing <= 0 || cfg.ACWE.Smoothing <= 0 {
		t.Fatal("expected a positive default smoothing pass count")
	}
	if cfg.ACWE.Lambda1 != 1.0 || cfg.ACWE.Lambda2 != 1.0 {
		t.Fatalf("expected default lambda1=lambda2=1.0, got %v/%v", cfg.ACWE.Lambda1, cfg.ACWE.Lambda2)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error loading a missing config: %v", err)
	}
	if cfg.GAC.Iterations != DefaultConfig().GAC.Iterations {
		t.Fatal("expected default config when the file is missing")
	}
}

func TestSaveAndLoadConfigRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "morphsnakes.yaml")

	cfg := DefaultConfig()
	cfg.ACWE.Lambda1 = 2.5
	cfg.GAC.Balloon = -1.0
	cfg.Processing.Sigma = 3.0

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("unexpected error saving config: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}
	if loaded.ACWE.Lambda1 != 2.5 {
		t.Fatalf("expected ACWE.Lambda1=2.5 after round trip, got %v", loaded.ACWE.Lambda1)
	}
	if loaded.GAC.Balloon != -1.0 {
		t.Fatalf("expected GAC.Balloon=-1.0 after round trip, got %v", loaded.GAC.Balloon)
	}
	if loaded.Processing.Sigma != 3.0 {
		t.Fatalf("expected Processing.Sigma=3.0 after round trip, got %v", loaded.Processing.Sigma)
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "default.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("unexpected error creating default config file: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error loading created config file: %v", err)
	}
	if loaded.GAC.Iterations != DefaultConfig().GAC.Iterations {
		t.Fatal("expected the created config file to match DefaultConfig")
	}
}
