package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[render]
viz_type = "graph"
formats = ["svg", "png"]
scale = 3.0
background = "#ffffff"

[server]
addr = ":9090"
redis_addr = "localhost:6379"
mongo_uri = "mongodb://localhost:27017"
mongo_database = "diagrams"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Render.VizType != "graph" {
		t.Errorf("Render.VizType = %q", cfg.Render.VizType)
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Formats[1] != "png" {
		t.Errorf("Render.Formats = %v", cfg.Render.Formats)
	}
	if cfg.Render.Scale != 3.0 {
		t.Errorf("Render.Scale = %v", cfg.Render.Scale)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.MongoDatabase != "diagrams" {
		t.Errorf("Server.MongoDatabase = %q", cfg.Server.MongoDatabase)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Render.VizType != "" || cfg.Server.Addr != "" {
		t.Errorf("missing config should yield zero values: %+v", cfg)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[render\nbroken"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Error("invalid TOML should error")
	}
}
