package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Keli-LYU/SteamGameRecSys/pipeline"
)

const testPipelineYAML = `
pipeline:
  name: steam_recommend
  nodes:
    - type: recall.hot
      config:
        ids: [570, 730, 440]
    - type: filter
      config:
        blacklist: [570]
    - type: rank.preference
    - type: rerank.sample
      config:
        count: 2
`

func TestBuildPipelineFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	if err := os.WriteFile(path, []byte(testPipelineYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := pipeline.LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if cfg.Pipeline.Name != "steam_recommend" {
		t.Fatalf("unexpected pipeline name %q", cfg.Pipeline.Name)
	}

	if err := ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig: %v", err)
	}

	p, err := cfg.BuildPipeline(DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(p.Nodes))
	}
}

func TestValidateRejectsUnknownType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "rank.xgboost"}}

	if err := ValidatePipelineConfig(cfg); err == nil {
		t.Fatal("expected error for unregistered node type")
	}
}
