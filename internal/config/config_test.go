package config

import "testing"

func validConfig() Config {
	return Config{
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Embedding: EmbeddingConfig{
			Model: "nomic-embed-text",
		},
		Index: IndexConfig{
			Name: "cocktails",
		},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_MissingEmbeddingModel(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Model = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing embedding model")
	}
}

func TestValidate_MissingIndexName(t *testing.T) {
	cfg := validConfig()
	cfg.Index.Name = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing index name")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Embedding.BaseURL == "" {
		t.Error("expected default embedding base URL")
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("expected Dimensions=768, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Index.KeyPrefix != "cocktail:" {
		t.Errorf("expected KeyPrefix=cocktail:, got %q", cfg.Index.KeyPrefix)
	}
	if cfg.Metrics.Port != 9091 {
		t.Errorf("expected Metrics.Port=9091, got %d", cfg.Metrics.Port)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("COCKTAIL_TEST_VAR", "redis-host:6379")

	in := []byte("addrs: [\"${COCKTAIL_TEST_VAR}\"]\nprefix: ${COCKTAIL_TEST_UNSET:-cocktail:}\n")
	out := string(expandEnvVars(in))

	want := "addrs: [\"redis-host:6379\"]\nprefix: cocktail:\n"
	if out != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, want)
	}
}
