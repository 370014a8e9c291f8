package testutil

import (
	"embed"

	"github.com/firefly-engineering/projctl/internal/config"
	"github.com/firefly-engineering/projctl/internal/project"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadConfigFixture parses and validates a config fixture.
func LoadConfigFixture(name string) (*config.Config, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return config.Parse(name, data)
}

// LoadProgressFixture decodes a persisted creation-progress fixture.
func LoadProgressFixture(name string) (project.CreatingProgress, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return project.CreatingProgress{}, err
	}
	return project.ParseCreatingProgress(data), nil
}

// ValidConfig returns the valid umi config fixture.
func ValidConfig() (*config.Config, error) {
	return LoadConfigFixture("valid_config.toml")
}

// BigfishConfig returns the bigfish config fixture.
func BigfishConfig() (*config.Config, error) {
	return LoadConfigFixture("bigfish_config.yaml")
}
