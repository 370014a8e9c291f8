// Package testutil provides test fixtures and utilities.
//
// # Test Environment
//
// NewTestEnv builds a real App on a temporary sqlite store, with the
// command executor and filesystem replaced by mocks, and installs it as
// app.Default for the duration of the test:
//
//	env := testutil.NewTestEnv(t)
//	shop := env.AddProject(project.Record{Name: "shop", Path: "/src/shop"})
//	env.SetCurrent(shop.Key)
//	env.Executor.AddResponse("code", nil, errors.New("not found"))
//
// # Fixtures
//
// Config and creation-progress fixtures are embedded using go:embed:
//
//	fixtures/valid_config.toml
//	fixtures/bigfish_config.yaml
//	fixtures/invalid_config.toml
//	fixtures/progress_*.json
//
// Helper functions load and parse them:
//
//	cfg, err := testutil.ValidConfig()
//	cfg, err := testutil.BigfishConfig()
//	p, err := testutil.LoadProgressFixture("progress_failed.json")
//
// For custom parsing or testing edge cases:
//
//	data, err := testutil.LoadFixture("progress_failed_string.json")
package testutil
