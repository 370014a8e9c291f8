package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/firefly-engineering/projctl/internal/app"
	"github.com/firefly-engineering/projctl/internal/config"
	"github.com/firefly-engineering/projctl/internal/project"
)

// paths returns the path configuration, honouring --config-dir and
// --state-dir.
func paths() *config.Paths {
	if app.Default != nil {
		return app.Default.Paths
	}
	p := config.DefaultPaths()
	if configDir != "" {
		p.ConfigDir = configDir
	}
	if stateDir != "" {
		p.StateDir = stateDir
	}
	return p
}

// getApp returns the application, building it on first use.
func getApp() (*app.App, error) {
	if app.Default != nil {
		return app.Default, nil
	}
	a, err := app.New(app.WithPaths(paths()))
	if err != nil {
		return nil, err
	}
	app.SetDefault(a)
	return a, nil
}

// resolveProject finds the project named by a key, name or fuzzy query.
func resolveProject(ctx context.Context, query string) (*app.App, project.Record, error) {
	a, err := getApp()
	if err != nil {
		return nil, project.Record{}, err
	}
	key, err := a.Service.Resolve(ctx, query)
	if err != nil {
		return nil, project.Record{}, err
	}
	rec, err := a.Service.Get(ctx, key)
	if err != nil {
		return nil, project.Record{}, err
	}
	return a, rec, nil
}

// formatStatus renders a project status for plain output.
func formatStatus(r project.Record) string {
	switch project.Classify(r) {
	case project.StatusProgress:
		if step := r.CreatingProgress.CurrentStep(); step != "" {
			return fmt.Sprintf("◌ creating (%s)", step)
		}
		return "◌ creating"
	case project.StatusFailure:
		return "✗ failed"
	default:
		return "✓ ready"
	}
}

// now is the clock used for relative times in output.
var now = time.Now
