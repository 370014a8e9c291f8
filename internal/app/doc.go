// Package app provides the application context for projctl.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Paths    *config.Paths          // Config and state directories
//	    Config   *config.Config         // User configuration
//	    Store    *store.Store           // Project registry
//	    Executor system.CommandExecutor // Editor / create commands
//	    FS       system.FileSystem      // Path validation
//	    Service  *service.Service       // Built from the above
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a, err := app.New()
//	defer a.Close()
//
//	// Testing with custom dependencies
//	a, err := app.New(
//	    app.WithPaths(testPaths),
//	    app.WithExecutor(system.NewMockExecutor()),
//	    app.WithFileSystem(system.NewMockFS()),
//	)
//
// # Available Options
//
//	WithPaths(paths)     // Custom path configuration
//	WithConfig(cfg)      // Skip loading config from disk
//	WithStore(st)        // Use an opened store (not closed by Close)
//	WithExecutor(exec)   // Custom command executor
//	WithFileSystem(fs)   // Custom filesystem
//	WithLogger(logger)   // Custom logger
package app
