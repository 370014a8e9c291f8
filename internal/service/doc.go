// Package service implements the project service the picker and the CLI
// talk to. It validates requests, runs external commands (the editor and the
// project scaffold command) and records the outcome in the store.
//
//	svc := service.New(st, cfg, service.WithLogger(logging.Component("service")))
//	if err := svc.SetCurrentProject(ctx, key); err != nil {
//	    return err
//	}
//
// Errors are *errors.ProjctlError values so the CLI can map them to exit
// codes; a missing key is always errors.ExitProjectNotFound.
package service
