package system

import (
	"context"
	"os"
	"os/exec"
	"time"
)

// DefaultWaitDelay bounds how long a finished command may keep its output
// pipes open. Editors that fork a GUI process and scaffolders that leave a
// package manager daemon behind would otherwise block the caller.
const DefaultWaitDelay = 5 * time.Second

type osExecutor struct {
	waitDelay time.Duration
}

func (e *osExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	return e.ExecuteIn(ctx, "", name, args...)
}

func (e *osExecutor) ExecuteIn(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = e.waitDelay
	return cmd.CombinedOutput()
}

func (e *osExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
