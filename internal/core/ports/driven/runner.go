package driven

import "context"

// CommandRunner executes external commands.
// Abstracted so adapters shelling out to system tools (poppler) can be
// tested without the tools installed.
type CommandRunner interface {
	// Run executes the named command and returns its stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
