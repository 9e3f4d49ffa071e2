package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

// Ensure execRunner implements the interface.
var _ driven.CommandRunner = (*execRunner)(nil)

// execRunner runs external commands through os/exec.
type execRunner struct{}

// Run executes the command and returns its stdout.
// On failure the trimmed stderr is folded into the error, since the
// poppler tools put their diagnostics there.
func (*execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %s: %w", name, msg, err)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
