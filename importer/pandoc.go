package importer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Pandoc converts documents by running the pandoc command.
type Pandoc struct {
	// Binary is the pandoc executable; empty means "pandoc" on PATH.
	Binary string
}

func (p Pandoc) binary() string {
	if p.Binary != "" {
		return p.Binary
	}
	return "pandoc"
}

// Available reports whether the pandoc executable can be found.
func (p Pandoc) Available() bool {
	_, err := exec.LookPath(p.binary())
	return err == nil
}

func (p Pandoc) Convert(ctx context.Context, path, format, mediaDir string) (string, error) {
	args := []string{path, "-f", format, "-t", "gfm"}
	if mediaDir != "" {
		args = append(args, "--extract-media", mediaDir)
	}
	cmd := exec.CommandContext(ctx, p.binary(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w", msg, err)
		}
		return "", err
	}
	return stdout.String(), nil
}
