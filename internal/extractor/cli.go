package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Parser extracts the metadata record for a single asset file.
type Parser interface {
	ParseAsset(ctx context.Context, assetPath string) (*Record, error)
}

// Option configures the CLI parser.
type Option func(*CLI)

// WithBinary overrides the worker binary, which defaults to the running
// executable.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithLogLevel sets the log level passed through to workers.
func WithLogLevel(level string) Option {
	return func(c *CLI) {
		if level != "" {
			c.logLevel = level
		}
	}
}

// CLI parses assets by spawning one worker process per call. The worker is
// this program's own parse-asset command; its stdout carries exactly one
// JSON record.
type CLI struct {
	binary   string
	sdkPath  string
	logLevel string
}

// NewCLI constructs a subprocess-backed parser for the given extractor
// location.
func NewCLI(sdkPath string, opts ...Option) (*CLI, error) {
	if strings.TrimSpace(sdkPath) == "" {
		return nil, errors.New("extractor path required")
	}

	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve worker binary: %w", err)
	}

	cli := &CLI{binary: self, sdkPath: sdkPath, logLevel: "info"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// ParseAsset runs one worker and decodes its record. A non-zero exit, empty
// output, or malformed JSON is returned as an error for the caller to count
// against that asset alone.
func (c *CLI) ParseAsset(ctx context.Context, assetPath string) (*Record, error) {
	if strings.TrimSpace(assetPath) == "" {
		return nil, errors.New("asset path required")
	}

	args := []string{"parse-asset", "--file", assetPath, "--sdk", c.sdkPath, "--log-level", c.logLevel}
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("worker for %s: %w", assetPath, err)
	}

	output := bytes.TrimSpace(stdout.Bytes())
	if len(output) == 0 {
		return nil, fmt.Errorf("worker for %s produced no output", assetPath)
	}

	var rec Record
	if err := json.Unmarshal(output, &rec); err != nil {
		return nil, fmt.Errorf("decode record for %s: %w", assetPath, err)
	}
	if rec.Model.Name == "" {
		return nil, fmt.Errorf("record for %s has no model name", assetPath)
	}
	return &rec, nil
}

var _ Parser = (*CLI)(nil)
