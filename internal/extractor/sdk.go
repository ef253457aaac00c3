package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RawLabel is one localized display string from the vendor toolkit.
type RawLabel struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

// RawOption is one enum option (a variant or a season) with its labels.
type RawOption struct {
	Name   string     `json:"name"`
	Labels []RawLabel `json:"labels"`
}

// RawPlant is the vendor toolkit's description of one asset.
type RawPlant struct {
	Name           string      `json:"name"`
	Labels         []RawLabel  `json:"labels"`
	Variants       []RawOption `json:"variants"`
	DefaultVariant int         `json:"default_variant"`
	Seasons        []RawOption `json:"seasons"`
	DefaultSeason  int         `json:"default_season"`
}

// Version identifies the vendor toolkit release.
type Version struct {
	Raw   string
	Major int
	Minor int
	Micro int
}

func (v Version) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
}

// SDK wraps the vendor extractor executable.
type SDK struct {
	path string
}

// NewSDK validates the extractor location and returns a client for it.
func NewSDK(path string) (*SDK, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("extractor path required")
	}
	return &SDK{path: path}, nil
}

// Path returns the extractor executable location.
func (s *SDK) Path() string {
	return s.path
}

// Version queries the extractor release triple.
func (s *SDK) Version(ctx context.Context) (Version, error) {
	cmd := commandContext(ctx, s.path, "--version")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return Version{}, fmt.Errorf("extractor version: %w", err)
	}
	return ParseVersion(stdout.String())
}

// Dump runs the extractor against one asset and decodes its description.
func (s *SDK) Dump(ctx context.Context, assetPath string) (*RawPlant, error) {
	if strings.TrimSpace(assetPath) == "" {
		return nil, errors.New("asset path required")
	}
	cmd := commandContext(ctx, s.path, "dump", "--json", assetPath)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("extractor dump %s: %w", assetPath, err)
	}

	var raw RawPlant
	if err := json.Unmarshal(stdout.Bytes(), &raw); err != nil {
		return nil, fmt.Errorf("decode extractor output for %s: %w", assetPath, err)
	}
	return &raw, nil
}

// ParseVersion parses a major.minor.micro triple, tolerating surrounding
// text such as a product name prefix.
func ParseVersion(output string) (Version, error) {
	fields := strings.Fields(strings.TrimSpace(output))
	for i := len(fields) - 1; i >= 0; i-- {
		parts := strings.SplitN(fields[i], ".", 3)
		if len(parts) != 3 {
			continue
		}
		major, err1 := strconv.Atoi(parts[0])
		minor, err2 := strconv.Atoi(parts[1])
		micro, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		return Version{Raw: fields[i], Major: major, Minor: minor, Micro: micro}, nil
	}
	return Version{}, fmt.Errorf("no version triple in %q", strings.TrimSpace(output))
}
