// Package essentials reads mutes from the Essentials userdata files.
package essentials

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"svc-mute/domain"
	"svc-mute/integrations"
	"time"

	"gopkg.in/yaml.v3"
)

// userData is the subset of {userdata}/{uuid}.yml we care about.
type userData struct {
	Muted      bool `yaml:"muted"`
	Timestamps struct {
		// Unix millis at which the mute ends, 0 for an indefinite mute.
		Mute int64 `yaml:"mute"`
	} `yaml:"timestamps"`
}

type Checker struct {
	dir   string
	clock func() time.Time
	log   *slog.Logger
}

// NewChecker reads the files of the given Essentials userdata directory.
func NewChecker(dir string, log *slog.Logger) *Checker {
	return &Checker{dir: dir, clock: time.Now, log: log}
}

// Open checks the userdata directory exists before building the checker.
func Open(dir string, log *slog.Logger) (*Checker, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("essentials userdata: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("essentials userdata %s is not a directory", dir)
	}
	return NewChecker(dir, log), nil
}

func (c *Checker) IsMuted(_ context.Context, subject domain.Subject) bool {
	return c.lookup(subject).Muted(c.log, integrations.BackendEssentials, subject)
}

func (c *Checker) lookup(subject domain.Subject) integrations.Verdict {
	path := filepath.Join(c.dir, subject.String()+".yml")
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return integrations.Found(false)
	}
	if err != nil {
		return integrations.Failed(fmt.Errorf("essentials userdata: %w", err))
	}

	var data userData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return integrations.Failed(fmt.Errorf("essentials userdata %s: %w", path, err))
	}
	if !data.Muted {
		return integrations.Found(false)
	}
	end := data.Timestamps.Mute
	return integrations.Found(end == 0 || end > c.clock().UnixMilli())
}
