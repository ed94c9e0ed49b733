// Package publish writes one payload to several files so that either every
// target ends up with the new content or none of them changes.
package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrNoTargets = errors.New("publish: no target paths")

type staged struct {
	target  string
	temp    string
	prev    []byte // content before commit; nil when the target did not exist
	existed bool
}

// Files stages data next to every target and then renames the staged files
// into place. A failure while staging leaves all targets untouched. A failure
// while committing restores the targets already committed.
func Files(data []byte, targets ...string) error {
	if len(targets) == 0 {
		return ErrNoTargets
	}
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		clean := filepath.Clean(t)
		if seen[clean] {
			return fmt.Errorf("publish: duplicate target %s", t)
		}
		seen[clean] = true
	}

	stages := make([]*staged, 0, len(targets))
	cleanup := func() {
		for _, s := range stages {
			_ = os.Remove(s.temp)
		}
	}

	for _, target := range targets {
		s, err := stage(target, data)
		if err != nil {
			cleanup()
			return err
		}
		stages = append(stages, s)
	}

	for i, s := range stages {
		if err := os.Rename(s.temp, s.target); err != nil {
			cleanup()
			if rbErr := rollback(stages[:i]); rbErr != nil {
				return fmt.Errorf("publish %s: %w (rollback: %v)", s.target, err, rbErr)
			}
			return fmt.Errorf("publish %s: %w", s.target, err)
		}
	}
	return nil
}

func stage(target string, data []byte) (*staged, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("publish %s: mkdir: %w", target, err)
	}

	s := &staged{target: target}
	prev, err := os.ReadFile(target)
	switch {
	case err == nil:
		s.prev, s.existed = prev, true
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("publish %s: read current: %w", target, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("publish %s: create temp: %w", target, err)
	}
	s.temp = f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(s.temp)
		return nil, fmt.Errorf("publish %s: write: %w", target, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(s.temp)
		return nil, fmt.Errorf("publish %s: sync: %w", target, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(s.temp)
		return nil, fmt.Errorf("publish %s: close: %w", target, err)
	}
	if err := os.Chmod(s.temp, 0o644); err != nil {
		_ = os.Remove(s.temp)
		return nil, fmt.Errorf("publish %s: chmod: %w", target, err)
	}
	return s, nil
}

func rollback(committed []*staged) error {
	var errs []error
	for _, s := range committed {
		if !s.existed {
			if err := os.Remove(s.target); err != nil && !errors.Is(err, os.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		if err := os.WriteFile(s.target, s.prev, 0o644); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
