package publish

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/informer/internal/errors"
	"git.home.luguber.info/inful/informer/internal/logfields"
)

// Publisher writes an artifact set to the output directory. The whole tree
// is staged next to the destination first and swapped in with renames, so a
// failed run leaves the previously published site untouched.
type Publisher struct {
	outputDir string
}

// NewPublisher creates a publisher for the given output directory.
func NewPublisher(outputDir string) *Publisher {
	return &Publisher{outputDir: filepath.Clean(outputDir)}
}

// Publish stages and swaps the full tree. All composition has already
// happened in memory; write order has no effect on the final tree state.
func (p *Publisher) Publish(set *Set) error {
	staging := p.outputDir + ".staging"
	backup := p.outputDir + ".previous"

	// A leftover staging dir from an interrupted run is stale by definition.
	if err := os.RemoveAll(staging); err != nil {
		return errors.PublishError("clean staging", err)
	}

	for _, path := range set.Paths() {
		a, _ := set.Get(path)
		dst := filepath.Join(staging, filepath.FromSlash(strings.TrimPrefix(path, "/")))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			cleanup(staging)
			return errors.PublishError("create directory", err)
		}
		if err := os.WriteFile(dst, a.Content, 0o644); err != nil {
			cleanup(staging)
			return errors.PublishError("write artifact", err).WithContext("path", path)
		}
	}

	if err := os.RemoveAll(backup); err != nil {
		cleanup(staging)
		return errors.PublishError("clean backup", err)
	}
	if _, err := os.Stat(p.outputDir); err == nil {
		if err := os.Rename(p.outputDir, backup); err != nil {
			cleanup(staging)
			return errors.PublishError("move previous tree", err)
		}
	}
	if err := os.Rename(staging, p.outputDir); err != nil {
		// Try to restore the previous tree before failing.
		if _, statErr := os.Stat(backup); statErr == nil {
			if restoreErr := os.Rename(backup, p.outputDir); restoreErr != nil {
				slog.Error("failed to restore previous output tree", logfields.Error(restoreErr))
			}
		}
		cleanup(staging)
		return errors.PublishError("activate staged tree", err)
	}
	if err := os.RemoveAll(backup); err != nil {
		slog.Warn("failed to remove backup tree", logfields.Error(err))
	}

	slog.Info("published output tree", logfields.Path(p.outputDir), logfields.Artifacts(set.Len()))
	return nil
}

func cleanup(staging string) {
	if err := os.RemoveAll(staging); err != nil {
		slog.Warn("failed to remove staging dir", logfields.Error(err))
	}
}
