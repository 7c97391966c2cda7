// Package tooling keeps editor tooling pointed at the active build tree.
package tooling

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Refresher links the compilation database of the active build tree into the project root.
type Refresher struct {
	logger ports.Logger
}

// NewRefresher creates a new Refresher.
func NewRefresher(logger ports.Logger) *Refresher {
	return &Refresher{logger: logger}
}

// Refresh symlinks <buildDir>/compile_commands.json into the project root.
// A regular file already at the destination is left alone.
func (r *Refresher) Refresh(_ context.Context, spec *domain.InvocationSpec) error {
	source := filepath.Join(spec.BuildDir, domain.CompileCommandsFileName)
	if _, err := os.Stat(source); err != nil {
		r.logger.Warn(fmt.Sprintf("%s not found in %s", domain.CompileCommandsFileName, spec.BuildDir))
		return nil
	}

	dest := filepath.Join(spec.Root, domain.CompileCommandsFileName)
	info, err := os.Lstat(dest)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink == 0:
		r.logger.Warn(fmt.Sprintf("%s exists and is not a symlink, leaving it untouched", dest))
		return nil
	case err == nil:
		if current, readErr := os.Readlink(dest); readErr == nil && current == source {
			r.logLanguageServer(spec)
			return nil
		}
		if rmErr := os.Remove(dest); rmErr != nil {
			return zerr.With(zerr.Wrap(rmErr, domain.ErrToolingRefreshFailed.Error()), "path", dest)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return zerr.With(zerr.Wrap(err, domain.ErrToolingRefreshFailed.Error()), "path", dest)
	}

	if err := os.Symlink(source, dest); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrToolingRefreshFailed.Error()), "path", dest)
	}

	r.logLanguageServer(spec)
	return nil
}

func (r *Refresher) logLanguageServer(spec *domain.InvocationSpec) {
	r.logger.Info(fmt.Sprintf("language server: --compile-commands-dir=%s", spec.BuildDir))
}
