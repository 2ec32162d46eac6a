// Package instance manages the instance-local writable directory.
package instance

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oszuidwest/zwfm-arcview/internal/apperrors"
)

// Dir is an instance directory resolved to an absolute path.
type Dir struct {
	Path string
}

// Resolve makes path absolute. Relative paths are taken from the working directory.
func Resolve(path string) (Dir, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Dir{}, apperrors.InstancePath("cannot resolve instance path").
			WithInternal("abs %s: %v", path, err).Wrap(err)
	}
	return Dir{Path: abs}, nil
}

// Ensure creates the directory and its parents. An existing directory is
// left untouched and reported as success.
func (d Dir) Ensure() error {
	// #nosec G301 - 0755 so the web server user can read instance files
	err := os.MkdirAll(d.Path, 0o755)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) && isDir(d.Path) {
		return nil
	}
	return apperrors.TranslateFSError("mkdir", d.Path, err)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
