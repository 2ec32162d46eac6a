package apperrors

import (
	"errors"
	"fmt"
	"io/fs"
)

// As is errors.As, re-exported so callers only import one errors package.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// TranslateFSError converts filesystem errors to domain errors with operation context.
// Returns nil if err is nil. The operation name is recorded as internal detail.
func TranslateFSError(op, path string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, fs.ErrPermission):
		return InstancePath(fmt.Sprintf("permission denied for %s", path)).
			WithInternal("%s: %v", op, err).Wrap(err)
	case errors.Is(err, fs.ErrNotExist):
		return InstancePath(fmt.Sprintf("parent of %s does not exist", path)).
			WithInternal("%s: %v", op, err).Wrap(err)
	default:
		return InstancePath(fmt.Sprintf("cannot prepare %s", path)).
			WithInternal("%s: %v", op, err).Wrap(err)
	}
}
