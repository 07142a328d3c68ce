// Package shared provides common utilities used across the codebase.
//
//nolint:revive // "shared" is an intentional package name for cross-cutting helpers.
package shared

import (
	"errors"
	"io/fs"
)

// IsMissing reports whether err means the path does not exist.
// A missing path is expected for agents that have never run.
func IsMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// IsPermission reports whether err is a permission failure.
func IsPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
