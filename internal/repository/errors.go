// Package repository contains data access logic separated from HTTP
// handlers. This file defines error values reused across repositories.
// These sentinels let higher layers distinguish failure scenarios
// without inspecting SQL errors: handlers translate ErrGenreInUse into
// an HTTP 409, the not-found sentinels into 404.
package repository

import "errors"

// ErrGenreInUse is returned when a genre cannot be deleted because
// movies still reference it. The genre is left untouched.
var ErrGenreInUse = errors.New("genre in use")
