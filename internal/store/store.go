// Package store holds the fixed, parameterized statements the services run. Every
// statement takes the handle to run on, so the same statement works inside or outside
// a unit of work.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by single-row reads that match nothing visible.
var ErrNotFound = errors.New("not found")

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
