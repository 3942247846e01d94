package service

import "errors"

var (
	// ErrInvalidStatus is returned when a status change names a value the
	// admin may not assign.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrUnknownPackage is returned when a checkout selection names a
	// package the catalog does not carry.
	ErrUnknownPackage = errors.New("unknown package")
	// ErrQuoteAlreadyLinked is returned when project creation names a quote
	// that already has a project.
	ErrQuoteAlreadyLinked = errors.New("quote already linked to a project")
)
