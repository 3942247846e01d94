package repository

import "errors"

var (
	// ErrQuoteNotFound is returned when an operation references a quote id
	// that does not exist in the collection.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrCustomerNotFound is returned when a customer id is not in the
	// derived collection.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProjectNotFound is returned when a project id does not exist.
	ErrProjectNotFound = errors.New("project not found")
)
