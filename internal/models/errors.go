package models

import "errors"

// Not-found errors are raised at lookup time, before any mutation, so an
// unowned or missing id can never leave partial effects behind.
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrSavingsGoalNotFound = errors.New("savings goal not found")
	ErrCategoryExists      = errors.New("category already exists")
)
