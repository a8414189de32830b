package models

import "errors"

// Errors returned by the stores.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicate        = errors.New("record already exists")
)
