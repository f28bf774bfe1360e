package domain

import "errors"

var (
	ErrNoShowsFound   = errors.New("no watched shows found")
	ErrRecordNotFound = errors.New("show record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)
