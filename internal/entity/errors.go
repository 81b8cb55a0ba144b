package entity

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("record already exists")
	ErrStorageUnavailable = errors.New("storage unavailable, try again")
)
