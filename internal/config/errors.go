package config

import "errors"

var (
	ErrLoad    = errors.New("config: load failed")
	ErrInvalid = errors.New("config: invalid")
)
