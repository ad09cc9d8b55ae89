package domain

import "errors"

var (
	ErrUnknownForm = errors.New("unknown envelope form")
)
