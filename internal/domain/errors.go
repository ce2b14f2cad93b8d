package domain

import "errors"

var (
	ErrProspectNotFound  = errors.New("prospect not found")
	ErrInvalidStatus     = errors.New("invalid prospect status")
	ErrInvalidScoreRange = errors.New("invalid lead score range")
	ErrInvalidSettings   = errors.New("invalid organization settings")
)
