package model

import "errors"

var (
	// Session and access errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedToken     = errors.New("malformed token")

	// Upstream errors
	ErrUpstream    = errors.New("upstream unavailable")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnfulfilled = errors.New("no warehouse can fulfill order")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
