package cli

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArgs    = errors.New("missing arguments")
	ErrLocked         = errors.New("locked. Please run 'carenest login' first")
	ErrNotConfigured  = errors.New("no access code yet. Please run 'carenest setup' first")
	ErrLoginCancelled = errors.New("login cancelled")
	ErrInvalidNumber  = errors.New("invalid number")
)
