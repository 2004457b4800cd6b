package apperror

import "errors"

var (
	ErrInvalidSetupParameters = errors.New("invalid setup parameters")
	ErrInvalidMove            = errors.New("invalid move")
	ErrGameIsNotStarted       = errors.New("game is not started")
	ErrNotFound               = errors.New("not found")
)
