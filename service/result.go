package service

import "github.com/rs/zerolog/log"

// DataStatus tells a caller whether an empty payload means "nothing to show"
// or "the provider failed and this is the fallback".
type DataStatus string

const (
	StatusOK    DataStatus = "ok"
	StatusEmpty DataStatus = "empty"
	StatusError DataStatus = "error"
)

// Result is returned by listing endpoints, which always answer with a
// payload. Err is set only when Status is StatusError.
type Result[T any] struct {
	Data   T
	Status DataStatus
	Err    error
}

func okResult[T any](data T) Result[T] {
	return Result[T]{Data: data, Status: StatusOK}
}

func emptyResult[T any](data T) Result[T] {
	return Result[T]{Data: data, Status: StatusEmpty}
}

func failedResult[T any](fallback T, err error, what, symbol string) Result[T] {
	log.Warn().Err(err).Str("symbol", symbol).Str("endpoint", what).Msg("Upstream failed, serving empty default")
	return Result[T]{Data: fallback, Status: StatusError, Err: err}
}
