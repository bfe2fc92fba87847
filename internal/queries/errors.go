package queries

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

type ErrorKind string

const (
	KindNone     ErrorKind = "none"
	KindNetwork  ErrorKind = "network"
	KindTimeout  ErrorKind = "timeout"
	KindCanceled ErrorKind = "canceled"
	KindCommand  ErrorKind = "command"
	KindUnknown  ErrorKind = "unknown"
)

// Classify tells connection trouble apart from a rejected command.
func Classify(err error) ErrorKind {
	var serverErr mongo.ServerError
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case mongo.IsTimeout(err):
		return KindTimeout
	case mongo.IsNetworkError(err):
		return KindNetwork
	case errors.As(err, &serverErr):
		return KindCommand
	default:
		return KindUnknown
	}
}
