package lib

import "errors"

var (
	ErrNoMessageID = errors.New("message has no unique identifier")
)
