package server

import "github.com/pkg/errors"

var (
	errEmptyQuickCapture   = errors.New("text is required")
	errUnknownQuickCapture = errors.New("unknown quick capture action")
)
