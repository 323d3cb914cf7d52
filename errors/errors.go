package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrBackendTimeout     = fmt.Errorf("backend did not answer in time")
	ErrBackendUnavailable = fmt.Errorf("backend unavailable")
	ErrMalformedRecord    = fmt.Errorf("malformed backend record")
	ErrInvalidSubject     = fmt.Errorf("invalid subject identifier")
	ErrInvalidAddress     = fmt.Errorf("invalid network address")
	ErrUnknownStore       = fmt.Errorf("unknown override store")
	ErrPersistence        = fmt.Errorf("override persistence failed")
)
