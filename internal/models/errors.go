package models

import "errors"

// Error taxonomy for the sync pipeline. Callers classify wrapped errors
// with errors.Is.
var (
	ErrAuthentication      = errors.New("turn14 authentication failed")
	ErrTransport           = errors.New("transport error")
	ErrMapping             = errors.New("product mapping failed")
	ErrReferenceResolution = errors.New("reference resolution failed")
	ErrBatchPush           = errors.New("batch push rejected")
)
