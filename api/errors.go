// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the event queue.

package api

import "errors"

// Common errors used across the module.
var (
	ErrBufferClosed      = errors.New("event buffer is closed")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrOperationTimeout  = errors.New("operation timeout")
	ErrNotSupported      = errors.New("operation not supported")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrNotFound          = errors.New("resource not found")
	ErrExecutorClosed    = errors.New("executor is closed")
)
