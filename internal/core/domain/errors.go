package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey   = errors.New("missing API key")
	ErrUnknownParam    = errors.New("unknown parameter")
	ErrEmptyResultURL  = errors.New("upstream response carries no result URL")
	ErrNoInputItems    = errors.New("no input items")
	ErrMissingImage    = errors.New("missing input image")
	ErrOutputDirUnset  = errors.New("output directory not configured")
	ErrItemUnavailable = errors.New("item index out of range")
)

// BinaryDataError signals that a required binary property is absent on an item.
type BinaryDataError struct {
	Property string
}

func (e *BinaryDataError) Error() string {
	return fmt.Sprintf("no binary data found in item property %q", e.Property)
}

// UpstreamRequestError wraps a failed upload or download call against the
// upscale API, passing the transport message through.
type UpstreamRequestError struct {
	Op  string
	Err error
}

func (e *UpstreamRequestError) Error() string {
	return fmt.Sprintf("upscale %s request failed: %s", e.Op, e.Err)
}

func (e *UpstreamRequestError) Unwrap() error {
	return e.Err
}

// ConfigurationError signals a parameter combination the schema should have
// prevented.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// ItemError attaches the originating item index to an error that aborts a run.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
