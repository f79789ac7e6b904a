// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors of the configuration engine. Callers match them with
// [errors.Is]; concrete details are carried by [MissingKeyError] and
// [ArgumentError].
var (
	// ErrMissingRequiredKey indicates that a required key is absent from every
	// layer of its section.
	ErrMissingRequiredKey = errors.New("missing required key")
	// ErrConfigUnreadable indicates that a config file does not exist or
	// cannot be read.
	ErrConfigUnreadable = errors.New("config file unreadable")
	// ErrConfigInvalid indicates that a config file is not valid INI.
	ErrConfigInvalid = errors.New("config file invalid")
	// ErrDuplicateKey indicates that a key, flag or shorthand was registered
	// twice.
	ErrDuplicateKey = errors.New("duplicate configuration key")
	// ErrInvalidFlag indicates a malformed flag declaration.
	ErrInvalidFlag = errors.New("invalid flag declaration")
	// ErrNotParsed indicates that resolution was requested before the command
	// line and config files were loaded.
	ErrNotParsed = errors.New("configuration not parsed")
	// ErrNotResolved indicates that resolved values were requested before
	// [Root.ResolveAll] succeeded.
	ErrNotResolved = errors.New("configuration not resolved")
	// ErrUnexpectedArgument indicates positional arguments nobody accepts.
	ErrUnexpectedArgument = errors.New("unexpected argument")
)

// MissingKeyError identifies a required key that no layer defines.
type MissingKeyError struct {
	Section string
	Key     string
	Flag    string
	Env     string
}

// Error implements error.
func (e *MissingKeyError) Error() string {
	hints := make([]string, 0, 2)
	if e.Flag != "" {
		hints = append(hints, "--"+e.Flag)
	}
	if e.Env != "" {
		hints = append(hints, "$"+e.Env)
	}

	msg := fmt.Sprintf("missing required argument %s in %s section", e.Key, e.Section)
	if len(hints) > 0 {
		msg += " (set " + strings.Join(hints, " or ") + " or the config file)"
	}
	return msg
}

// Is makes errors.Is(err, ErrMissingRequiredKey) match.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingRequiredKey
}

// ArgumentError is a configuration failure caused by user input: a missing
// required key, an unreadable explicit config file or an unexpected argument.
// Commands report it like a command-line parsing error.
type ArgumentError struct {
	Err error
}

// Error implements error.
func (e *ArgumentError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func argumentError(format string, args ...any) *ArgumentError {
	return &ArgumentError{Err: fmt.Errorf(format, args...)}
}

// IsArgumentError reports whether err carries an [ArgumentError].
func IsArgumentError(err error) bool {
	var argErr *ArgumentError
	return errors.As(err, &argErr)
}
