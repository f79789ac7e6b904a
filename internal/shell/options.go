// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package shell

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/openphoto-utils/internal/config"
)

// Section is the name of the shell configuration section.
const Section = "shell"

// KeyMode selects the interface of the shell.
const KeyMode = "mode"

// Shell interfaces.
const (
	// ModeAuto uses the full-screen interface on a terminal, the line
	// interface otherwise.
	ModeAuto = "auto"
	// ModeTUI is the full-screen interface.
	ModeTUI = "tui"
	// ModePlain reads one command per line, e.g. from a pipe.
	ModePlain = "plain"
)

// Options is the typed shell configuration.
type Options struct {
	Mode string
}

// Declare registers the shell keys on s.
func Declare(s *config.Section) {
	s.RegisterKey(config.Flag{Name: "mode", Shorthand: "m", Usage: "Shell interface: auto, tui or plain", Default: ModeAuto})
}

// OptionsFromConfig maps the resolved shell section to [Options]. Unknown
// modes are returned as a [*config.ArgumentError].
func OptionsFromConfig(res *config.Resolved) (Options, error) {
	mode := strings.ToLower(strings.TrimSpace(res.String(KeyMode)))
	switch mode {
	case "":
		mode = ModeAuto
	case ModeAuto, ModeTUI, ModePlain:
	default:
		return Options{}, &config.ArgumentError{
			Err: fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, mode),
		}
	}
	return Options{Mode: mode}, nil
}
