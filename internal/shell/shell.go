// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package shell is an interactive prompt with a configured photo client.
//
// The full-screen interface is a bubbletea program; the line interface
// serves pipes and dumb terminals. Both run the same commands through a
// [Session].
package shell

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/MKhiriev/openphoto-utils/internal/logger"
)

// Shell runs a [Session] in the interface chosen by [Options.Mode].
type Shell struct {
	session *Session
	logger  *logger.Logger

	in  io.Reader
	out io.Writer
}

// New constructs a Shell reading from stdin and writing to stdout.
func New(session *Session, log *logger.Logger) *Shell {
	if log == nil {
		log = logger.Nop()
	}
	return &Shell{
		session: session,
		logger:  log,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// WithIO replaces stdin and stdout.
func (s *Shell) WithIO(in io.Reader, out io.Writer) *Shell {
	s.in, s.out = in, out
	return s
}

// Run blocks until the user quits or ctx is cancelled.
func (s *Shell) Run(ctx context.Context, opts Options) error {
	mode := s.mode(opts.Mode)
	s.logger.Debug().Str("mode", mode).Str("host", s.session.Host()).Msg("starting shell")

	if mode == ModePlain {
		return runPlain(ctx, s.session, s.in, s.out)
	}

	program := tea.NewProgram(
		newModel(ctx, s.session),
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *Shell) mode(mode string) string {
	if mode != ModeAuto && mode != "" {
		return mode
	}
	if isTerminal(s.in) && isTerminal(s.out) {
		return ModeTUI
	}
	return ModePlain
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
