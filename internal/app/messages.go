// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

// Human-readable messages printed by the commands. Keeping them in one place
// keeps the wording consistent between tools.
const (
	// MsgUsageHint follows an argument error; %s is the command path.
	MsgUsageHint = "Run '%s --help' for usage."

	// MsgConfigWritten confirms `config init`; %s is the file path.
	MsgConfigWritten = "Wrote sample configuration to %s"

	// MsgConfigEdit reminds the user to fill in the credentials.
	MsgConfigEdit = "Edit the [api] section (or export OPENPHOTO_API_*) before running the tools."

	// MsgConfigExists refuses to replace a config file; %s is the file path.
	MsgConfigExists = "config file already exists at %s (use --overwrite to replace it)"

	// MsgMissingValue marks a required key without value in `config show`.
	MsgMissingValue = "(missing)"

	// MsgInterrupted is printed when a command stops on a signal.
	MsgInterrupted = "interrupted"
)
