// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command openphoto bundles the OpenPhoto utilities: import, download, an
// interactive shell and configuration helpers.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/openphoto-utils/internal/app"
	"github.com/MKhiriev/openphoto-utils/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	code := run(ctx, info, os.Args[1:], app.Options{}, os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, info models.AppBuildInfo, args []string, opts app.Options, stdin io.Reader, stdout, stderr io.Writer) int {
	if opts.LogOutput == nil {
		opts.LogOutput = stderr
	}

	root, err := newRootCommand(info, opts)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return app.ExitFailure
	}
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	code := app.ExitCode(err)
	switch code {
	case app.ExitOK:
	case app.ExitInterrupted:
		fmt.Fprintln(stderr, app.MsgInterrupted)
	default:
		fmt.Fprintln(stderr, "Error:", err)
		if code == app.ExitUsage && cmd != nil {
			fmt.Fprintf(stderr, app.MsgUsageHint+"\n", cmd.CommandPath())
		}
	}
	return code
}

func versionString(info models.AppBuildInfo) string {
	return fmt.Sprintf("%s (commit %s, built %s)",
		orNA(info.BuildVersion()), orNA(info.BuildCommit()), orNA(info.BuildDate()))
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
