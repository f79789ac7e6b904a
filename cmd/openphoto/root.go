// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/openphoto-utils/internal/app"
	"github.com/MKhiriev/openphoto-utils/internal/config"
	"github.com/MKhiriev/openphoto-utils/models"
)

func newRootCommand(info models.AppBuildInfo, opts app.Options) (*cobra.Command, error) {
	ctx := newCommandContext(opts)

	rootCmd := &cobra.Command{
		Use:           "openphoto",
		Short:         "Utilities for OpenPhoto servers",
		Version:       versionString(info),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &config.ArgumentError{Err: fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.ArgumentError{Err: err}
	})

	builders := []func(*commandContext) (*cobra.Command, error){
		newImportCommand,
		newDownloadCommand,
		newShellCommand,
	}
	for _, build := range builders {
		cmd, err := build(ctx)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd, nil
}
