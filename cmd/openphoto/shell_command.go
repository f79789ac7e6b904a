// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/openphoto-utils/internal/shell"
)

func newShellCommand(ctx *commandContext) (*cobra.Command, error) {
	boot, err := ctx.bootstrap(shell.Section)
	if err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive prompt with a configured API client",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := boot.Load(args)
			if err != nil {
				return err
			}
			res, err := env.ToolConfig()
			if err != nil {
				return err
			}
			opts, err := shell.OptionsFromConfig(res)
			if err != nil {
				return err
			}
			client, err := env.Client()
			if err != nil {
				return err
			}

			session := shell.NewSession(client, env.Root, env.Logger)
			return shell.New(session, env.Logger).
				WithIO(cmd.InOrStdin(), cmd.OutOrStdout()).
				Run(cmd.Context(), opts)
		},
	}
	bindTool(cmd, boot)
	return cmd, nil
}
