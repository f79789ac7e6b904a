// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/openphoto-utils/internal/app"
	"github.com/MKhiriev/openphoto-utils/internal/importer"
)

func newImportCommand(ctx *commandContext) (*cobra.Command, error) {
	boot, err := ctx.bootstrap(importer.Section)
	if err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:   "import TARGET...",
		Short: "Upload photos to the server",
		Long: `Upload photo files, or every photo of the given directories, to the
server. With --create-albums each directory becomes an album.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := boot.Load(args)
			if err != nil {
				return err
			}
			res, err := env.ToolConfig()
			if err != nil {
				return err
			}
			opts, err := importer.OptionsFromConfig(res, env.Logger)
			if err != nil {
				return err
			}
			client, err := env.Client()
			if err != nil {
				return err
			}

			report, err := importer.New(client, env.Logger).Run(cmd.Context(), opts)
			if app.IsUsageError(err) {
				return err
			}
			printSummary(cmd.OutOrStdout(), [][]string{
				{"uploaded", strconv.FormatInt(report.Uploaded, 10)},
				{"updated", strconv.FormatInt(report.Updated, 10)},
				{"existing", strconv.FormatInt(report.Existing, 10)},
				{"failed", strconv.FormatInt(report.Failed, 10)},
			})
			return err
		},
	}
	bindTool(cmd, boot)
	return cmd, nil
}
