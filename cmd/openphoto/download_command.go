// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/openphoto-utils/internal/app"
	"github.com/MKhiriev/openphoto-utils/internal/downloader"
	"github.com/MKhiriev/openphoto-utils/internal/utils"
)

func newDownloadCommand(ctx *commandContext) (*cobra.Command, error) {
	boot, err := ctx.bootstrap(downloader.Section)
	if err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Mirror every photo of the server into a directory",
		Long: `Download the original of every photo into <photo_directory>/.photos and
link it under its original file name. Photos found in the cache directory
are linked from there instead of downloaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := boot.Load(args)
			if err != nil {
				return err
			}
			res, err := env.ToolConfig()
			if err != nil {
				return err
			}
			opts, err := downloader.OptionsFromConfig(res)
			if err != nil {
				return err
			}
			client, err := env.Client()
			if err != nil {
				return err
			}

			report, err := downloader.New(client, env.Logger).Run(cmd.Context(), opts)
			if app.IsUsageError(err) {
				return err
			}
			out := cmd.OutOrStdout()
			printSummary(out, [][]string{
				{"downloaded", strconv.Itoa(report.Downloaded)},
				{"from cache", strconv.Itoa(report.Cached)},
				{"existing", strconv.Itoa(report.Existing)},
				{"linked", strconv.Itoa(report.Linked)},
				{"failed", strconv.Itoa(report.Failed)},
			})
			if len(report.Failures) > 0 {
				ids := make([]string, 0, len(report.Failures))
				for id := range report.Failures {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				rows := make([][]string, 0, len(ids))
				for _, id := range ids {
					rows = append(rows, []string{id, report.Failures[id].Error()})
				}
				cmd.PrintErrln(utils.RenderTable([]string{"photo", "error"}, rows))
			}
			return err
		},
	}
	bindTool(cmd, boot)
	return cmd, nil
}
