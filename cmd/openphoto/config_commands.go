// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MKhiriev/openphoto-utils/internal/app"
	"github.com/MKhiriev/openphoto-utils/internal/config"
	"github.com/MKhiriev/openphoto-utils/internal/utils"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand(ctx))

	return configCmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [TOOL] [flags]",
		Short: "Show the resolved configuration of a tool",
		Long: fmt.Sprintf(`Show every key of the api, tool and logging sections with its value and
the layer it comes from. Tools: %s. Any tool flag may follow.`, strings.Join(toolNames(), ", ")),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
				name, args = strings.ToLower(args[0]), args[1:]
			}

			boot, err := ctx.bootstrap(name)
			if err != nil {
				return err
			}
			if err = boot.Parse(args); err != nil {
				if errors.Is(err, pflag.ErrHelp) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\n\nUsage:\n  %s\n\n%s", cmd.Long, cmd.UseLine(), boot.Root().Usage())
				}
				return err
			}

			entries, err := boot.Root().Inspect()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				value, origin := e.Value, e.Origin.String()
				switch {
				case e.Missing():
					value, origin = app.MsgMissingValue, ""
				case !e.Set:
					origin = ""
				}
				rows = append(rows, []string{e.Section, e.Key, value, origin})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, utils.RenderTable([]string{"section", "key", "value", "origin"}, rows))
			if files := boot.Root().ConfigFiles(); len(files) > 0 {
				fmt.Fprintf(out, "Config files: %s\n", strings.Join(files, ", "))
			} else {
				fmt.Fprintln(out, "No config file loaded")
			}
			return nil
		},
	}
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				target string
				err    error
			)
			if strings.TrimSpace(targetPath) == "" {
				target, err = ctx.defaultConfigPath()
			} else {
				target, err = config.ExpandPath(strings.TrimSpace(targetPath))
			}
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}

			if !overwrite {
				if _, err = os.Stat(target); err == nil {
					return fmt.Errorf(app.MsgConfigExists, target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err = config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, app.MsgConfigWritten+"\n", target)
			fmt.Fprintln(out, app.MsgConfigEdit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}
