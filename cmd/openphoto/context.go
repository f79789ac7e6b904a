// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/openphoto-utils/internal/app"
	"github.com/MKhiriev/openphoto-utils/internal/config"
	"github.com/MKhiriev/openphoto-utils/internal/downloader"
	"github.com/MKhiriev/openphoto-utils/internal/importer"
	"github.com/MKhiriev/openphoto-utils/internal/shell"
	"github.com/MKhiriev/openphoto-utils/internal/utils"
)

// tools maps tool section names to their key declarations.
var tools = map[string]app.Tool{
	importer.Section:   {Name: importer.Section, Declare: importer.Declare},
	downloader.Section: {Name: downloader.Section, Declare: downloader.Declare},
	shell.Section:      {Name: shell.Section, Declare: shell.Declare},
}

func toolNames() []string {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type commandContext struct {
	opts app.Options
}

func newCommandContext(opts app.Options) *commandContext {
	return &commandContext{opts: opts}
}

func (c *commandContext) bootstrap(name string) (*app.Bootstrap, error) {
	tool, ok := tools[name]
	if !ok && name != "" {
		return nil, &config.ArgumentError{
			Err: fmt.Errorf("unknown tool %q, expected one of %s", name, strings.Join(toolNames(), ", ")),
		}
	}
	boot, err := app.New(tool, c.opts)
	if err != nil {
		return nil, fmt.Errorf("declare %s configuration: %w", name, err)
	}
	return boot, nil
}

func (c *commandContext) defaultConfigPath() (string, error) {
	if c.opts.DefaultConfigPath != "" {
		return config.ExpandPath(c.opts.DefaultConfigPath)
	}
	return config.DefaultConfigPath()
}

// bindTool exposes the configuration flags of boot on cmd and replaces the
// flag listing of the help output with the per-section one.
func bindTool(cmd *cobra.Command, boot *app.Bootstrap) {
	cmd.Flags().AddFlagSet(boot.Flags())
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		w := c.OutOrStderr()
		fmt.Fprintf(w, "Usage:\n  %s\n\n", c.UseLine())
		fmt.Fprint(w, boot.Root().Usage())
		fmt.Fprintln(w, "\n  -h, --help   help for", c.Name())
		return nil
	})
}

func printSummary(w io.Writer, counts [][]string) {
	fmt.Fprintln(w, utils.RenderTable([]string{"result", "photos"}, counts, 1))
}
