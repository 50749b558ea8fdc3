// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	debug bool
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{}

	root := &cobra.Command{
		Use:           constants.AppName,
		Short:         "Export gallery metadata as ComicInfo.xml",
		Long:          `Maps upstream gallery payloads onto the ComicInfo.xml schema read by Komga and similar library managers.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVar(&options.debug, "debug", false, "enable debug logging on stderr")

	root.AddCommand(newConvertCommand(options))
	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", constants.AppName, constants.AppVersion)
			return err
		},
	}
}
