// File: cmd/version.go
package cmd

import (
	"fmt"

	"repodoc/pkg/version"

	"github.com/spf13/cobra"
)

// versionCmd prints the build that produces exports, for example
//
//	repodoc version v0.3.0 (commit: 0123abc) built at 2026-01-02T03:04:05Z with go1.24.4 on linux/amd64
//
// With --short only the version number is printed, which is what release
// scripts compare against the tag.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of repodoc",
	Long:  `Display the current version information of the repodoc CLI tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		v := version.Get()
		if short {
			fmt.Fprintln(cmd.OutOrStdout(), v.Version)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")
	RootCmd.AddCommand(versionCmd)
}
