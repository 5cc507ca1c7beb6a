package main

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show fixcat version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, _ := cmd.Flags().GetString("color")
			mode, err := readColorMode(value)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			name := color.New(color.FgCyan, color.Bold)
			if shouldColor(mode, w) {
				name.EnableColor()
			} else {
				name.DisableColor()
			}

			fmt.Fprintf(w, "%s %s (%s, %s/%s)\n", name.Sprint("fixcat"), version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
