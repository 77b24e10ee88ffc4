package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newResetCmd(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all tracked time",
		Long:  `Delete every recorded day. Run "tk export" first if you want a backup.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), "Delete ALL tracked time? This cannot be undone. [y/N]: ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			mgr, err := opts.openManager()
			if err != nil {
				return err
			}
			defer mgr.Close()

			if errs := mgr.StartupErrors(); len(errs) > 0 {
				return fmt.Errorf("tracking data is not usable, nothing was deleted: %w", errs[0])
			}

			if err := mgr.ResetData(); err != nil {
				return fmt.Errorf("data cleared in memory but not saved: %w", err)
			}
			color.New(color.FgYellow, color.Bold).Fprintln(cmd.OutOrStdout(), "All tracked time was deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
