package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tracked time as JSON",
		Example: `  tk export > backup.json
  tk export --output ~/backup/time.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := opts.openManager()
			if err != nil {
				return err
			}
			defer mgr.Close()

			if output == "" {
				return mgr.Export(cmd.OutOrStdout())
			}
			if err := mgr.ExportTo(output); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default: stdout)")
	return cmd
}
