package cli

import (
	"fmt"

	"github.com/fortran-tools/fpmeta/internal/codec"
	"github.com/fortran-tools/fpmeta/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(backendsCmd)
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List the available manifest backends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		selected := backendFlag
		if selected == "" {
			selected = config.Backend()
		}
		out := cmd.OutOrStdout()
		names := []string{}
		for _, b := range codec.Backends() {
			names = append(names, b.Name())
		}
		names = append(names, codec.YAML{}.Name())
		for _, name := range names {
			marker := " "
			if name == selected {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s\n", marker, name)
		}
		return nil
	},
}
