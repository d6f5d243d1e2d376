package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fmtWrite bool

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write the result back to the manifest file")
	rootCmd.AddCommand(fmtCmd)
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <manifest>",
	Short: "Rewrite a manifest in canonical form",
	Long: `Load a manifest and emit it again: declared keys in schema order, aliases
spelled with hyphens, empty lists and tables removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCodec()
		if err != nil {
			return err
		}

		path := args[0]
		m, err := c.LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if fmtWrite {
			return c.DumpFile(m, path)
		}

		out, err := c.Dump(m)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
