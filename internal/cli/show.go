package cli

import (
	"encoding/json"
	"fmt"

	"github.com/fortran-tools/fpmeta/internal/codec"
	"github.com/spf13/cobra"
)

var showFormat string

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "toml", "Output format: toml, yaml or json")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <manifest>",
	Short: "Print a manifest with all defaults filled in",
	Long: `Load a manifest and print it with defaults filled in. TOML and YAML output
is pruned like fmt; JSON output is the full tree, with null for unset fields
and empty arrays and objects kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCodec()
		if err != nil {
			return err
		}

		m, err := c.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		var out []byte
		switch showFormat {
		case "json":
			out, err = json.MarshalIndent(m.Table(), "", "  ")
			out = append(out, '\n')
		case "yaml":
			out, err = codec.New(codec.WithEmitter(codec.YAML{})).Dump(m)
		case "toml":
			out, err = c.Dump(m)
		default:
			return fmt.Errorf("unknown format %q (expected toml, yaml or json)", showFormat)
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
