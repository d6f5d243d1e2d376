package cli

import (
	"fmt"
	"os"

	"github.com/fortran-tools/fpmeta/internal/manifest"
	"github.com/spf13/cobra"
)

var checkStrict bool

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat lint warnings as failures")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <manifest>...",
	Short: "Validate one or more manifests",
	Long: `Load each manifest, report schema errors, and lint the raw document against
the fpm JSON schema. Exits non-zero if any manifest fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCodec()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading file %s: %w", path, err)
			}

			tree, err := c.Parse(data)
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", path, err)
				failed++
				continue
			}

			lint, err := manifest.Lint(tree)
			if err != nil {
				fmt.Fprintf(out, "%s: linting: %v\n", path, err)
				failed++
				continue
			}
			for _, issue := range lint.Issues {
				fmt.Fprintf(out, "%s%s: %s: %s\n", path, issue.Path, issue.Severity, issue.Message)
			}

			m, err := manifest.Decode(tree)
			switch {
			case err != nil:
				fmt.Fprintf(out, "%s: %v\n", path, err)
				failed++
			case !lint.Valid || (checkStrict && len(lint.Issues) > 0):
				failed++
			default:
				fmt.Fprintf(out, "%s: ok (%s %s)\n", path, m.Name, m.Version)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d manifests failed", failed, len(args))
		}
		return nil
	},
}
