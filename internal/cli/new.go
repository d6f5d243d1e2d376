package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fortran-tools/fpmeta/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	newOutputDir string
	newOpts      scaffold.Options
)

func init() {
	newCmd.Flags().StringVar(&newOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	newCmd.Flags().BoolVar(&newOpts.Lib, "lib", false, "Create a library in src/")
	newCmd.Flags().BoolVar(&newOpts.App, "app", false, "Create an application in app/")
	newCmd.Flags().BoolVar(&newOpts.Test, "test", false, "Create a test program in test/")
	newCmd.Flags().BoolVar(&newOpts.Example, "example", false, "Create an example program in example/")
	newCmd.Flags().StringVar(&newOpts.Author, "author", "", "Package author")
	newCmd.Flags().StringVar(&newOpts.Maintainer, "maintainer", "", "Package maintainer")
	newCmd.Flags().StringVar(&newOpts.License, "license", "", "SPDX license identifier")
	newCmd.Flags().StringVar(&newOpts.Description, "description", "", "One-line package description")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new fpm package",
	Long: `Create a new fpm package with a canonical fpm.toml and starter Fortran sources.

Without --lib, --app, --test or --example, a library, an application and a
test program are generated.

Examples:
  fpmeta new toml-f --author "Jane Doe" --license MIT
  fpmeta new demo --app --output-dir ./demo-app`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := scaffold.ValidateName(name); err != nil {
			return err
		}

		c, err := newCodec()
		if err != nil {
			return err
		}

		outDir := newOutputDir
		if outDir == "" {
			outDir = filepath.Join(".", name)
		}

		result, err := scaffold.Generate(c, name, newOpts, outDir)
		if err != nil {
			return err
		}

		printResult(cmd.OutOrStdout(), name, result)
		return nil
	},
}

func printResult(w io.Writer, name string, result *scaffold.Result) {
	fmt.Fprintf(w, "Created package %s at %s/\n", name, result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}
