package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tacogips/sgmtr/internal/app"
	"github.com/tacogips/sgmtr/internal/template/dsl"
)

// reflectCmd represents the reflect command
var reflectCmd = &cobra.Command{
	Use:   "reflect <DIR>",
	Short: "Convert an existing folder into a DSL file",
	Long: `Walk a folder and write its structure as a DSL file next to it.

Files whose content looks like a React component become the matching snippet
keyword; all other files become empty strings. Paths matching the workspace
ignore file are left out. The output is written to <DIR>.sgmtr.json (or
.sgmtr.yaml) beside the folder.

Examples:
  sgmtr reflect src/components
  sgmtr reflect src --format yaml
  sgmtr reflect src --print --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runReflect,
}

// Reflect command flags
var (
	reflectFormat string
	reflectPrint  bool
	reflectDryRun bool
)

func init() {
	reflectCmd.Flags().StringVarP(&reflectFormat, FlagFormat, "f", "", DescFormat)
	reflectCmd.Flags().BoolVarP(&reflectPrint, FlagPrint, "p", false, DescPrint)
	reflectCmd.Flags().BoolVar(&reflectDryRun, FlagDryRun, false, DescDryRun)
}

func runReflect(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	folder, err := absFromCwd(args[0])
	if err != nil {
		return err
	}
	format, err := parseFormatFlag(reflectFormat, ws.Config.Reflect.Format)
	if err != nil {
		return err
	}

	result, err := app.Reflect(cmd.Context(), ws, app.ReflectOptions{
		Folder: folder,
		Format: format,
		DryRun: reflectDryRun,
	})
	if err != nil {
		return err
	}

	if reflectPrint {
		if err := dsl.PrintTree(stdout, filepath.Base(folder), result.Tree); err != nil {
			return fmt.Errorf("failed to print tree: %w", err)
		}
	}

	s := result.Stats
	summary := fmt.Sprintf("%d folder(s), %d file(s), %d snippet(s), %d ignored", s.Directories, s.Files, s.Snippets, s.Ignored)
	if reflectDryRun {
		printSuccess(fmt.Sprintf("Would write %s (%s)", result.OutputPath, summary))
	} else {
		printSuccess(fmt.Sprintf("Wrote %s (%s)", result.OutputPath, summary))
	}
	if s.Unreadable > 0 {
		printWarning(fmt.Sprintf("%d entr(ies) could not be read and were left empty", s.Unreadable))
	}
	return nil
}
