package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tacogips/sgmtr/internal/app"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview <FILE>",
	Short: "Show the tree a DSL file would generate",
	Long: `Render the folder structure a DSL file would create, without writing.

Component files with snippet keywords are marked [expands: code]; keywords
in other files are marked as ignored. Ignored paths are left out.
With --detail, component files list their import and export lines.
With --watch, the preview is redrawn whenever the DSL or ignore file changes.

Examples:
  sgmtr preview structure.sgmtr
  sgmtr preview structure.sgmtr --detail
  sgmtr preview structure.sgmtr --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

// Preview command flags
var (
	previewTarget string
	previewVars   []string
	previewAnswer []string
	previewDetail bool
	previewWatch  bool
)

func init() {
	previewCmd.Flags().StringVarP(&previewTarget, FlagTarget, "t", "", DescTarget)
	previewCmd.Flags().StringArrayVar(&previewVars, FlagVars, nil, DescVars)
	previewCmd.Flags().StringArrayVar(&previewAnswer, FlagAnswer, nil, DescAnswer)
	previewCmd.Flags().BoolVarP(&previewDetail, FlagDetail, "d", false, DescDetail)
	previewCmd.Flags().BoolVar(&previewWatch, FlagWatch, false, DescWatch)
}

func runPreview(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	file, err := absFromCwd(args[0])
	if err != nil {
		return err
	}
	target, err := absFromCwd(previewTarget)
	if err != nil {
		return err
	}
	preset, err := loadVars(previewVars, previewAnswer)
	if err != nil {
		return err
	}

	opts := app.PreviewOptions{File: file, Target: target, Detail: previewDetail, Preset: preset}
	label := previewLabel(ws, target)

	if !previewWatch {
		result, err := app.Preview(cmd.Context(), ws, opts)
		if err != nil {
			return err
		}
		printPreview(label, result)
		return nil
	}

	printInfo(fmt.Sprintf("Watching %s (Ctrl-C to stop)", args[0]))
	return app.WatchPreview(cmd.Context(), ws, opts, func(result *app.PreviewResult, err error) {
		if err != nil {
			printError(err)
			return
		}
		printHeader(args[0])
		printPreview(label, result)
	})
}

func previewLabel(ws *app.Workspace, target string) string {
	if target == "" {
		return ws.Name + "/"
	}
	return filepath.Base(target) + "/"
}

func printPreview(label string, result *app.PreviewResult) {
	fmt.Fprintln(stdout, label)
	fmt.Fprint(stdout, result.Text)
}
