package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/sgmtr/internal/app"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <FILE>",
	Short: "Generate a folder structure from a DSL file",
	Long: `Parse a DSL file and create its folders and files in the workspace.

Variables like ${name} in keys and values are replaced before writing.
${workspaceName}, ${date} and ${time} are built in, --vars files supply
presets, --answer "Question=Value" answers ${ask:Question} up front and
remaining ${ask:Question} variables prompt when running in a terminal.

Existing files follow the on-conflict policy (config default: ask). Without
a terminal, ask behaves like skip.

Examples:
  sgmtr generate structure.sgmtr
  sgmtr generate structure.sgmtr --target src/features
  sgmtr generate structure.sgmtr --vars .env.sgmtr --on-conflict overwrite
  sgmtr generate structure.sgmtr --answer "Component name=Button"
  sgmtr generate structure.sgmtr --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

// Generate command flags
var (
	generateTarget     string
	generateVars       []string
	generateAnswers    []string
	generateOnConflict string
	generateDryRun     bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateTarget, FlagTarget, "t", "", DescTarget)
	generateCmd.Flags().StringArrayVar(&generateVars, FlagVars, nil, DescVars)
	generateCmd.Flags().StringArrayVar(&generateAnswers, FlagAnswer, nil, DescAnswer)
	generateCmd.Flags().StringVar(&generateOnConflict, FlagOnConflict, "", DescOnConflict)
	generateCmd.Flags().BoolVar(&generateDryRun, FlagDryRun, false, DescDryRun)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	opts, err := buildGenerateOptions(args[0], generateTarget, generateVars, generateAnswers, generateOnConflict, generateDryRun)
	if err != nil {
		return err
	}

	if generateDryRun {
		printInfo("[DRY RUN] No files will be written")
	}
	printProgress(fmt.Sprintf("Generating %s", args[0]))

	result, err := app.Generate(cmd.Context(), ws, opts)
	if err != nil {
		return err
	}
	printGenerateResult(result, generateDryRun)
	return nil
}

// buildGenerateOptions resolves command-line paths and flags.
func buildGenerateOptions(file, target string, vars, answers []string, onConflict string, dryRun bool) (app.GenerateOptions, error) {
	absFile, err := absFromCwd(file)
	if err != nil {
		return app.GenerateOptions{}, err
	}
	absTarget, err := absFromCwd(target)
	if err != nil {
		return app.GenerateOptions{}, err
	}
	preset, err := loadVars(vars, answers)
	if err != nil {
		return app.GenerateOptions{}, err
	}
	policy, err := parseConflictFlag(onConflict)
	if err != nil {
		return app.GenerateOptions{}, err
	}

	return app.GenerateOptions{
		File:       absFile,
		Target:     absTarget,
		Preset:     preset,
		OnConflict: policy,
		DryRun:     dryRun,
		Host:       newHost(),
	}, nil
}

func printGenerateResult(result *app.GenerateResult, dryRun bool) {
	if dryRun {
		for _, d := range result.Directories {
			printMuted("  dir  " + d)
		}
		for _, f := range result.Files {
			printMuted("  file " + f)
		}
	}

	verb := "Generated"
	if dryRun {
		verb = "Would generate"
	}
	printSuccess(fmt.Sprintf("%s %d file(s) in %s (%d overwritten, %d skipped, %d snippet(s))",
		verb, result.FilesCreated+result.FilesOverwritten, result.Target,
		result.FilesOverwritten, result.FilesSkipped, result.Snippets))
	if result.FilesSkipped > 0 {
		printWarning(fmt.Sprintf("%d existing file(s) left unchanged", result.FilesSkipped))
	}
}
