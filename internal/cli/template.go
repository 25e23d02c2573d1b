package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tacogips/sgmtr/internal/app"
)

// templateCmd represents the template command group
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Workspace template commands",
	Long: `Manage reusable DSL templates stored in the workspace.

Templates are DSL files in .sgmtr/templates (configurable) and can be
generated by name or picked interactively.`,
}

// templateListCmd represents the template list command
var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspace templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

// templateGenerateCmd represents the template generate command
var templateGenerateCmd = &cobra.Command{
	Use:   "generate [NAME]",
	Short: "Generate a workspace template",
	Long: `Generate one of the workspace templates.

If NAME is omitted, a picker lists the available templates. Dismissing the
picker does nothing.

Examples:
  sgmtr template generate
  sgmtr template generate component --target src/components`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplateGenerate,
}

// templateNewCmd represents the template new command
var templateNewCmd = &cobra.Command{
	Use:   "new <NAME>",
	Short: "Create a workspace template from a scaffold",
	Long: `Create a new workspace template from a built-in scaffold.

Examples:
  sgmtr template new button
  sgmtr template new feature --type feature
  sgmtr template new button --force`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateNew,
}

// templateCheckCmd represents the template check command
var templateCheckCmd = &cobra.Command{
	Use:   "check [PATH]",
	Short: "Validate DSL files",
	Long: `Parse DSL files and report syntax errors, names that cannot be generated
and snippet keywords that will be written literally.

If PATH is not specified, the workspace templates directory is checked.

Examples:
  sgmtr template check
  sgmtr template check structure.sgmtr
  sgmtr template check ./trees -r`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplateCheck,
}

// templateVarsCmd represents the template vars command
var templateVarsCmd = &cobra.Command{
	Use:   "vars <FILE>",
	Short: "List the variables a DSL file uses",
	Long: `List every ${variable} a DSL file references and where its value
will come from: built-in, a --vars or --answer preset, an interactive prompt, or unset
(empty).

Examples:
  sgmtr template vars structure.sgmtr
  sgmtr template vars structure.sgmtr --vars .env.sgmtr`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateVars,
}

// Template generate command flags
var (
	templateGenerateTarget     string
	templateGenerateVars       []string
	templateGenerateAnswers    []string
	templateGenerateOnConflict string
	templateGenerateDryRun     bool
)

// Template new command flags
var (
	templateNewType  string
	templateNewForce bool
)

// Template check command flags
var templateCheckRecursive bool

// Template vars command flags
var (
	templateVarsVars    []string
	templateVarsAnswers []string
)

func init() {
	// Add subcommands to template
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateGenerateCmd)
	templateCmd.AddCommand(templateNewCmd)
	templateCmd.AddCommand(templateCheckCmd)
	templateCmd.AddCommand(templateVarsCmd)

	// Flags for template generate
	templateGenerateCmd.Flags().StringVarP(&templateGenerateTarget, FlagTarget, "t", "", DescTarget)
	templateGenerateCmd.Flags().StringArrayVar(&templateGenerateVars, FlagVars, nil, DescVars)
	templateGenerateCmd.Flags().StringArrayVar(&templateGenerateAnswers, FlagAnswer, nil, DescAnswer)
	templateGenerateCmd.Flags().StringVar(&templateGenerateOnConflict, FlagOnConflict, "", DescOnConflict)
	templateGenerateCmd.Flags().BoolVar(&templateGenerateDryRun, FlagDryRun, false, DescDryRun)

	// Flags for template new
	templateNewCmd.Flags().StringVar(&templateNewType, FlagType, "basic", DescType)
	templateNewCmd.Flags().BoolVarP(&templateNewForce, FlagForce, "f", false, DescForce)

	// Flags for template check
	templateCheckCmd.Flags().BoolVarP(&templateCheckRecursive, "recursive", "r", false, "Recursively check subdirectories")

	// Flags for template vars
	templateVarsCmd.Flags().StringArrayVar(&templateVarsVars, FlagVars, nil, DescVars)
	templateVarsCmd.Flags().StringArrayVar(&templateVarsAnswers, FlagAnswer, nil, DescAnswer)
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	templates, err := app.ListTemplates(ws)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		printWarning(fmt.Sprintf("No templates found in %s/", ws.Config.DSL.TemplatesDir))
		return nil
	}

	for _, t := range templates {
		fmt.Fprintf(stdout, "%s\t%s\n", t.Name, paint(mutedStyle, t.Path))
	}
	return nil
}

func runTemplateGenerate(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	opts, err := buildGenerateOptions("", templateGenerateTarget, templateGenerateVars,
		templateGenerateAnswers, templateGenerateOnConflict, templateGenerateDryRun)
	if err != nil {
		return err
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	result, err := app.GenerateFromTemplate(cmd.Context(), ws, app.GenerateFromTemplateOptions{
		GenerateOptions: opts,
		Name:            name,
	})
	if err != nil {
		return err
	}
	if result == nil {
		printInfo("No template selected")
		return nil
	}
	printGenerateResult(result, templateGenerateDryRun)
	return nil
}

func runTemplateNew(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	availableTypes, err := app.AvailableScaffoldTypes()
	if err != nil {
		return err
	}
	printProgress(fmt.Sprintf("Creating template %q from scaffold %q (available: %s)",
		args[0], templateNewType, strings.Join(availableTypes, ", ")))

	result, err := app.NewTemplate(ws, app.NewTemplateOptions{
		Name:  args[0],
		Type:  templateNewType,
		Force: templateNewForce,
	})
	if err != nil {
		return err
	}

	if result.Overwritten {
		printWarning(fmt.Sprintf("Overwrote %s", result.Path))
	} else {
		printSuccess(fmt.Sprintf("Created %s", result.Path))
	}
	printInfo("Next steps:")
	printInfo(fmt.Sprintf("  1. Edit %s", result.Path))
	printInfo(fmt.Sprintf("  2. Run 'sgmtr template generate %s'", args[0]))
	return nil
}

func runTemplateCheck(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	path := ""
	if len(args) > 0 {
		if path, err = absFromCwd(args[0]); err != nil {
			return err
		}
	}

	result, err := app.CheckTemplates(cmd.Context(), ws, app.CheckOptions{
		Path:      path,
		Recursive: templateCheckRecursive,
	})
	if err != nil {
		return err
	}

	if result.FilesChecked == 0 {
		printWarning("No DSL files found")
		return nil
	}
	printInfo(fmt.Sprintf("Files checked: %d", result.FilesChecked))

	for _, w := range result.Warnings {
		printWarning(formatIssue(w))
	}
	if result.FilesWithErrors > 0 {
		for _, e := range result.Errors {
			fmt.Fprintf(stderr, "%s %s\n", paint(errorStyle, "✗"), formatIssue(e))
		}
		return app.NewValidationError(fmt.Sprintf("validation failed: %d file(s) with errors", result.FilesWithErrors), nil)
	}

	printSuccess("All DSL files are valid")
	return nil
}

func formatIssue(issue app.CheckIssue) string {
	if issue.Path != "" {
		return fmt.Sprintf("%s [%s] %s", issue.File, issue.Path, issue.Message)
	}
	return fmt.Sprintf("%s %s", issue.File, issue.Message)
}

func runTemplateVars(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	file, err := absFromCwd(args[0])
	if err != nil {
		return err
	}
	preset, err := loadVars(templateVarsVars, templateVarsAnswers)
	if err != nil {
		return err
	}

	result, err := app.CollectVars(ws, file, preset)
	if err != nil {
		return err
	}
	if len(result.Variables) == 0 {
		printInfo("No variables")
		return nil
	}

	for _, v := range result.Variables {
		line := fmt.Sprintf("%s\t%s", v.Name, v.Source)
		if v.Source == app.SourcePreset {
			line += fmt.Sprintf(" (%q)", v.Value)
		}
		fmt.Fprintln(stdout, line)
	}
	return nil
}
