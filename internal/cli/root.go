package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tacogips/sgmtr/internal/app"
	"github.com/tacogips/sgmtr/internal/config"
	"github.com/tacogips/sgmtr/internal/debug"
)

// Global flags
var (
	globalWorkspace string
	globalConfig    string
	globalNoColor   bool
	globalQuiet     bool
	globalDebug     bool
)

// activeConfig is the configuration loaded for the running command.
var activeConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sgmtr",
	Short: "Folder structure generator",
	Long: `sgmtr generates folder structures from a JSON-like tree description.

Keys are file or folder names, objects are folders and strings are file
contents. Component files (.jsx, .tsx) whose content is a snippet keyword
(rafce, rfc, rafc, rsc, rcc) receive React boilerplate.

Use "sgmtr preview <file>" to see the tree before writing it,
"sgmtr generate <file>" to write it, and "sgmtr reflect <dir>" to turn an
existing folder back into a tree file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
		activeConfig = nil
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	debug.Sync()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&globalWorkspace, FlagWorkspace, "w", "", DescWorkspace)
	rootCmd.PersistentFlags().StringVar(&globalConfig, FlagConfig, "", DescConfig)
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// configPath returns the --config value or the default location.
func configPath() (string, error) {
	if globalConfig != "" {
		return config.ExpandPath(globalConfig)
	}
	return config.ExpandPath(config.DefaultConfigPath())
}

// loadConfig loads and validates the configuration once per command. An
// explicit --config file must exist; the default one is optional.
func loadConfig() (*config.Config, error) {
	if activeConfig != nil {
		return activeConfig, nil
	}

	path, err := configPath()
	if err != nil {
		return nil, err
	}
	debug.DebugValue("[cli] Config path", path)

	loader := config.NewLoader()
	var cfg *config.Config
	if globalConfig != "" {
		cfg, err = loader.Load(path)
	} else {
		cfg, err = loader.LoadOrDefault(path)
	}
	if err != nil {
		return nil, err
	}
	if err := loader.Validate(cfg); err != nil {
		return nil, err
	}

	debug.DebugJSON("[cli] Effective config", cfg)
	activeConfig = cfg
	return cfg, nil
}

// openWorkspace opens --workspace, or the current directory.
func openWorkspace() (*app.Workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	dir := globalWorkspace
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return nil, err
		}
	}
	return app.OpenWorkspace(dir, cfg)
}

func quiet() bool {
	return globalQuiet || (activeConfig != nil && activeConfig.Output.Quiet)
}

func colorEnabled() bool {
	if globalNoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return activeConfig == nil || activeConfig.Output.Color
}
