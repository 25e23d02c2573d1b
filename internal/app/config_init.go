package app

import (
	"fmt"
	"os"

	"github.com/tacogips/sgmtr/internal/config"
	"github.com/tacogips/sgmtr/internal/debug"
)

// InitConfigOptions contains options for configuration initialization.
type InitConfigOptions struct {
	// Path is the config file to write.
	Path string
	// Force overwrites an existing config file if true.
	Force bool
}

// InitConfig writes the default configuration to opts.Path.
func InitConfig(opts InitConfigOptions) error {
	debug.DebugSection("[app] InitConfig workflow start")
	debug.DebugValue("[app] Config path", opts.Path)
	debug.DebugValue("[app] Force", opts.Force)

	if opts.Path == "" {
		return NewValidationError("config path cannot be empty", nil)
	}

	exists, err := checkConfigFile(opts.Path)
	if err != nil {
		return err
	}
	if exists && !opts.Force {
		return NewValidationError(
			fmt.Sprintf("configuration already exists at %s (use --force to overwrite)", opts.Path),
			nil,
		)
	}

	if err := config.Save(opts.Path, config.DefaultConfig()); err != nil {
		debug.Debug("[app] Failed to save config: %v", err)
		return NewStorageError("failed to save configuration", err)
	}

	debug.Debug("[app] InitConfig workflow completed successfully")
	return nil
}

// checkConfigFile checks if the config file exists.
func checkConfigFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, NewStorageError("failed to check config file", err)
	}
	if info.IsDir() {
		return false, NewValidationError(path+" exists but is a directory", nil)
	}
	return true, nil
}
