package cmd

import (
	"github.com/spf13/pflag"
)

// Flag names shared between commands
const (
	flagVerbose       = "verbose"
	flagDebug         = "debug"
	flagConfig        = "config"
	flagFile          = "file"
	flagExample       = "example"
	flagOutput        = "output"
	flagInferTypes    = "infer-types"
	flagInteractive   = "interactive"
	flagNoInteractive = "no-interactive"
	flagDryRun        = "dry-run"
	flagBackup        = "backup"
	flagTUI           = "tui"
	flagFrom          = "from"
	flagYes           = "yes"
)

// addGlobalFlags defines the modifiers accepted by every command.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.BoolP(flagVerbose, "v", false, "Verbose output")
	fs.BoolP(flagDebug, "x", false, "Debug output")
	fs.String(flagConfig, "", "Path to envcheck.toml (default is the XDG config location)")
}

// addFileFlags defines the live and example path flags.
func addFileFlags(fs *pflag.FlagSet) {
	fs.StringP(flagFile, "f", "", "Path to the .env file (default from config, .env)")
	fs.StringP(flagExample, "e", "", "Path to the .env.example file (default from config, .env.example)")
	fs.Bool(flagInferTypes, false, "Infer types of unannotated example variables from their values")
}

// addFixFlags defines the flags of the fix command.
func addFixFlags(fs *pflag.FlagSet) {
	fs.BoolP(flagInteractive, "i", true, "Prompt for missing or invalid values")
	fs.Bool(flagNoInteractive, false, "Never prompt; leave missing or invalid values as they are")
	fs.Bool(flagDryRun, false, "Show the changes without writing them")
	fs.Bool(flagBackup, false, "Copy the .env file to .env.bak before writing")
	fs.Bool(flagTUI, false, "Prompt with a terminal form instead of plain lines")
}

// stringFlag returns the flag value when it was given, otherwise fallback.
func stringFlag(fs *pflag.FlagSet, name, fallback string) string {
	if !fs.Changed(name) {
		return fallback
	}
	v, err := fs.GetString(name)
	if err != nil {
		return fallback
	}
	return v
}

// boolFlag returns the flag value when it was given, otherwise fallback.
func boolFlag(fs *pflag.FlagSet, name string, fallback bool) bool {
	if !fs.Changed(name) {
		return fallback
	}
	v, err := fs.GetBool(name)
	if err != nil {
		return fallback
	}
	return v
}
