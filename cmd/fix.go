package cmd

import (
	"envcheck/internal/envfile"
	"envcheck/internal/fixer"
	"envcheck/internal/logger"
	"envcheck/internal/prompt"
	"envcheck/internal/report"
	"envcheck/internal/version"

	"github.com/spf13/cobra"
)

func newFixCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Add missing variables and repair invalid values",
		Long: `Merge the example file into the .env file and repair what is wrong.

Variables declared by the example but absent from the .env file are added.
In interactive mode every missing or invalid value is asked for; otherwise
it is left as it is and reported. The result is written back to the .env file
in the layout of the example file; variables the example does not declare are
kept in a "User Defined" section at the end.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFix(cmd, app)
		},
	}
	addFileFlags(cmd.Flags())
	addFixFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive(flagInteractive, flagNoInteractive)
	return cmd
}

func runFix(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	fs := cmd.Flags()
	conf := app.Config

	opts := fixer.Options{
		EnvPath:     stringFlag(fs, flagFile, conf.Files.Env),
		ExamplePath: stringFlag(fs, flagExample, conf.Files.Example),
		Interactive: boolFlag(fs, flagInteractive, conf.Fix.Interactive),
		DryRun:      boolFlag(fs, flagDryRun, false),
		Backup:      boolFlag(fs, flagBackup, conf.Fix.Backup),
	}
	if boolFlag(fs, flagNoInteractive, false) {
		opts.Interactive = false
	}
	schema := envfile.SchemaOptions{InferTypes: boolFlag(fs, flagInferTypes, conf.Validate.InferTypes)}

	var p prompt.Prompter
	if opts.Interactive {
		if boolFlag(fs, flagTUI, conf.Fix.TUI) && prompt.IsTerminal() {
			p = prompt.NewTUI()
		} else {
			p = prompt.NewLine(cmd.InOrStdin(), cmd.ErrOrStderr())
		}
	}

	out, err := fixer.New(app.Store, p, schema).Run(ctx, opts)
	if err != nil {
		return checkExample(err, opts.ExamplePath)
	}

	if opts.DryRun {
		return report.Diff(cmd.OutOrStdout(), opts.EnvPath, out.Before, out.After)
	}

	if out.Result.IsValid() {
		logger.Notice(ctx, "All environment variables are valid.")
	}
	if n := len(out.Repaired); n > 0 {
		logger.Notice(ctx, "Repaired %d variable(s).", n)
	}
	if n := len(out.Skipped); n > 0 {
		logger.Warn(ctx, "%d variable(s) still need a value. Run '{{_UserCommand_}}%s fix --interactive{{|-|}}' to set them.", n, version.CommandName)
	}
	logger.Notice(ctx, "Environment file '{{_File_}}%s{{|-|}}' updated successfully.", opts.EnvPath)
	return nil
}
