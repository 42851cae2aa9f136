package cmd

import (
	"envcheck/internal/envfile"
	"envcheck/internal/logger"
	"envcheck/internal/report"
	"envcheck/internal/validate"

	"github.com/spf13/cobra"
)

func newValidateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate",
		Aliases: []string{"check"},
		Short:   "Check the .env file against the example file",
		Long: `Check the .env file against the example file and print every finding.

Missing required variables and values of the wrong type are errors; variables
the example does not declare are warnings. The command fails when there is at
least one error. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, app)
		},
	}
	addFileFlags(cmd.Flags())
	cmd.Flags().StringP(flagOutput, "o", "", "Output format: text, json or yaml (default from config, text)")
	return cmd
}

func runValidate(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	fs := cmd.Flags()
	conf := app.Config

	envPath := stringFlag(fs, flagFile, conf.Files.Env)
	examplePath := stringFlag(fs, flagExample, conf.Files.Example)
	format, err := report.ParseFormat(stringFlag(fs, flagOutput, conf.Validate.Output))
	if err != nil {
		return err
	}
	schema := envfile.SchemaOptions{InferTypes: boolFlag(fs, flagInferTypes, conf.Validate.InferTypes)}

	logger.Info(ctx, "Checking '{{_File_}}%s{{|-|}}' against '{{_File_}}%s{{|-|}}'.", envPath, examplePath)

	liveText, err := app.Store.Read(envPath)
	if err != nil {
		return err
	}
	exampleText, err := app.Store.Read(examplePath)
	if err != nil {
		return checkExample(err, examplePath)
	}
	live := envfile.Parse(envPath, liveText)
	example, err := envfile.ParseExample(examplePath, exampleText, schema)
	if err != nil {
		return err
	}

	res := validate.Compare(live.Records, example.Records)
	if err := report.Write(cmd.OutOrStdout(), format, report.NewDocument(envPath, examplePath, res)); err != nil {
		return err
	}
	if !res.IsValid() {
		return validate.ErrValidationFailed
	}
	return nil
}
