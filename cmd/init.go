package cmd

import (
	"fmt"

	"envcheck/internal/console"
	"envcheck/internal/envfile"
	"envcheck/internal/logger"
	"envcheck/internal/scaffold"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter example file",
		Long: `Create an example file. By default a starter template is written; with
--from the example is derived from an existing .env file, with every value
replaced by a placeholder. An existing example file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, app)
		},
	}
	cmd.Flags().StringP(flagExample, "e", "", "Path of the example file to create (default from config, .env.example)")
	cmd.Flags().String(flagFrom, "", "Derive the example from this .env file")
	cmd.Flags().BoolP(flagYes, "y", false, "Assume yes")
	return cmd
}

func runInit(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	fs := cmd.Flags()

	examplePath := stringFlag(fs, flagExample, app.Config.Files.Example)
	if app.Store.Exists(examplePath) {
		logger.Notice(ctx, "'{{_File_}}%s{{|-|}}' already exists.", examplePath)
		return nil
	}

	content := scaffold.Template()
	if from := stringFlag(fs, flagFrom, ""); from != "" {
		text, err := app.Store.Read(from)
		if err != nil {
			return err
		}
		content = scaffold.FromEnv(envfile.Parse(from, text))
	}

	yes := boolFlag(fs, flagYes, false)
	question := fmt.Sprintf("Do you want to create '{{_File_}}%s{{|-|}}'?", examplePath)
	if !console.QuestionPrompt(ctx, cmd.InOrStdin(), logger.Notice, question, "y", yes) {
		return nil
	}

	if err := app.Store.Write(examplePath, content); err != nil {
		return err
	}
	logger.Notice(ctx, "Created '{{_File_}}%s{{|-|}}' successfully.", examplePath)
	return nil
}
