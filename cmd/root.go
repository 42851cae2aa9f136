// Package cmd implements the envcheck command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"envcheck/internal/config"
	"envcheck/internal/logger"
	"envcheck/internal/store"
	"envcheck/internal/validate"
	"envcheck/internal/version"

	"github.com/spf13/cobra"
)

// App holds what commands share during one invocation.
type App struct {
	Store  store.Store
	Config config.AppConfig

	logFile io.Closer
}

// NewApp returns an App working on the real filesystem.
func NewApp() *App {
	return &App{Store: store.NewOS()}
}

// Close releases the log file, if one was opened.
func (a *App) Close() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

// setup applies verbosity flags, loads the configuration and attaches the
// configured log file.
func (a *App) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	fs := cmd.Flags()

	if v, _ := fs.GetBool(flagVerbose); v {
		logger.SetLevel(logger.LevelInfo)
	}
	if v, _ := fs.GetBool(flagDebug); v {
		logger.SetLevel(logger.LevelDebug)
	}

	path, _ := fs.GetString(flagConfig)
	conf, err := config.LoadAppConfig(path)
	if err != nil {
		return err
	}
	a.Config = conf
	logger.Debug(ctx, "Loaded configuration from '{{_File_}}%s{{|-|}}'.", conf.Path)

	if conf.LogFile != "" && a.logFile == nil {
		f, err := logger.OpenLogFile(conf.LogFile)
		if err != nil {
			logger.Warn(ctx, "Failed to open log file '{{_File_}}%s{{|-|}}': %v", conf.LogFile, err)
		} else {
			a.logFile = f
			slog.SetDefault(logger.NewLogger(os.Stderr, f))
		}
	}

	logger.Info(ctx, "%s command: '{{_UserCommand_}}%s{{|-|}}'", version.ApplicationName, strings.Join(append([]string{version.CommandName}, os.Args[1:]...), " "))
	return nil
}

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   version.CommandName,
		Short: "Validate and fix .env files against .env.example",
		Long: `envcheck compares an environment file with the example file that documents it.

The example file declares every variable the application expects. Comment
lines directly above a variable may annotate it:

  # @type number          one of string, number, boolean, url, email
  # @optional             the variable may be absent or empty
  # @description text     shown when prompting for a value
  DB_PORT=5432`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
	}
	root.SetVersionTemplate(version.String() + "\n")
	addGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		newInitCmd(app),
		newValidateCmd(app),
		newFixCmd(app),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No configuration needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	app := NewApp()
	defer app.Close()

	root := NewRootCmd(app)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		reportError(ctx, err)
		return 1
	}
	return 0
}

// missingExampleError marks a missing example file, which init can create.
type missingExampleError struct {
	err error
}

func (e *missingExampleError) Error() string { return e.err.Error() }
func (e *missingExampleError) Unwrap() error { return e.err }

// checkExample marks err when it reports that examplePath does not exist.
func checkExample(err error, examplePath string) error {
	var nf *store.NotFoundError
	if errors.As(err, &nf) && nf.Path == examplePath {
		return &missingExampleError{err: err}
	}
	return err
}

// reportError logs err, adding a hint when the example file is missing.
func reportError(ctx context.Context, err error) {
	if errors.Is(err, validate.ErrValidationFailed) {
		logger.Error(ctx, "Environment validation failed.")
		return
	}
	logger.Error(ctx, err.Error())

	var missing *missingExampleError
	if errors.As(err, &missing) {
		logger.Notice(ctx, "Run '{{_UserCommand_}}%s init{{|-|}}' to create an example file.", version.CommandName)
	}
}
