package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"envcheck/cmd"
	"envcheck/internal/console"
	"envcheck/internal/logger"
	"envcheck/internal/version"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	slog.SetDefault(logger.NewLogger(os.Stderr, nil))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Recover from logger.FatalError so deferred cleanup still runs
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(logger.FatalError); ok {
				exitCode = 1
			} else {
				panic(r)
			}
		}
		if exitCode != 0 {
			fmt.Fprintln(os.Stderr, console.Parse(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} did not finish running successfully.", version.ApplicationName)))
		}
	}()
	defer logger.Recover(ctx)

	return cmd.Execute(ctx, os.Args[1:])
}
