// Package main provides the entry point for the patrol CLI.
package main

import (
	"context"
	"os"

	"github.com/katalvlaran/patrol/cli"
	"github.com/katalvlaran/patrol/logging"
)

func main() {
	logging.Init(logging.DefaultConfig())

	app := cli.New()

	if err := app.Execute(context.Background()); err != nil {
		logging.NewEvent(app.Logger().Error()).
			Add(logging.Component("main"), logging.ErrorField(err)).
			Msg("patrol failed")
		os.Exit(1)
	}
}
