package main

import (
	"os"

	"github.com/avestudio/studio/cmd/studioctl/commands"
	"github.com/avestudio/studio/internal/app"
	"github.com/avestudio/studio/internal/configuration"
)

var (
	Version string = "development"
	appName string = "studioctl"
)

func main() {
	/*
	 * Configuration comes from the environment here. The command line
	 * belongs to cobra, so hide it while the config flags are parsed.
	 */
	args := os.Args[1:]
	os.Args = os.Args[:1]

	config := configuration.LoadConfig()
	app.SetupLogger(&config, appName, Version)

	os.Exit(commands.Execute(&config, Version, args))
}
