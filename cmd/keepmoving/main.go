package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/keepmoving/internal/cli"
	"github.com/julianstephens/keepmoving/internal/constants"
	"github.com/julianstephens/keepmoving/internal/errors"
	"github.com/julianstephens/keepmoving/internal/logger"
)

var CLI cli.Root

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekly goals tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(cli.YAMLConfig, constants.DefaultConfigPath),
		kong.Vars{
			"version": constants.Version,
			"api_url": constants.DefaultAPIURL,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir()}); err != nil {
		errors.Fatal(err)
	}
	logger.Debug("starting", "command", ctx.Command())

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	appCtx, err := CLI.NewContext(runCtx, os.Stdout)
	if err != nil {
		errors.Fatal(err)
	}

	if err := ctx.Run(appCtx); err != nil {
		stop()
		errors.Fatal(err)
	}
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, constants.AppName)
	}
	return filepath.Join(os.TempDir(), constants.AppName)
}
