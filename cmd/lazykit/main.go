package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/lazykit/bootstrap"
	"github.com/kbukum/lazykit/config"
	"github.com/kbukum/lazykit/version"
)

const serviceName = "lazykit"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "lazykit: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	configFile := flags.StringP("config", "c", "", "path to config.yml")
	envFile := flags.String("env-file", "", "path to a .env file")
	logLevel := flags.String("log-level", "", "override logging.level")
	telemetry := flags.Bool("telemetry", false, "collect metrics and traces")
	only := flags.StringSlice("scenario", nil, "run only the named scenarios")
	showVersion := flags.BoolP("version", "v", false, "print the version and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Println(version.Get().String())
		return nil
	}

	var cfg config.RuntimeConfig
	if err := config.Load(serviceName, &cfg,
		config.WithConfigFile(*configFile),
		config.WithEnvFile(*envFile),
	); err != nil {
		return err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if flags.Changed("telemetry") {
		cfg.Telemetry.Enabled = *telemetry
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	return app.RunTask(context.Background(), func(ctx context.Context) error {
		return runScenarios(ctx, app, *only)
	})
}
