// Package vselect is the vselect command line application.
package vselect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/robinbraemer/event"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go.minekube.com/vselect/pkg/config"
	"go.minekube.com/vselect/pkg/version"
	"go.minekube.com/vselect/pkg/vselect"
)

// EnvPrefix prefixes environment variables overriding config keys.
const EnvPrefix = "VSELECT"

const selectorKey = "selector"

// App returns the vselect cli application.
func App() *cli.App {
	app := cli.NewApp()
	app.Name = "vselect"
	app.Usage = "Select the protocol version advertised in client-side mode."
	app.Description = `Resolves typed Minecraft versions or protocol numbers to the protocol
a client advertises through a protocol translation layer, and manages
the client-side mode opt-in.

Visit https://github.com/minekube/vselect for more information.`
	app.Version = version.String()
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   `config file (default: ./vselect.yml)`,
			EnvVars: []string{EnvPrefix + "_CONFIG"},
			Value:   "vselect.yml",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "Enable debug mode and highest log verbosity",
			EnvVars: []string{EnvPrefix + "_DEBUG"},
		},
	}
	app.Before = before
	app.Commands = []*cli.Command{
		resolveCommand(),
		completeCommand(),
		versionsCommand(),
		pathCommand(),
		statusCommand(),
		enableCommand(),
		disableCommand(),
		interactiveCommand(),
		configCommand(),
	}
	return app
}

func before(c *cli.Context) error {
	// The config command prints the template and needs no setup.
	if args := c.Args(); args.Len() != 0 && args.First() == "config" {
		return nil
	}

	v := newViper(c.String("config"))
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return cli.Exit(err, 1)
	}
	debug := c.Bool("debug") || cfg.Debug

	log, err := newLogger(debug)
	if err != nil {
		return cli.Exit(fmt.Errorf("error creating zap logger: %w", err), 1)
	}
	c.Context = logr.NewContext(c.Context, log)

	if v.ConfigFileUsed() != "" {
		log.V(1).Info("using config file", "path", v.ConfigFileUsed())
	}
	if err = validate(log, cfg); err != nil {
		return cli.Exit(err, 1)
	}

	s, err := vselect.New(vselect.Options{
		Config: cfg,
		Logger: log,
		Event:  event.New(),
	})
	if err != nil {
		return cli.Exit(fmt.Errorf("error creating selector: %w", err), 1)
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[selectorKey] = s
	return nil
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	return v
}

func validate(log logr.Logger, cfg *config.Config) error {
	warns, errs := cfg.Validate()
	for _, err := range warns {
		log.Info("config validation warn", "warn", err.Error())
	}
	if len(errs) == 0 {
		return nil
	}
	for _, err := range errs {
		log.Info("config validation error", "error", err.Error())
	}
	return fmt.Errorf("invalid config: %w", errors.Join(errs...))
}

func selector(c *cli.Context) *vselect.Selector {
	return c.App.Metadata[selectorKey].(*vselect.Selector)
}

// newLogger returns a new zap logger with a modified production
// or development default config to ensure human readability.
func newLogger(debug bool) (l logr.Logger, err error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-1))
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}
