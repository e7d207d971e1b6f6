package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gookit/color"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/gitmojis-list/internal"
	"github.com/starford/gitmojis-list/internal/apperr"
	pkgconfig "github.com/starford/gitmojis-list/pkg/config"
)

const defaultConfigPath = "config/config.yaml"

// pipeline runs the update with a fully resolved config.
type pipeline func(ctx context.Context, cfg *internal.Config) error

func runUpdate(ctx context.Context, cfg *internal.Config) error {
	return internal.Run(ctx, internal.WithConfig(cfg))
}

func action(update pipeline) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.NArg() > 0 {
			return fmt.Errorf("unexpected arguments: %v", cmd.Args().Slice())
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if cmd.IsSet("strict") {
			cfg.Update.Strict = cmd.Bool("strict")
		}
		if cmd.IsSet("dry-run") {
			cfg.Update.DryRun = cmd.Bool("dry-run")
		}

		return update(ctx, cfg)
	}
}

// loadConfig reads the YAML config. Only an explicitly chosen file has to exist.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")
	cfg := internal.NewDefaultConfig()

	if cmd.IsSet("config") {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		return cfg, nil
	}
	if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func newCommand(update pipeline) *cli.Command {
	return &cli.Command{
		Name:   "gitmojis-update",
		Usage:  "Regenerate the gitmojis-list defvar in ./gitmojis-list.el from the upstream gitmoji registry",
		Action: action(update),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: defaultConfigPath,
				Value:       defaultConfigPath,
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the regenerated file instead of writing it",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail when the gitmojis-list defvar is not found",
			},
		},
	}
}

func main() {
	if err := newCommand(runUpdate).Run(context.Background(), os.Args); err != nil {
		color.Fprintf(os.Stderr, "<red>error:</> %s\n", err)
		os.Exit(apperr.ExitCode(err))
	}
}
