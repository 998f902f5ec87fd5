package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	internalcli "github.com/testathon/storefront-e2e/internal/cli"
	"github.com/testathon/storefront-e2e/internal/config"
	"github.com/testathon/storefront-e2e/internal/credentials"
	"github.com/testathon/storefront-e2e/internal/logger"
	"github.com/testathon/storefront-e2e/internal/session"
)

var version = "0.1.0"

// flagEnv maps global flags onto the environment keys config.Load reads
var flagEnv = map[string]string{
	"base-url": "BASE_URL",
	"browser":  "BROWSER",
	"headed":   "HEADLESS",
}

// buildDependencies loads configuration, letting global flags override the environment
func buildDependencies(c *cli.Context) (internalcli.Dependencies, error) {
	var deps internalcli.Dependencies

	getenv := func(key string) string {
		for flag, env := range flagEnv {
			if env != key || !c.IsSet(flag) {
				continue
			}
			if flag == "headed" {
				return fmt.Sprint(!c.Bool(flag))
			}
			return c.String(flag)
		}
		return os.Getenv(key)
	}

	cfg, err := config.Load(getenv)
	if err != nil {
		return deps, fmt.Errorf("invalid configuration: %w", err)
	}

	deps.Config = cfg
	deps.Log = logger.New(cfg.Log)
	deps.Out = c.App.Writer
	deps.Open = internalcli.LaunchOpener(cfg, deps.Log)
	deps.Install = session.Install
	return deps, nil
}

// exitOn turns the sentinel failures of a completed run into exit code 1
func exitOn(err error) error {
	if errors.Is(err, internalcli.ErrCheckFailed) || errors.Is(err, internalcli.ErrCartLeak) {
		return cli.Exit(err.Error(), 1)
	}
	return err
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Download the playwright driver and the configured browser",
		Action: func(c *cli.Context) error {
			deps, err := buildDependencies(c)
			if err != nil {
				return err
			}
			return internalcli.RunInstall(deps)
		},
	}
}

// CredentialsCommand returns the credentials command
func CredentialsCommand() *cli.Command {
	return &cli.Command{
		Name:  "credentials",
		Usage: "List the storefront's test accounts",
		Action: func(c *cli.Context) error {
			return internalcli.RunCredentials(c.App.Writer)
		},
	}
}

// CheckCommand returns the check command
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Open the storefront and verify its basic surfaces respond",
		Action: func(c *cli.Context) error {
			deps, err := buildDependencies(c)
			if err != nil {
				return err
			}
			ctx, stop := internalcli.WithSignals(c.Context)
			defer stop()

			_, err = internalcli.RunCheck(ctx, deps)
			return exitOn(err)
		},
	}
}

// IsolationCommand returns the isolation command
func IsolationCommand() *cli.Command {
	return &cli.Command{
		Name:  "isolation",
		Usage: "Check whether one user's cart leaks to the next user signing in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Value: credentials.Fav.Name, Usage: "credential that fills the cart"},
			&cli.StringFlag{Name: "to", Value: credentials.Demo.Name, Usage: "credential that signs in afterwards"},
		},
		Action: func(c *cli.Context) error {
			deps, err := buildDependencies(c)
			if err != nil {
				return err
			}
			ctx, stop := internalcli.WithSignals(c.Context)
			defer stop()

			_, err = internalcli.RunIsolation(ctx, deps, c.String("from"), c.String("to"))
			return exitOn(err)
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storefront",
		Usage:   "StackDemo storefront e2e tooling",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "storefront to target, overrides BASE_URL"},
			&cli.StringFlag{Name: "browser", Usage: "chromium, firefox or webkit, overrides BROWSER"},
			&cli.BoolFlag{Name: "headed", Usage: "show the browser window"},
		},
		Commands: []*cli.Command{
			InstallCommand(),
			CredentialsCommand(),
			CheckCommand(),
			IsolationCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}
