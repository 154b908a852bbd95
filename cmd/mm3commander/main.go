package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ajramos/mm3commander/internal/config"
	"github.com/ajramos/mm3commander/internal/mailman"
	"github.com/ajramos/mm3commander/internal/nav"
	"github.com/ajramos/mm3commander/internal/services"
	"github.com/ajramos/mm3commander/internal/tui"
	"github.com/ajramos/mm3commander/internal/version"
)

const (
	envMailmanConfig = "MM3COMMANDER_MAILMAN_CFG"
	envPreferences   = "MM3COMMANDER_CONFIG"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses the command line, bootstraps the session and drives the menus.
// It returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mm3commander", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPathFlag := fs.String("config", "", "Path to mailman.cfg (default: "+config.DefaultMailmanConfigPath+")")
	fs.StringVar(configPathFlag, "c", "", "Shorthand for --config")
	versionFlag := fs.Bool("version", false, "Show version information and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "%s\n\n", version.GetVersionString())
		fmt.Fprintf(stderr, "Usage:\n")
		fmt.Fprintf(stderr, "  mm3commander [options]\n\n")
		fmt.Fprintf(stderr, "Examples:\n")
		fmt.Fprintf(stderr, "  mm3commander                          # Use %s\n", config.DefaultMailmanConfigPath)
		fmt.Fprintf(stderr, "  mm3commander -c ./mailman.cfg         # Use another mailman.cfg\n")
		fmt.Fprintf(stderr, "  mm3commander --version                # Show version information\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fmt.Fprintf(stderr, "  -c, --config string\n        %s\n", "Path to mailman.cfg (default: "+config.DefaultMailmanConfigPath+")")
		fmt.Fprintf(stderr, "  --version\n        %s\n\n", "Show version information and exit")
		fmt.Fprintf(stderr, "Environment Variables:\n")
		fmt.Fprintf(stderr, "  %s  Override default mailman.cfg path\n", envMailmanConfig)
		fmt.Fprintf(stderr, "  %s       Override commander preferences path (default: ~/.config/mm3commander/config.json)\n", envPreferences)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *versionFlag {
		fmt.Fprintln(stdout, version.GetDetailedVersionString())
		return 0
	}

	prefs, err := config.LoadConfig(getPreferencesPath())
	if err != nil {
		fmt.Fprintf(stderr, "Warning: could not load preferences: %v\n", err)
		prefs = config.DefaultConfig()
	}

	logger, logFile, err := tui.OpenLogger(prefs.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
	} else {
		defer logFile.Close()
	}

	ctx := context.Background()
	client, err := bootstrap(ctx, getMailmanConfigPath(*configPathFlag), prefs, logger)
	if err != nil {
		fmt.Fprintf(stderr, "mm3commander: %v\n", err)
		return 1
	}

	colors, err := config.LoadTheme(prefs.ThemePath())
	if err != nil {
		fmt.Fprintf(stderr, "Warning: could not load theme: %v\n", err)
		colors = config.DefaultColors()
	}

	term := tui.NewTerminal(colors, logger)
	navigator, err := nav.New(term, newServices(client, logger), nav.Options{
		Keys:            prefs.Keys,
		UnknownKeyPause: prefs.UnknownKeyPause(),
		Logger:          logger,
	})
	if err != nil {
		fmt.Fprintf(stderr, "mm3commander: %v\n", err)
		return 1
	}

	if err := term.Run(ctx, navigator.Run); err != nil {
		fmt.Fprintf(stderr, "Error running application: %v\n", err)
		return 1
	}
	return 0
}

// bootstrap reads mailman.cfg and verifies the REST API answers the
// handshake. Nothing is sent to the server when the file is invalid.
func bootstrap(ctx context.Context, path string, prefs *config.Config, logger *log.Logger) (*mailman.Client, error) {
	ws, err := config.LoadMailmanConfig(path)
	if err != nil {
		return nil, err
	}

	cc := ws.ClientConfig(prefs)
	cc.UserAgent = version.UserAgent()
	client, err := mailman.NewClient(cc)
	if err != nil {
		return nil, err
	}
	client.SetLogger(logger)

	apiVersion, err := client.Handshake(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot talk to the Mailman REST API at %s: %w", client.BaseURL(), err)
	}
	if logger != nil {
		logger.Printf("connected to %s (api %s)", client.BaseURL(), apiVersion)
	}
	return client, nil
}

// newServices wires the navigator services onto the REST client
func newServices(dir services.Directory, logger *log.Logger) nav.Services {
	return nav.Services{
		Lists:      services.NewListService(dir, logger),
		Members:    services.NewMembershipService(dir, logger),
		Settings:   services.NewSettingsService(dir, logger),
		Moderation: services.NewModerationService(dir, logger),
	}
}

// getMailmanConfigPath returns the mailman.cfg path using the following priority:
// 1. CLI flag
// 2. Environment variable MM3COMMANDER_MAILMAN_CFG
// 3. /etc/mailman3/mailman.cfg
func getMailmanConfigPath(flagValue string) string {
	if flagValue != "" {
		return config.ExpandPath(flagValue)
	}

	if envPath := os.Getenv(envMailmanConfig); envPath != "" {
		return config.ExpandPath(envPath)
	}

	return config.DefaultMailmanConfigPath
}

// getPreferencesPath returns the preferences path using the following priority:
// 1. Environment variable MM3COMMANDER_CONFIG
// 2. Default path ~/.config/mm3commander/config.json
func getPreferencesPath() string {
	if envPath := os.Getenv(envPreferences); envPath != "" {
		return config.ExpandPath(envPath)
	}
	return config.DefaultConfigPath()
}
