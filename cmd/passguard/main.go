// Command passguard evaluates a password against a configurable policy and
// prints a structured report. Exit code 0 means compliant, 2 means not
// compliant, 1 means an operational failure (bad config, unreadable input).
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/dsolovey/passguard/internal/analyzer"
	"github.com/dsolovey/passguard/internal/config"
	"github.com/dsolovey/passguard/internal/hibp"
	"github.com/dsolovey/passguard/pkg/logger"
)

const (
	exitOK           = 0
	exitFailure      = 1
	exitNonCompliant = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := pflag.String("config", "", "path to TOML config file")
	passwordStdin := pflag.Bool("password-stdin", false, "read password from stdin instead of an interactive prompt")
	contextWords := pflag.StringArray("context", nil, "context words to forbid (username, company name); repeatable")
	format := pflag.String("format", "text", "output format: text or json")
	pflag.Parse()

	if *format != "text" && *format != "json" {
		fmt.Fprintf(os.Stderr, "unknown format %q (want text or json)\n", *format)
		return exitFailure
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
			return exitFailure
		}
		cfg = loaded
	}

	password, err := readPassword(*passwordStdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
		return exitFailure
	}

	log := logger.New(logger.Config{Level: "warn", Console: true})

	pwnedClient := hibp.NewClient(cfg.Pwned.Timeout)
	if cfg.Pwned.BaseURL != "" {
		pwnedClient = pwnedClient.WithBaseURL(cfg.Pwned.BaseURL)
	}
	if cfg.Pwned.UserAgent != "" {
		pwnedClient = pwnedClient.WithUserAgent(cfg.Pwned.UserAgent)
	}

	svc := analyzer.NewAnalyzer(pwnedClient, analyzer.FileBlocklistLoader{}, log)
	result := svc.Analyze(context.Background(), password, cfg.Policy, *contextWords...)

	var out string
	if *format == "json" {
		out, err = renderJSON(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
			return exitFailure
		}
	} else {
		out = renderText(result)
	}
	fmt.Println(out)

	if result.IsCompliant {
		return exitOK
	}
	return exitNonCompliant
}

// readPassword reads from stdin when asked, otherwise prompts on the
// terminal without echoing.
func readPassword(fromStdin bool) (string, error) {
	if fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "Enter a password to evaluate: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
