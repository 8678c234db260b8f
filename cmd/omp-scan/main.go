// Command omp-scan runs one scan against a manager and writes the report to
// a file.
//
// Usage:
//
//	omp-scan -config scan.toml [-host HOST] [-user USER] [-hosts CIDR] [-v]
//
// The password is taken from OPENVAS_TEST_PASSWORD, or prompted for when
// running on a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gosimple/slug"
	"golang.org/x/term"

	omp "github.com/pkjmesra/go-omp"
	"github.com/pkjmesra/go-omp/scan"
	"github.com/pkjmesra/go-omp/transport"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML scan configuration file")
		host       = flag.String("host", "", "manager host (overrides config)")
		port       = flag.Int("port", 0, "manager port (overrides config)")
		user       = flag.String("user", "", "username (overrides config)")
		hosts      = flag.String("hosts", "", "target hosts (overrides config)")
		insecure   = flag.Bool("insecure", false, "skip TLS certificate verification")
		verbose    = flag.Bool("v", false, "debug logging, including wire traffic")
	)
	flag.Parse()

	if err := run(*configPath, *host, *port, *user, *hosts, *insecure, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "omp-scan: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, host string, port int, user, hosts string, insecure, verbose bool) error {
	cfg := scan.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = scan.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	if host != "" {
		cfg.Host = host
	}
	if port != 0 {
		cfg.Port = port
	}
	if user != "" {
		cfg.Username = user
	}
	if hosts != "" {
		cfg.Hosts = hosts
	}
	if insecure {
		cfg.Insecure = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Password == "" {
		password, err := resolvePassword()
		if err != nil {
			return err
		}
		cfg.Password = password
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var dialOpts []transport.DialOption
	if cfg.Insecure {
		dialOpts = append(dialOpts, transport.WithInsecureSkipVerify())
	}
	sess, err := transport.Dial(cfg.Addr(), dialOpts...)
	if err != nil {
		return err
	}
	defer sess.Close()

	client := omp.NewClient(sess, omp.WithLogger(logger))
	result, err := scan.NewRunner(client, cfg, logger).Run(ctx)
	if err != nil {
		return err
	}

	out := slug.Make("report-"+result.TaskID) + ".xml"
	if err := os.WriteFile(out, []byte(result.Report.String()), 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", "file", out, "task", result.TaskID)
	return nil
}

// resolvePassword takes the password from the environment, falling back to
// a terminal prompt.
func resolvePassword() (string, error) {
	if password := os.Getenv(omp.EnvPassword); password != "" {
		return password, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no password: set %s or run on a terminal", omp.EnvPassword)
	}
	fmt.Fprint(os.Stderr, "Password: ")
	passBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(passBytes), nil
}
