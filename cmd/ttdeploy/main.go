package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/artpar/ttdeploy/internal/shell/provider"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	return runApp(newApp(stdout, stderr), args)
}

// app holds the state shared by the commands of one invocation.
type app struct {
	stdout    io.Writer
	stderr    io.Writer
	console   *Console
	lookupEnv func(string) (string, bool)

	// openProvisioner connects to the selected backend
	openProvisioner func(ctx context.Context, cfg provider.Config, logger *zap.Logger) (provider.Provisioner, error)

	// Persistent flags
	configPath string
	logLevel   string
	logFormat  string
	verbose    bool

	cfg *Config
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:          stdout,
		stderr:          stderr,
		console:         newConsole(stdout, stderr),
		lookupEnv:       os.LookupEnv,
		openProvisioner: provider.NewProvisioner,
	}
}

func runApp(a *app, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.console.Error(err)
		return ExitCode(err)
	}
	return ExitSuccess
}
