package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"

	"devenv/cli/devenv/internal/app"
	"devenv/cli/devenv/internal/compose"
	"devenv/cli/devenv/internal/config"
	"devenv/cli/devenv/internal/execx"
	"devenv/cli/devenv/internal/hostprofile"
	"devenv/cli/devenv/internal/logging"
	"devenv/cli/devenv/internal/paths"
	"devenv/cli/devenv/internal/prompt"
)

const name = "devenv"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logging.Setup(os.Stderr, "info", false)

	env, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	cfg, root, err := config.ReadProject(env.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	if err := config.LoadDotenv(filepath.Join(root, paths.EnvFile)); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	// .env may set DEVENV_* itself.
	if env, err = config.ParseEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	if cfg.Compose.Files, err = compose.Files(root, cfg.Compose.Files); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		return 1
	}
	cfg.ApplyEnv()
	logging.Setup(os.Stderr, env.LogLevel, env.Debug)
	log.WithFields(log.Fields{"root": root, "project": cfg.Project, "dry_run": env.DryRun}).Debug("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := execx.Host{}
	profile := hostprofile.Detect(func(ctx context.Context, bin string, args ...string) (string, bool) {
		out, res := host.Capture(ctx, bin, args...)
		return out, res.OK()
	})
	log.WithFields(log.Fields{"host": profile.Kind, "hosts_file": profile.HostsPath}).Debug("host detected")

	a := app.New(app.Options{
		Name:    name,
		Env:     env,
		Config:  cfg,
		Root:    root,
		Exec:    host,
		Profile: profile,
		Stdio:   prompt.DefaultSurveyIO,
	})
	err = app.Execute(ctx, a, args)
	app.ReportError(os.Stderr, name, err)
	return app.ExitCode(err)
}
