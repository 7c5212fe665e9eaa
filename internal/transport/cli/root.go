// Package cli is the portal command-line front end.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/app"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/config"
	"github.com/Eiad-Soufan/bm-requests-frontend/internal/domain"
)

const annotationNoBoot = "portal.noboot"

// Env carries the process streams and the application bootstrap.
type Env struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Boot builds the application; tests replace it.
	Boot func(configPath string) (*app.App, func() error, error)

	app        *app.App
	closeApp   func() error
	configPath string
	format     string
	lang       string
}

// DefaultEnv uses the standard streams and loads configuration from disk.
func DefaultEnv() *Env {
	return &Env{In: os.Stdin, Out: os.Stdout, Err: os.Stderr, Boot: boot}
}

func boot(configPath string) (*app.App, func() error, error) {
	if configPath != "" {
		if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
			return nil, nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, logCloser, err := app.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	a, err := app.Bootstrap(*cfg, logger)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, err
	}
	return a, func() error { return errors.Join(a.Close(), logCloser.Close()) }, nil
}

// App returns the bootstrapped application.
func (e *Env) App() *app.App { return e.app }

func (e *Env) language() string {
	if e.lang != "" {
		return e.lang
	}
	return e.app.Config.UI.Language
}

func (e *Env) printer() printer {
	return printer{w: e.Out, format: e.format}
}

func (e *Env) shutdown() error {
	if e.closeApp == nil {
		return nil
	}
	err := e.closeApp()
	e.closeApp = nil
	return err
}

// NewRootCommand builds the portal command tree.
func NewRootCommand(env *Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "portal",
		Short: "Employee portal client",
		Long: `portal talks to the employee portal backend: department forms,
complaints, notifications and staff broadcasts.`,
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !validFormat(env.format) {
				return domain.NewValidationError("output", fmt.Sprintf("unknown format %q (table, json, yaml)", env.format))
			}
			if cmd.Annotations[annotationNoBoot] != "" || env.app != nil {
				return nil
			}
			a, closer, err := env.Boot(env.configPath)
			if err != nil {
				return err
			}
			env.app, env.closeApp = a, closer
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(env.In)
	root.SetOut(env.Out)
	root.SetErr(env.Err)

	flags := root.PersistentFlags()
	flags.StringVarP(&env.format, "output", "o", formatTable, "output format: table, json or yaml")
	flags.StringVar(&env.lang, "lang", "", "interface language (overrides ui.language)")
	flags.StringVarP(&env.configPath, "config", "c", "", "config file path (default ./portal.yaml)")

	root.AddCommand(
		newLoginCmd(env),
		newLogoutCmd(env),
		newWhoAmICmd(env),
		newDashboardCmd(env),
		newFormsCmd(env),
		newComplaintsCmd(env),
		newNotificationsCmd(env),
		newUsersCmd(env),
		newNotifyCmd(env),
		newWatchCmd(env),
		newConfigCmd(env),
		newVersionCmd(),
	)
	return root
}

// Run executes args and returns the process exit code.
func Run(ctx context.Context, env *Env, args []string) int {
	root := NewRootCommand(env)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := env.shutdown(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		reportError(env.Err, err)
	}
	return ExitCode(err)
}

// Execute runs the portal command with the process arguments and exits.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, DefaultEnv(), os.Args[1:])
	stop()
	os.Exit(code)
}
