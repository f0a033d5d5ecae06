package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kakkky/mything/completer"
	"github.com/kakkky/mything/config"
	"github.com/kakkky/mything/errs"
	"github.com/kakkky/mything/executor"
	"github.com/kakkky/mything/logger"
	"github.com/kakkky/mything/registry"
	"github.com/kakkky/mything/repl"
	"github.com/kakkky/mything/smoke"
	"github.com/kakkky/mything/version"
)

// app はサブコマンド間で共有する設定とロガー
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "mything",
		Short:         "Interactive console for the MyThing library",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.NewRegistry()
			exec := executor.NewExecutor(reg, executor.WithLogger(a.logger.Named("executor")))
			repl.NewRepl(completer.NewCompleter(reg), exec, a.cfg).Run()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "path to the YAML config file")

	root.AddCommand(newVersionCmd(), newSmokeCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	l, err := logger.New(logger.Config{Env: cfg.Log.Env, Level: cfg.Log.Level})
	if err != nil {
		return errs.NewInternalError("failed to build logger").Wrap(err)
	}
	a.cfg = cfg
	a.logger = l
	return nil
}

func newVersionCmd() *cobra.Command {
	var semverOnly bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the library version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if semverOnly {
				fmt.Fprintln(cmd.OutOrStdout(), version.Current().Semver)
				return nil
			}
			version.PrintVersion(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().BoolVar(&semverOnly, "semver", false, "print only the canonical semantic version")
	return cmd
}

func newSmokeCmd(a *app) *cobra.Command {
	var (
		scriptPath string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run a smoke script against the library and compare each result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scriptPath == "" {
				scriptPath = a.cfg.Smoke.Script
			}
			steps, err := loadSteps(scriptPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			exec := executor.NewExecutor(registry.NewRegistry(),
				executor.WithOutput(out),
				executor.WithLogger(a.logger.Named("executor")),
			)
			runner := smoke.NewRunner(exec,
				smoke.WithOutput(out),
				smoke.WithLogger(a.logger.Named("smoke")),
				smoke.WithVerbose(verbose),
			)
			report, err := runner.Run(ctx, steps)
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(out, "\n%d steps passed\n", report.Passed)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&scriptPath, "file", "f", "", "smoke script to run (defaults to the built-in scenario)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every step and its verdict")
	return cmd
}

func loadSteps(path string) ([]smoke.Step, error) {
	if path == "" {
		return smoke.ParseDefault(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.NewBadInputError("failed to open smoke script").Wrap(err)
	}
	defer f.Close()
	return smoke.Parse(f)
}

