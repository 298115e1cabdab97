package main

import (
	"github.com/Raghavaaa/lindia-b/internal/di"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/env"

	"github.com/spf13/cobra"
)

type options struct {
	root    string
	config  string
	dbPath  string
	noColor bool
	verbose bool
}

// gateError reports a completed run whose verdict was negative. The console
// output already explains it, so main only sets the exit code.
type gateError struct{ stage string }

func (e *gateError) Error() string { return e.stage + " did not pass" }

func rootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "vv",
		Short:         "Verification and validation gate for the LegalIndia backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.root, "root", ".", "project root to verify")
	root.PersistentFlags().StringVar(&opts.config, "config", "", "checklist file (default <root>/vv.yaml)")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(
		checkCmd(opts),
		integrateCmd(opts),
		deployCmd(opts),
	)
	return root
}

func (o *options) container(cmd *cobra.Command) (*di.VVContainer, error) {
	return di.NewVVContainer(di.VVConfig{
		Root:          o.root,
		ChecklistPath: o.config,
		DBPath:        o.dbPath,
		NoColor:       o.noColor,
		Verbose:       o.verbose,
		Out:           cmd.OutOrStdout(),
		Env:           env.NewEnvService(),
	})
}

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the pre-deployment checks and write the QA report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			report, err := c.Verifier.Verify(cmd.Context())
			if report == nil {
				return err
			}
			if err != nil {
				c.Logger.Error("Report not saved", "error", err)
			}
			if !report.AllPassed() {
				return &gateError{stage: "verification"}
			}
			return nil
		},
	}
}

func integrateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrate",
		Short: "Validate the frontend, AI engine and database integrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			report, err := c.Integration.Validate(cmd.Context())
			if report == nil {
				return err
			}
			if err != nil {
				c.Logger.Error("Report not saved", "error", err)
			}
			if !report.AllPassed() {
				return &gateError{stage: "integration validation"}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "SQLite database to inspect (default from checklist)")
	return cmd
}

func deployCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Gate a deployment on V&V, tag approved commits and prepare rollback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.container(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			outcome, err := c.Deployer.Deploy(cmd.Context())
			if outcome == nil {
				return err
			}
			if err != nil {
				c.Logger.Error("Rollback log not saved", "error", err)
			}
			if !outcome.Approved {
				return &gateError{stage: "deployment"}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "SQLite database to inspect (default from checklist)")
	return cmd
}
