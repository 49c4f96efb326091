package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/audit-exception-gate/pkg/audit"
	"github.com/audit-exception-gate/pkg/config"
	"github.com/audit-exception-gate/pkg/exceptions"
	"github.com/audit-exception-gate/pkg/policy"
	"github.com/audit-exception-gate/pkg/reporter"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "audit-exception-gate",
		Short:   "Fail CI when high-severity audit findings lack a valid accepted-risk exception",
		Long:    `Reconciles a dependency-vulnerability audit report against a human-maintained exception list, and exits non-zero unless every high/critical finding is either remediated or covered by a non-expired, correctly declared exception.`,
		Version: fmt.Sprintf("%s (%s)", version, commit),
		RunE:    run,
	}

	rootCmd.Flags().String("audit", "", "Path to the audit report JSON")
	rootCmd.Flags().String("exceptions", "", "Path to the accepted-risk exception list")
	rootCmd.Flags().String("output", "text", "Violation report format: text | json | sarif")
	rootCmd.Flags().String("config", ".audit-exception-gate.yml", "Path to config file")
	rootCmd.MarkFlagRequired("audit")
	rootCmd.MarkFlagRequired("exceptions")
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if cmd.Flags().Changed("config") {
			fmt.Fprintf(os.Stderr, "warning: could not load config file: %v (using defaults)\n", err)
		}
		cfg = config.Default()
	}
	cfg = config.MergeFlags(cfg, cmd.Flags())

	auditPath, _ := cmd.Flags().GetString("audit")
	exceptionsPath, _ := cmd.Flags().GetString("exceptions")

	auditData, err := os.ReadFile(auditPath)
	if err != nil {
		return fmt.Errorf("read audit report: %w", err)
	}
	report, err := audit.Parse(auditData)
	if err != nil {
		return err
	}

	exceptionsData, err := os.ReadFile(exceptionsPath)
	if err != nil {
		return fmt.Errorf("read exception list: %w", err)
	}
	records, err := exceptions.Parse(string(exceptionsData))
	if err != nil {
		return err
	}

	result := policy.Evaluate(records, report.Findings(), policy.Options{
		Severities: cfg.Severities,
	})

	if result.HasViolations() {
		if err := reporter.New(cfg.Output).Report(result); err != nil {
			return err
		}
		os.Exit(1)
	}

	fmt.Println("Audit exceptions validated.")
	return nil
}
