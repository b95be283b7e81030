package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dropletstack/provision/pkg/dropletctl/output"
	"github.com/dropletstack/provision/pkg/health"
	"github.com/dropletstack/provision/pkg/monitoring"
	"github.com/dropletstack/provision/pkg/naming"
)

func NewMonitoringCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitoring",
		Short: "Manage Prometheus scrape targets",
	}

	cmd.AddCommand(newMonitoringAddTargetCommand(), newMonitoringListCommand())

	return cmd
}

func newMonitoringAddTargetCommand() *cobra.Command {
	var (
		port        int
		promConfig  string
		dryRun      bool
		waitHealthy time.Duration
	)

	cmd := &cobra.Command{
		Use:   "add-target <domain>",
		Short: "Register an application as a Prometheus scrape target",
		Long: "Add a scrape job for the application to the Prometheus config. " +
			"Adding a job that already exists is a no-op, so the command is safe " +
			"to re-run. Existing jobs and unrelated config keys are left untouched.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if promConfig == "" {
				promConfig = rt.Config().Prometheus.ConfigPath
			}
			if port <= 0 || port > 65535 {
				return fmt.Errorf("invalid port %d", port)
			}

			domain := args[0]
			username := naming.DeriveUsername(domain)

			if waitHealthy > 0 {
				ctx, cancel := context.WithTimeout(cmd.Context(), waitHealthy)
				defer cancel()
				checker := health.NewChecker(logger(rt))
				baseURL := fmt.Sprintf("http://localhost:%d", port)
				if err := checker.Wait(ctx, baseURL); err != nil {
					return err
				}
			}

			doc, err := os.ReadFile(promConfig)
			if err != nil && !os.IsNotExist(err) {
				return err
			}

			out, changed, err := monitoring.AddScrapeTarget(doc, monitoring.NewAppJob(username, domain, port))
			if err != nil {
				return err
			}

			if dryRun {
				if !changed {
					out = doc
				}
				_, err = rt.Writer().Write(out)
				return err
			}
			if !changed {
				_, err = fmt.Fprintf(rt.Writer(), "job %q already registered\n", username)
				return err
			}
			if err := os.WriteFile(promConfig, out, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", promConfig, err)
			}
			_, err = fmt.Fprintf(rt.Writer(), "added job %q to %s\n", username, promConfig)
			return err
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Application port to scrape")
	cmd.Flags().StringVar(&promConfig, "prometheus-config", "", "Prometheus config file (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the resulting config instead of writing it")
	cmd.Flags().DurationVar(&waitHealthy, "wait-healthy", 0, "Wait up to this long for the application's /health before registering")
	_ = cmd.MarkFlagRequired("port")

	return cmd
}

func newMonitoringListCommand() *cobra.Command {
	var promConfig string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scrape jobs declared in the Prometheus config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.OutputFormat()
			if err != nil {
				return err
			}
			if promConfig == "" {
				promConfig = rt.Config().Prometheus.ConfigPath
			}

			doc, err := os.ReadFile(promConfig)
			if err != nil {
				return err
			}
			jobs, err := monitoring.Jobs(doc)
			if err != nil {
				return err
			}

			if format == output.FormatTable {
				output.WriteJobsTable(rt.Writer(), jobs)
				return nil
			}
			return output.WriteObject(rt.Writer(), format, jobs)
		},
	}

	cmd.Flags().StringVar(&promConfig, "prometheus-config", "", "Prometheus config file (default from config)")

	return cmd
}

func logger(rt *runtimeState) *zap.SugaredLogger {
	if !rt.verbose {
		return nil
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil
	}
	return log.Sugar()
}
