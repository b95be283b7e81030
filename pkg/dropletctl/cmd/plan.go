package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropletstack/provision/pkg/dropletctl/output"
	"github.com/dropletstack/provision/pkg/ports"
	"github.com/dropletstack/provision/pkg/provision"
)

func NewPlanCommand() *cobra.Command {
	var (
		port  int
		inUse []int
	)

	cmd := &cobra.Command{
		Use:   "plan <domain>",
		Short: "Compute the full provisioning plan for a domain",
		Long: "Compute the derived username, paths, and scrape job for a domain " +
			"without touching the system. When --port is omitted the lowest free " +
			"port in the configured range is assigned, honoring --in-use.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.OutputFormat()
			if err != nil {
				return err
			}
			cfg := rt.Config()

			if port == 0 {
				port, err = ports.Suggest(inUse, cfg.Ports.RangeStart, cfg.Ports.RangeEnd)
				if err != nil {
					return err
				}
			} else if !ports.Available(port, inUse) {
				return fmt.Errorf("port %d is already in use", port)
			}

			plan, err := provision.Build(args[0], port,
				provision.WithNginxLayout(cfg.NginxLayout()),
				provision.WithCertLayout(cfg.CertLayout()),
			)
			if err != nil {
				return err
			}

			if format == output.FormatTable {
				output.WritePlanDetail(rt.Writer(), plan)
				return nil
			}
			return output.WriteObject(rt.Writer(), format, plan)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Application port (0 assigns the lowest free port)")
	cmd.Flags().IntSliceVar(&inUse, "in-use", nil, "Ports already taken by other applications")

	return cmd
}
