package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropletstack/provision/pkg/provision"
)

func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render configuration files for a domain",
	}

	cmd.AddCommand(newRenderNginxCommand(), newRenderSystemdCommand())

	return cmd
}

func newRenderNginxCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "nginx <domain>",
		Short: "Render the nginx server block for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			cfg := rt.Config()

			plan, err := provision.Build(args[0], port,
				provision.WithNginxLayout(cfg.NginxLayout()),
				provision.WithCertLayout(cfg.CertLayout()),
			)
			if err != nil {
				return err
			}
			block, err := plan.NginxServerBlock()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(rt.Writer(), block)
			return err
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Application port the proxy forwards to")
	_ = cmd.MarkFlagRequired("port")

	return cmd
}

func newRenderSystemdCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "systemd <domain>",
		Short: "Render the systemd service unit for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}

			plan, err := provision.Build(args[0], port)
			if err != nil {
				return err
			}
			unit, err := plan.SystemdUnit()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(rt.Writer(), unit)
			return err
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 9000, "Application port recorded in the plan")

	return cmd
}
