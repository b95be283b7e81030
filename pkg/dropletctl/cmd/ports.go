package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dropletstack/provision/pkg/ports"
)

func NewPortsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ports",
		Short: "Check and assign application ports",
	}

	cmd.AddCommand(newPortsCheckCommand(), newPortsSuggestCommand())

	return cmd
}

func newPortsCheckCommand() *cobra.Command {
	var inUse []int

	cmd := &cobra.Command{
		Use:   "check <port>",
		Short: "Check whether a port is free",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			port, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid port %q: %w", args[0], err)
			}
			if !ports.Available(port, inUse) {
				return fmt.Errorf("port %d is already in use", port)
			}
			_, err = fmt.Fprintf(rt.Writer(), "port %d is available\n", port)
			return err
		},
	}

	cmd.Flags().IntSliceVar(&inUse, "in-use", nil, "Ports already taken by other applications")

	return cmd
}

func newPortsSuggestCommand() *cobra.Command {
	var (
		inUse []int
		start int
		end   int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest the lowest free port in the configured range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			cfg := rt.Config()
			if start == 0 {
				start = cfg.Ports.RangeStart
			}
			if end == 0 {
				end = cfg.Ports.RangeEnd
			}

			port, err := ports.Suggest(inUse, start, end)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(rt.Writer(), port)
			return err
		},
	}

	cmd.Flags().IntSliceVar(&inUse, "in-use", nil, "Ports already taken by other applications")
	cmd.Flags().IntVar(&start, "range-start", 0, "First port of the search range (default from config)")
	cmd.Flags().IntVar(&end, "range-end", 0, "Last port of the search range (default from config)")

	return cmd
}
