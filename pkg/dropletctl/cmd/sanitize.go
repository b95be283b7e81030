package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropletstack/provision/pkg/dropletctl/output"
	"github.com/dropletstack/provision/pkg/naming"
)

type sanitizeResult struct {
	Domain    string `json:"domain" yaml:"domain"`
	Username  string `json:"username" yaml:"username"`
	Subdomain bool   `json:"subdomain" yaml:"subdomain"`
	Legacy    bool   `json:"legacy" yaml:"legacy"`
}

func NewSanitizeCommand() *cobra.Command {
	var legacy bool

	cmd := &cobra.Command{
		Use:   "sanitize <domain>",
		Short: "Derive the system username for a domain",
		Long: "Derive the system username for a domain. The default derivation " +
			"appends a hash suffix so distinct domains never collide; --legacy " +
			"selects the old truncate-only form.",
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

			domain := args[0]
			res := sanitizeResult{
				Domain:    domain,
				Subdomain: naming.IsSubdomain(domain),
				Legacy:    legacy,
			}
			if legacy {
				res.Username = naming.Sanitize(domain)
			} else {
				res.Username = naming.DeriveUsername(domain)
			}

			if format == output.FormatTable {
				_, err := fmt.Fprintln(rt.Writer(), res.Username)
				return err
			}
			return output.WriteObject(rt.Writer(), format, res)
		},
	}

	cmd.Flags().BoolVar(&legacy, "legacy", false, "Use the truncate-only derivation (collision-prone)")

	return cmd
}
