package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const completionHelp = `Generate a shell completion script for dropletctl.

To load completions in the current bash session:

  source <(dropletctl completion bash)

For zsh, write the script somewhere in $fpath:

  dropletctl completion zsh > "${fpath[1]}/_dropletctl"

For fish:

  dropletctl completion fish > ~/.config/fish/completions/dropletctl.fish
`

func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion",
		Long:      completionHelp,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}

			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(rt.Writer())
			case "zsh":
				return cmd.Root().GenZshCompletion(rt.Writer())
			case "fish":
				return cmd.Root().GenFishCompletion(rt.Writer(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(rt.Writer())
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
}
