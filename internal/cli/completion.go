package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. Flag values such as
// --omit and --format complete from fixed lists.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rosview.

  $ source <(rosview completion bash)
  $ rosview completion zsh > "${fpath[1]}/_rosview"
  $ rosview completion fish | source
  PS> rosview completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// registerCompletions adds value completion for the fixed-choice flags of cmd.
func registerCompletions(cmd *cobra.Command) {
	fixed := map[string][]string{
		"omit":   {"full", "first_last", "last"},
		"format": {formatSVG, formatHTML, formatDOT, formatJSON},
	}
	for name, values := range fixed {
		if cmd.Flags().Lookup(name) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
	for _, sub := range cmd.Commands() {
		registerCompletions(sub)
	}
}
