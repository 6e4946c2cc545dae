package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// completionsCmdDef defines the completions command structure
var completionsCmdDef = &cobra.Command{
	Use:   "completions <shell>",
	Short: "Generate shell completions",
	Long: `Generates a completion script for the given shell and writes it to
stdout. Supported shells: bash, zsh, fish, powershell.

To load completions in your current bash session:

  source <(pfm completions bash)`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return fmt.Errorf("unsupported shell: %s", args[0])
	},
}

func newCompletionsCmd() *cobra.Command {
	return completionsCmdDef
}
