package cmd

import (
	"os"

	"pfm/internal/color"
	"pfm/pkg/logging"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var debugMode bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pfm",
	Short: "Port forward manager",
	Long: `pfm manages persistent SSH local port forwards. Each forward runs as
a detached background ssh process that survives pfm's own exit; the
registry of forwards lives in a per-user config file so later
invocations can list, delete, or garbage-collect them.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. bad port specs, failed tunnel starts)
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if debugMode {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, os.Stderr)
		color.Initialize(lipgloss.HasDarkBackground())
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "pfm version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	// The completions verb replaces cobra's built-in completion command.
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newCleanupCmd())
	rootCmd.AddCommand(newCompletionsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
