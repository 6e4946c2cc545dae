package cmd

import (
	"fmt"
	"sort"

	"pfm/internal/color"
	"pfm/internal/config"
	"pfm/internal/process"

	"github.com/spf13/cobra"
)

// cleanupCmdDef defines the cleanup command structure
var cleanupCmdDef = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove forwards whose SSH processes have died",
	Long: `Removes every registered forward whose recorded SSH process is no
longer running. Forwards without a recorded pid are left alone, since
pfm never confirmed a tunnel for them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return runCleanup(cfg)
	},
}

func newCleanupCmd() *cobra.Command {
	return cleanupCmdDef
}

// deadForwardIDs returns the ids of forwards with a recorded pid that
// no longer names a running process, sorted for stable output.
func deadForwardIDs(cfg *config.Config) []string {
	var dead []string
	for id, f := range cfg.Forwards {
		if f.PID != nil && !process.IsRunning(*f.PID) {
			dead = append(dead, id)
		}
	}
	sort.Strings(dead)
	return dead
}

func runCleanup(cfg *config.Config) error {
	removed := 0
	for _, id := range deadForwardIDs(cfg) {
		f := cfg.RemoveForward(id)
		if f == nil {
			continue
		}
		fmt.Printf("%s %s (PID: %d)\n",
			color.Warning.Render("✓ Removed dead forward:"),
			color.Dim.Render(f.ID),
			*f.PID)
		removed++
	}

	if removed == 0 {
		fmt.Println(color.Dim.Render("No dead forwards found"))
		return nil
	}

	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(color.Success.Render(fmt.Sprintf("✓ Cleaned up %d dead forward(s)", removed)))
	return nil
}
