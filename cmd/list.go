package cmd

import (
	"fmt"
	"strconv"

	"pfm/internal/color"
	"pfm/internal/config"
	"pfm/internal/process"

	"github.com/spf13/cobra"
)

// listCmdDef defines the list command structure
var listCmdDef = &cobra.Command{
	Use:   "list",
	Short: "List all configured port forwards",
	Long: `Lists every registered forward in id order with its index, host, port
mapping, and whether the recorded SSH process is still running. The
printed indices are what 'pfm delete' accepts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		runList(cfg)
		return nil
	},
}

func newListCmd() *cobra.Command {
	return listCmdDef
}

func runList(cfg *config.Config) {
	if len(cfg.Forwards) == 0 {
		fmt.Println(color.Warning.Render("No port forwards configured."))
		fmt.Println()
		fmt.Println(color.Dim.Render("Add one with: pfm add <host> <ports>"))
		return
	}

	total := len(cfg.Forwards)
	running := 0
	for _, f := range cfg.Forwards {
		if f.PID != nil && process.IsRunning(*f.PID) {
			running++
		}
	}

	fmt.Printf("\n%s (%s running, %d total)\n\n",
		color.Bold.Underline(true).Render("Port forwards:"),
		color.Success.Render(strconv.Itoa(running)),
		total)

	for index, f := range cfg.SortedForwards() {
		fmt.Printf("  %s: %s\n", color.Accent.Render("ID"), color.Bold.Render(strconv.Itoa(index)))
		fmt.Printf("  %s:  %s\n", color.Accent.Render("Host"), f.Host)
		fmt.Printf("  %s: %d → %d\n", color.Accent.Render("Ports"), f.LocalPort, f.RemotePort)

		if f.PID != nil {
			status := color.Warning.Render("○ Stopped")
			if process.IsRunning(*f.PID) {
				status = color.Success.Render("● Running")
			}
			fmt.Printf("  %s:   %d (%s)\n", color.Accent.Render("PID"), *f.PID, status)
		}

		fmt.Println()
	}
}
