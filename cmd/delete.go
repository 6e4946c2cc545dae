package cmd

import (
	"fmt"
	"os"
	"strconv"

	"pfm/internal/color"
	"pfm/internal/config"
	"pfm/internal/process"

	"github.com/spf13/cobra"
)

// deleteCmdDef defines the delete command structure
var deleteCmdDef = &cobra.Command{
	Use:   "delete <index|id|all>...",
	Short: "Delete port forward(s)",
	Long: `Deletes forwards and stops their SSH tunnels.

Each argument is either an index from 'pfm list', a forward id, or the
literal 'all' to delete everything. Tokens that match nothing are
reported individually; the rest of the batch still goes through, and
the command exits non-zero if any token failed.

Examples:
  pfm delete 0 1 2    # Delete forwards at index 0, 1, 2
  pfm delete all      # Delete all forwards`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return runDelete(cfg, args)
	},
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg, err := config.Load()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		candidates := []string{"all"}
		for i, f := range cfg.SortedForwards() {
			candidates = append(candidates, strconv.Itoa(i), f.ID)
		}
		return candidates, cobra.ShellCompDirectiveNoFileComp
	},
}

func newDeleteCmd() *cobra.Command {
	return deleteCmdDef
}

// resolveTokens maps user tokens to registry ids. An index token is
// looked up in the sorted view; anything that does not parse as a
// non-negative integer passes through as a literal id. Unknown indices
// land in errs without aborting the batch.
func resolveTokens(cfg *config.Config, tokens []string) (ids []string, errs []string) {
	if len(tokens) == 1 && tokens[0] == "all" {
		fmt.Println(color.Warning.Render(fmt.Sprintf("Deleting all %d forward(s)...\n", len(cfg.Forwards))))
		for id := range cfg.Forwards {
			ids = append(ids, id)
		}
		return ids, nil
	}

	for _, token := range tokens {
		if index, err := strconv.Atoi(token); err == nil && index >= 0 {
			if f := cfg.ForwardByIndex(index); f != nil {
				ids = append(ids, f.ID)
			} else {
				msg := fmt.Sprintf("✗ Invalid index: %d", index)
				fmt.Fprintln(os.Stderr, color.Error.Render(msg))
				errs = append(errs, msg)
			}
			continue
		}
		ids = append(ids, token)
	}
	return ids, errs
}

func runDelete(cfg *config.Config, tokens []string) error {
	ids, errs := resolveTokens(cfg, tokens)

	deleted := 0
	for _, id := range ids {
		f := cfg.RemoveForward(id)
		if f == nil {
			msg := fmt.Sprintf("✗ Not found: %s", id)
			fmt.Fprintln(os.Stderr, color.Error.Render(msg))
			errs = append(errs, msg)
			continue
		}

		// The record is removed even when termination fails: the user
		// asked to forget the forward, and a leftover pid is surfaced
		// as a warning instead of blocking the batch.
		if f.PID != nil {
			stopProcess(*f.PID)
		}

		fmt.Printf("%s %s (localhost:%d → %s:%d)\n",
			color.Success.Render("✓ Deleted:"),
			color.Dim.Render(f.ID),
			f.LocalPort, f.Host, f.RemotePort)
		deleted++
	}

	if deleted > 0 {
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(color.Success.Render(fmt.Sprintf("✓ Deleted %d forward(s)", deleted)))
	}

	if len(errs) > 0 {
		return fmt.Errorf("some deletions failed")
	}
	return nil
}

// stopProcess terminates the recorded SSH child, downgrading failures
// to warnings.
func stopProcess(pid int) {
	alreadyStopped, err := process.Terminate(pid)
	switch {
	case err != nil:
		fmt.Fprintln(os.Stderr, color.Warning.Render(fmt.Sprintf("  ⚠ Warning: %v", err)))
	case alreadyStopped:
		fmt.Printf("    Process %d was already stopped\n", pid)
	default:
		fmt.Printf("  Stopped process: %d\n", pid)
	}
}
