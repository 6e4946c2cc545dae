package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pfm",
		Long:  `All software has versions. This is pfm's.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pfm version %s\n", rootCmd.Version)
		},
	}
}
