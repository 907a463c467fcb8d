// internal/commands/show.go
package finbench

import (
	"github.com/spf13/cobra"
)

// showCmd groups the read-only inspection commands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show finbench resources",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
