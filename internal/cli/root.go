package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base for all commands.
var rootCmd = &cobra.Command{
	Use:   "zxemu [command]",
	Short: "zxemu is a ZX Spectrum emulator",
	Long:  "zxemu emulates the Sinclair ZX Spectrum 48K and 128K",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Unknown command. Try `zxemu help` for more information")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs zxemu according to the user's command/subcommand/flags
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
