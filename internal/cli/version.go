package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// currentReleaseVersion is used to print the version the user currently has downloaded
const currentReleaseVersion = "v0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print zxemu's version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zxemu %s\n", currentReleaseVersion)
	},
}
