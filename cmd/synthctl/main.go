// Command synthctl runs the boolean functional synthesis engine against
// a QDIMACS specification and emits a Skolem basis circuit.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "synthctl",
		Short: "synthctl",
		Long:  `A CLI tool to synthesize boolean Skolem functions from a QDIMACS specification.`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVerifyCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}
