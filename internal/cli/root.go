// Package cli implements the mailgen command tree.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nhle/mailgen/internal/model"
)

var (
	flagConfigFile string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "mailgen",
	Short: "Generate himalaya configuration from declarative account definitions",
	Long: `mailgen turns a declarative description of your email accounts into
a ready-to-use configuration file for the himalaya CLI, plus an
optional systemd unit that keeps "himalaya envelopes watch" running.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", model.DefaultConfigPath(), "path to the account declaration file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(secretCmd)
	rootCmd.AddCommand(accountCmd)
}

// loadDeclaration reads the account declaration named by --config.
func loadDeclaration() (*model.Config, error) {
	logrus.Debugf("loading declaration from %s", flagConfigFile)
	return model.Load(flagConfigFile)
}

// Execute runs the command tree and reports failure through the exit
// code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
