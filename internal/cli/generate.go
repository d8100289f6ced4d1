package cli

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nhle/mailgen/internal/generate"
)

var (
	flagGenerateOutput string
	flagGenerateStdout bool
)

func init() {
	generateCmd.Flags().StringVarP(&flagGenerateOutput, "output", "o", ".", "directory to write the generated files into")
	generateCmd.Flags().BoolVar(&flagGenerateStdout, "stdout", false, "print the config document instead of writing files")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the CLI config file and watcher service unit",
	Long: `Evaluate the account declaration and write config.toml plus, when
the watcher is enabled, himalaya-watch.service.

To inspect the config document without touching the filesystem:
	$ mailgen generate --stdout > config.toml
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadDeclaration()
		if err != nil {
			return err
		}

		artifacts, err := generate.Run(cfg)
		if err != nil {
			return err
		}

		if flagGenerateStdout {
			fmt.Fprint(cmd.OutOrStdout(), string(artifacts.Config))
			if artifacts.Unit != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\n# %s\n%s", artifacts.UnitName, artifacts.Unit)
			}
			return nil
		}

		if err := generate.WriteFiles(artifacts, flagGenerateOutput); err != nil {
			return err
		}

		logrus.Infof("wrote %s", filepath.Join(flagGenerateOutput, generate.ConfigFileName))
		if artifacts.Unit != nil {
			logrus.Infof("wrote %s", filepath.Join(flagGenerateOutput, artifacts.UnitName))
		}
		return nil
	},
}
