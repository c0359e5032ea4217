package cmd

import (
	"log"

	"github.com/josephlewis42/ezh/core/config"
	"github.com/spf13/cobra"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Write the default configuration to DIR, the current directory by default.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		logger := log.New(cmd.ErrOrStderr(), "", 0)

		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		cfg, err := config.Initialize(dir, logger)
		if err != nil {
			return err
		}

		logger.Printf("Start the shell with: ezh --config %s\n", cfg.Dir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
