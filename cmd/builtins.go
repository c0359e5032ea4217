package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/josephlewis42/ezh/commands"
	"github.com/spf13/cobra"
)

// builtinsCmd lists the dispatch table
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, builtin := range commands.ListBuiltinCommands() {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(builtin.Names, ", "))
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		aliases, err := cfg.Aliases()
		if err != nil {
			return err
		}
		for _, name := range sortedKeys(aliases) {
			fmt.Fprintf(cmd.OutOrStdout(), "alias:%s=%s\n", name, strings.Join(aliases[name], " "))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}

func sortedKeys(m map[string][]string) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
