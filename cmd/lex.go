package cmd

import (
	"fmt"

	"github.com/josephlewis42/ezh/commands"
	"github.com/josephlewis42/ezh/core/shell"
	"github.com/josephlewis42/ezh/core/vos"
	"github.com/spf13/cobra"
)

var (
	lexEnv   []string
	lexParse bool
)

// lexCmd shows how an instruction is tokenized
var lexCmd = &cobra.Command{
	Use:   "lex INSTRUCTION",
	Short: "Print the tokens of an instruction after substitution.",
	Long: `Print the tokens of an instruction after substitution, one per line.

Variables for substitution are given with --env NAME=VALUE. With --parse the
operations the instruction compiles to are printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		aliases, err := cfg.Aliases()
		if err != nil {
			return err
		}

		env := vos.NewEnvironmentFromList("/", append(cfg.Environ(), lexEnv...))
		session := &shell.Session{
			Env:        env,
			Dispatcher: &shell.Dispatcher{Resolver: commands.BuiltinProcessResolver, Aliases: aliases},
		}

		if lexParse {
			ops, err := session.Compile(args[0])
			if err != nil {
				return err
			}
			for _, op := range ops {
				fmt.Fprintln(cmd.OutOrStdout(), op)
			}
			return nil
		}

		tokens, err := shell.Lex(args[0])
		if err != nil {
			return err
		}
		tokens, err = shell.Postprocess(tokens, env)
		if err != nil {
			return err
		}
		for _, tok := range tokens {
			fmt.Fprintln(cmd.OutOrStdout(), tok)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringArrayVar(&lexEnv, "env", nil, "variable to substitute, as NAME=VALUE")
	lexCmd.Flags().BoolVar(&lexParse, "parse", false, "print operations instead of tokens")
}
