package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/josephlewis42/ezh/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var historySession string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Explore the session event log.",
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := openSessionLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		report := logger.NewReport()
		if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

var historyCommand = &cobra.Command{
	Use:   "history",
	Short: "List the recorded instructions with their exit codes.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := openSessionLog()
		if err != nil {
			return err
		}
		defer fd.Close()

		return logger.ReadJSONLinesLog(fd, func(le *logger.LogEntry) {
			fields := le.GetFields()
			if historySession != "" && fields[logger.FieldSessionID].GetStringValue() != historySession {
				return
			}
			micros := int64(fields[logger.FieldTimestampMicros].GetNumberValue())
			when := time.UnixMicro(micros).UTC().Format(time.RFC3339)

			switch fields[logger.FieldType].GetStringValue() {
			case logger.TypeInstruction:
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n",
					when,
					int(fields[logger.FieldExitCode].GetNumberValue()),
					fields[logger.FieldText].GetStringValue())
			case logger.TypeInstructionError:
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					when,
					fields[logger.FieldStage].GetStringValue(),
					fields[logger.FieldText].GetStringValue())
			}
		})
	},
}

func openSessionLog() (io.ReadCloser, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return cfg.ReadSessionLog()
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(reportCommand)
	eventsCmd.AddCommand(historyCommand)

	historyCommand.Flags().StringVarP(&historySession, "session", "s", "", "only show instructions from this session ID")
}
