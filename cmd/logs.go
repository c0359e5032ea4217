package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/josephlewis42/ezh/core/ttylog"
	"github.com/spf13/cobra"
)

var (
	idleTimeLimit time.Duration
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Explore terminal recordings made with --record.",
}

var playCommand = &cobra.Command{
	Use:   "play FILE",
	Short: "Replay a recorded interactive session in the terminal.",
	Long:  `Plays a recorded session back to the current terminal, keeping the original pauses up to --idle-time-limit.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		sink := ttylog.NewRealTimePlayback(idleTimeLimit, ttylog.NewClientOutput(cmd.OutOrStdout()))
		return replayFile(args[0], sink)
	},
}

var catCommand = &cobra.Command{
	Use:   "cat FILE",
	Short: "Print full output of recorded log to a terminal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return replayFile(args[0], ttylog.NewClientOutput(cmd.OutOrStdout()))
	},
}

var convertCommand = &cobra.Command{
	Use:   "convert INPUT OUTPUT",
	Short: "Convert a recording between formats.",
	Long: `Converts a recording between the native format and asciicast (asciinema).

Formats are picked by file extension: .cast is asciicast v2, anything else is
the native format. An OUTPUT of "-" writes asciicast to standard output.`,
	Example: "ezh logs convert session.ttylog session.cast",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		input, output := args[0], args[1]

		if output == "-" {
			return replayFile(input, ttylog.NewAsciicastLogSink(cmd.OutOrStdout(), ttylog.AsciicastHeader{
				Title: filepath.Base(input),
			}))
		}

		fd, err := os.Create(output)
		if err != nil {
			return err
		}
		if err := replayFile(input, createLogSink(output, fd)); err != nil {
			fd.Close()
			return err
		}
		return fd.Close()
	},
}

// replayFile sends every entry of the recording at path to sink.
func replayFile(path string, sink ttylog.LogSink) error {
	fd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	if err := ttylog.Replay(createLogSource(path, fd), sink); err != nil {
		return fmt.Errorf("replaying %s: %w", path, err)
	}
	return nil
}

func isAsciicast(name string) bool {
	return strings.TrimPrefix(filepath.Ext(name), ".") == ttylog.AsciicastFileExt
}

func createLogSource(name string, r io.Reader) ttylog.LogSource {
	if isAsciicast(name) {
		return ttylog.NewAsciicastLogSource(r)
	}
	return ttylog.NewWireLogSource(r)
}

// createLogSink picks the recording format from the extension of name.
func createLogSink(name string, w io.Writer) ttylog.LogSink {
	if isAsciicast(name) {
		return ttylog.NewAsciicastLogSink(w, ttylog.AsciicastHeader{Title: "ezh session"})
	}
	return ttylog.NewWireLogSink(w)
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(playCommand)
	logsCmd.AddCommand(convertCommand)
	logsCmd.AddCommand(catCommand)

	playCommand.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
}
