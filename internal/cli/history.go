package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thruflo/overlook/internal/demo"
	"github.com/thruflo/overlook/internal/history"
	"github.com/thruflo/overlook/internal/inspect"
)

var historyProgram string

var historyCmd = &cobra.Command{
	Use:   "history <file>",
	Short: "List the messages of an exported history",
	Long: `Lists the messages recorded in a history file written by the debugger's
export, one label per line. Files recorded from another program are
rejected unless --program names it (or is empty to accept any program).`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyProgram, "program", demo.Name, "program the history must have been recorded from")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	f, err := history.Load(args[0], historyProgram)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d messages\n", f.Metadata.Program, f.Len())
	for i := range f.Messages {
		fmt.Fprintf(out, "%3d  %s\n", i+1, messageLabel(f, i))
	}
	return nil
}

// messageLabel prefers the saved label, then a label computed from the
// demo's decoder, then the raw message.
func messageLabel(f *history.File, i int) string {
	if i < len(f.Labels) && f.Labels[i] != "" {
		return f.Labels[i]
	}
	if f.Metadata.Program == demo.Name {
		if msg, err := demo.DecodeMsg(f.Messages[i]); err == nil {
			return inspect.Stringify(inspect.FromGo(msg))
		}
	}
	return string(f.Messages[i])
}
