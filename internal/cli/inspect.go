package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thruflo/overlook/internal/expando"
	"github.com/thruflo/overlook/internal/inspect"
)

var (
	inspectDepth     int
	inspectCollapsed bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show a JSON or YAML value the way the debugger does",
	Long: `Decodes a JSON or YAML document (from the file, or stdin when none is
given) and prints it as the debugger's value tree, followed by the one-line
summary used for history labels.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectDepth, "depth", inspect.DefaultMaxDepth, "maximum nesting depth to expand")
	inspectCmd.Flags().BoolVar(&inspectCollapsed, "collapsed", false, "start nested values collapsed, as the debugger does")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	in := inspect.Inspector{MaxDepth: inspectDepth}
	value := in.FromGo(doc)
	tree := in.Classify(value)
	if inspectCollapsed {
		tree = expando.Init(tree)
	}

	out := cmd.OutOrStdout()
	summary := lipgloss.NewStyle()
	if isTerminal(out) {
		summary = summary.Faint(true)
	}
	for _, line := range expando.Lines(tree) {
		fmt.Fprintln(out, strings.Repeat("  ", line.Depth)+line.Text)
	}
	fmt.Fprintln(out, summary.Render("summary: "+in.Stringify(value)))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
