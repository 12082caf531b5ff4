package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/thruflo/overlook/internal/config"
	"github.com/thruflo/overlook/internal/debugger"
	"github.com/thruflo/overlook/internal/demo"
	"github.com/thruflo/overlook/internal/dom"
	"github.com/thruflo/overlook/internal/gate"
	"github.com/thruflo/overlook/internal/history"
	"github.com/thruflo/overlook/internal/inspect"
	"github.com/thruflo/overlook/internal/logging"
	"github.com/thruflo/overlook/internal/nav"
	"github.com/thruflo/overlook/internal/termhost"
	"github.com/thruflo/overlook/internal/uiloop"
)

var (
	runPopoutTTY string
	runConfigDir string
	runTick      time.Duration
)

// stdinIsTerminal reports whether stdin is interactive. Tests override it.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the counter demo under the debugger",
	Long: `Runs the counter demo on this terminal with the debugger attached.

The corner indicator shows how many messages were recorded. Press Tab to
focus "Explore History" and Enter to open the history explorer. The
explorer is painted on the terminal given by --popout-tty (or popout.tty in
.overlook/config.yaml); without one the debugger stays in the corner.

In the explorer: up/down select a message, Enter toggles the focused
value, e exports the history, i imports the configured file, r resumes,
q closes the explorer.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runPopoutTTY, "popout-tty", "", "terminal device for the history explorer (e.g. /dev/pts/3)")
	runCmd.Flags().StringVar(&runConfigDir, "config", "", "directory containing .overlook/config.yaml (default: current directory)")
	runCmd.Flags().DurationVar(&runTick, "tick", 0, "send the demo a Tick message at this interval")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if !stdinIsTerminal() {
		return fmt.Errorf("overlook run needs an interactive terminal")
	}

	cfg, err := loadConfig(runConfigDir)
	if err != nil {
		return err
	}
	if runPopoutTTY != "" {
		cfg.Popout.TTY = runPopoutTTY
	}

	closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	loop := uiloop.New(cfg.Frames.Interval())
	host := termhost.New(loop, termhost.Options{
		PopoutTTY: cfg.Popout.TTY,
		Logger:    logging.Named("termhost"),
	})

	loc, err := nav.New(host.Window(), demo.Location)
	if err != nil {
		return err
	}
	loc.OnChange(func(url string) { logging.Debug("location changed", "url", url) })

	prog := demo.Program(demo.Options{TickInterval: runTick, Nav: loc})
	opts := debuggerOptions(cfg)
	loop.Post(func() {
		session := debugger.Start(debugger.Host{
			Loop:     loop,
			Window:   host.Window(),
			Surfaces: host.Surfaces(),
		}, prog, opts)
		host.SetInput(session.Runtime.Input)
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return host.Run(ctx)
}

func loadConfig(dir string) (*config.Config, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = cwd
	}
	return config.LoadConfig(dir)
}

// setupLogging applies the log level and redirects output to the log file,
// if one is configured. The returned function closes the file.
func setupLogging(cfg config.Log) (func(), error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	logging.SetLevel(level)
	if cfg.File == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logging.SetOutput(log.New(f, "", log.LstdFlags))
	return func() {
		logging.SetOutput(log.New(os.Stderr, "", log.LstdFlags))
		f.Close()
	}, nil
}

func debuggerOptions(cfg *config.Config) debugger.Options {
	return debugger.Options{
		Inspector:  inspect.Inspector{MaxDepth: cfg.Inspect.MaxDepth},
		Store:      history.NewStore(cfg.History.Dir),
		ImportPath: cfg.History.Import,
		Surface: dom.SurfaceOptions{
			Title:  cfg.Popout.Title,
			Width:  cfg.Popout.Width,
			Height: cfg.Popout.Height,
			Left:   -1,
			Top:    -1,
		},
		Gate: gate.Options{
			DetailsID: cfg.Gate.DetailsID,
			OverlayID: cfg.Gate.OverlayID,
		},
		Logger: logging.Named("debugger"),
	}
}
