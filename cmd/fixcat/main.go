package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vegasq/fixcat/internal/diag"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fixcat",
		Short: "Convert fixed-width text files to delimited records",
		Long: `fixcat slices fixed-width text lines into fields described by a JSON or
TOML layout and writes them as CSV, JSON Lines, MessagePack, Parquet or an
aligned table.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")
	root.PersistentFlags().String("log-format", "text", "log format (text|json)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(newConvertCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newVersionCmd())
	return root
}

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// shouldColor resolves mode for w. Auto colors only terminals.
func shouldColor(mode colorMode, w io.Writer) bool {
	switch mode {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isTerminal(f)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logSettings are the values newLogger needs. Flags set on the command
// line replace the corresponding fields.
type logSettings struct {
	level  string
	format string
	color  string
}

func newLogger(cmd *cobra.Command, base logSettings) (*diag.Logger, error) {
	flags := cmd.Flags()
	if flags.Changed("log-level") || base.level == "" {
		base.level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") || base.format == "" {
		base.format, _ = flags.GetString("log-format")
	}
	if flags.Changed("color") || base.color == "" {
		base.color, _ = flags.GetString("color")
	}

	mode, err := readColorMode(base.color)
	if err != nil {
		return nil, err
	}

	w := cmd.ErrOrStderr()
	logger := diag.New(w, diag.ParseLevel(base.level), diag.ParseFormat(base.format))
	logger.SetColor(shouldColor(mode, w))
	return logger, nil
}
