package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func validateFormat(format string) error {
	switch format {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	return t
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// titleWidth is the room left for a free-text column once the fixed columns
// and the table borders are accounted for.
func titleWidth(fixed, columns int) int {
	w := getTerminalWidth() - fixed - columns*3
	if w < 15 {
		w = 15
	}
	return w
}

// truncate shortens s to maxWidth display cells, accounting for wide runes.
func truncate(s string, maxWidth int) string {
	s = strings.TrimSpace(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// swatch prefixes hex with a block painted in that colour. The block is plain
// when the output is not a colour terminal or --no-color is set.
func swatch(cmd *cobra.Command, hex string) string {
	r := lipgloss.NewRenderer(cmd.OutOrStdout())
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return r.NewStyle().Foreground(lipgloss.Color(hex)).Render("■") + " " + hex
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

func emptyOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// readContent reads page content from a file, or from stdin when no file is
// given.
func readContent(cmd *cobra.Command, filePath string) (string, error) {
	if filePath != "" {
		bytes, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		return string(bytes), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "Enter content (Ctrl-D when done):")
		}
	}

	bytes, err := io.ReadAll(in)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// confirm asks a y/N question on stderr and reads the answer from stdin.
func confirm(cmd *cobra.Command, message string) (bool, error) {
	reader := bufio.NewReader(cmd.InOrStdin())
	fmt.Fprint(cmd.ErrOrStderr(), message)
	answer, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.TrimSpace(strings.ToLower(answer)) == "y", nil
}
