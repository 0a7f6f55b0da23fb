package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bnema/guardcore-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	emptyStyle = lipgloss.NewStyle().Faint(true)
)

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeTable(cmd *cobra.Command, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), emptyStyle.Render("No entries."))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}

type field struct {
	key   string
	value string
}

func writeFields(cmd *cobra.Command, fields []field) error {
	width := 0
	for _, f := range fields {
		if len(f.key) > width {
			width = len(f.key)
		}
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, keyStyle.Render(fmt.Sprintf("%-*s", width+1, f.key+":"))+" "+f.value)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), lipgloss.JoinVertical(lipgloss.Left, lines...))
	return err
}

// writeResult prints an untyped server reply, falling back to message when
// the server sent an empty body.
func writeResult(cmd *cobra.Command, asJSON bool, result any, message string) error {
	if result == nil || !asJSON {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), message)
		return err
	}
	return writeJSON(cmd, result)
}

// readJSONInput decodes a request body from --data or --file ("-" for stdin).
// Unknown fields are rejected so typos never reach the server silently.
func readJSONInput(cmd *cobra.Command, data string, file string, out any) error {
	var raw []byte
	switch {
	case data != "" && file != "":
		return errors.New("use either --data or --file, not both")
	case data != "":
		raw = []byte(data)
	case file == "-":
		read, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		raw = read
	case file != "":
		read, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		raw = read
	default:
		return errors.New("request body required: pass --data or --file")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	return nil
}

func readSecretLine(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatOptionalBytes(v *int64) string {
	if v == nil {
		return "-"
	}
	return domain.CompactBytes(*v)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return "-"
	}
	return formatTime(*v)
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return "-"
	}
	return v.UTC().Format("2006-01-02 15:04")
}

func formatUsage(used, limit *int64) string {
	usage := domain.Usage{}
	if used != nil {
		usage.Used = *used
	}
	if limit != nil {
		usage.Limit = *limit
	}
	if usage.Unlimited() {
		return usage.UsedCompact() + " / unlimited"
	}
	return fmt.Sprintf("%s / %s (%.0f%%)", usage.UsedCompact(), domain.CompactBytes(usage.Limit), usage.Percent())
}
