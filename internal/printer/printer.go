// Package printer formats command output with colors.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

// Success prints a green message with a checkmark prefix.
func Success(w io.Writer, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(w, msg)
}

// Info prints a message in the default color.
func Info(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, format, a...)
}

// Warning prints a yellow message with a warning prefix.
func Warning(w io.Writer, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		msg = "⚠️  " + msg
	}
	yellow.Fprint(w, msg)
}

// Heading prints a cyan section title followed by a newline.
func Heading(w io.Writer, title string) {
	cyan.Fprintln(w, title)
}

// Error prints a red title, an explanation and optional suggestions to stderr and returns
// an error carrying only the title, for commands that silence cobra's own error output.
func Error(title string, explanation string, suggestions []string) error {
	return Ferror(os.Stderr, title, explanation, suggestions)
}

// Ferror is Error writing to w.
func Ferror(w io.Writer, title string, explanation string, suggestions []string) error {
	red.Fprintf(w, "%s\n\n", title)
	fmt.Fprintf(w, "%s\n", explanation)

	if len(suggestions) > 0 {
		fmt.Fprintf(w, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(w, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(w, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(w, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	return fmt.Errorf("%s", title)
}

// Row is one line of a status table.
type Row struct {
	Label  string
	Value  string
	OK     bool
	Detail string
}

// Table prints rows as aligned columns. The value is green when OK and faint otherwise.
func Table(w io.Writer, header [3]string, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", header[0], header[1], header[2])
	for _, r := range rows {
		value := faint.Sprint(r.Value)
		if r.OK {
			value = green.Sprint(r.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Label, value, r.Detail)
	}
	return tw.Flush()
}
