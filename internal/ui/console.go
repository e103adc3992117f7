package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/muesli/termenv"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// Severity markers prefixed to status lines.
const (
	MarkerInfo    = "[INFO]"
	MarkerSuccess = "[OK]"
	MarkerWarning = "[WARN]"
	MarkerError   = "[ERROR]"
)

// ErrInputClosed is returned by Ask when no further answer can be read.
var ErrInputClosed = errors.New("input closed")

// Console reads confirmations from one stream and writes tagged status
// lines to another.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	title   lipgloss.Style
	prompt  lipgloss.Style
	muted   lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	box     lipgloss.Style
}

// NewConsole creates a console. When color is false every style renders as
// plain text, which is what pipes and log files want.
func NewConsole(in io.Reader, out io.Writer, color bool) *Console {
	r := lipgloss.NewRenderer(out)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		prompt:  r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(ColorMuted),
		info:    r.NewStyle().Foreground(ColorInfo),
		success: r.NewStyle().Foreground(ColorSuccess),
		warning: r.NewStyle().Foreground(ColorWarning),
		failure: r.NewStyle().Bold(true).Foreground(ColorError),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 2),
	}
}

// Announce prints the header for one catalog entry.
func (c *Console) Announce(index, total int, description string) {
	counter := c.muted.Render(fmt.Sprintf("[%d/%d]", index, total))
	fmt.Fprintf(c.out, "\n%s %s\n", counter, c.title.Render(description))
}

// Ask writes question followed by "(y/n): " and returns the line typed,
// without its line terminator. A final line without a newline is still
// returned; a stream that ends before any input yields ErrInputClosed.
func (c *Console) Ask(question string) (string, error) {
	fmt.Fprintf(c.out, "%s (y/n): ", c.prompt.Render(question))

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			fmt.Fprintln(c.out)
			return strings.TrimRight(line, "\r\n"), nil
		}
		fmt.Fprintln(c.out)
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", errors.Wrap(err, "read answer")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Info prints an informational status line.
func (c *Console) Info(format string, args ...any) {
	c.line(c.info, MarkerInfo, format, args...)
}

// Success prints a success status line.
func (c *Console) Success(format string, args ...any) {
	c.line(c.success, MarkerSuccess, format, args...)
}

// Warn prints a warning status line.
func (c *Console) Warn(format string, args ...any) {
	c.line(c.warning, MarkerWarning, format, args...)
}

// Error prints an error status line.
func (c *Console) Error(format string, args ...any) {
	c.line(c.failure, MarkerError, format, args...)
}

func (c *Console) line(style lipgloss.Style, marker, format string, args ...any) {
	fmt.Fprintf(c.out, "%s %s\n", style.Render(marker), fmt.Sprintf(format, args...))
}

// Banner prints lines inside a rounded box under a bold title.
func (c *Console) Banner(title string, lines []string) {
	body := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{c.title.Render(title), ""}, lines...)...)
	fmt.Fprintf(c.out, "\n%s\n", c.box.Render(body))
}

// Plain prints lines without a severity marker.
func (c *Console) Plain(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
}
