// Package cli formats answers and status for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// PreviewLength is how many characters of matched content are shown in text output.
const PreviewLength = 200

// OutputFormat is the format for answer and status output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates an --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, "":
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("invalid output format %q (use text or json)", s)
	}
}

type styles struct {
	label   lipgloss.Style
	reply   lipgloss.Style
	noMatch lipgloss.Style
	faint   lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{label: plain, reply: plain, noMatch: plain, faint: plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		label:   r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		reply:   r.NewStyle().Foreground(lipgloss.Color("4")),
		noMatch: r.NewStyle().Foreground(lipgloss.Color("1")),
		faint:   r.NewStyle().Faint(true),
	}
}

// WriteAnswer writes ans to w in the given format. Colour applies to text output only
// and only when w is a terminal.
func WriteAnswer(w io.Writer, ans *models.Answer, format OutputFormat, color bool) error {
	if format == OutputJSON {
		return writeJSON(w, ans)
	}
	st := newStyles(w, color)

	if !ans.Match.Found {
		fmt.Fprintln(w, st.noMatch.Render("No relevant document found."))
		if ans.Match.Scanned > 0 {
			fmt.Fprintln(w, st.faint.Render(fmt.Sprintf("best score %.4f over %d documents", ans.Match.Score, ans.Match.Scanned)))
		}
		return nil
	}

	fmt.Fprintf(w, "%s %s\n", st.label.Render("Document:"), ans.Match.ID)
	fmt.Fprintf(w, "%s %.4f (cosine %.4f, boost %.2f)\n",
		st.label.Render("Score:"), ans.Match.Score, ans.Match.Cosine, ans.Match.Boost)
	fmt.Fprintf(w, "%s %s\n", st.label.Render("Content:"), utils.Truncate(ans.Match.Content, PreviewLength))
	fmt.Fprintf(w, "%s\n%s\n", st.label.Render("Response:"), st.reply.Render(ans.Response))
	if ans.Match.Mismatched > 0 || ans.Match.Degenerate > 0 {
		fmt.Fprintln(w, st.faint.Render(fmt.Sprintf("skipped %d mismatched and %d degenerate vectors",
			ans.Match.Mismatched, ans.Match.Degenerate)))
	}
	return nil
}

// WriteStatus writes the store and retrieval status to w.
func WriteStatus(w io.Writer, status *models.Status, format OutputFormat) error {
	if format == OutputJSON {
		return writeJSON(w, status)
	}
	fmt.Fprintf(w, "Database:   %s\n", status.DatabasePath)
	fmt.Fprintf(w, "Rows:       %d\n", status.Rows)
	fmt.Fprintf(w, "Loaded:     %d\n", status.Loaded)
	fmt.Fprintf(w, "Rejected:   %d\n", status.Rejected)
	dims := make([]int, 0, len(status.Dimensions))
	for d := range status.Dimensions {
		dims = append(dims, d)
	}
	sort.Ints(dims)
	for _, d := range dims {
		fmt.Fprintf(w, "  %d-dim:   %d\n", d, status.Dimensions[d])
	}
	fmt.Fprintf(w, "Ranker:     %s (threshold %.2f, name boost %.2f)\n", status.Ranker, status.Threshold, status.NameBoost)
	fmt.Fprintf(w, "Workers:    %d\n", status.Workers)
	fmt.Fprintf(w, "Memory:     %d/%d\n", len(status.Memory.Entries), status.Memory.Capacity)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
