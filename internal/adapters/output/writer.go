package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github-issue-upsert/internal/domain/entity"
	"github-issue-upsert/internal/ports"
)

var _ ports.OutcomeWriter = (*Writer)(nil)

// Writer implements the OutcomeWriter interface
type Writer struct{}

// NewWriter creates a new output writer
func NewWriter() *Writer {
	return &Writer{}
}

// WriteOutcome renders an upsert outcome in the requested format
func (w *Writer) WriteOutcome(out io.Writer, outcome *entity.UpsertOutcome, format ports.OutputFormat) error {
	if outcome == nil {
		return fmt.Errorf("no outcome to write")
	}

	switch format {
	case ports.OutputFormatJSON:
		data, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling JSON: %v", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case ports.OutputFormatText, "":
		_, err := fmt.Fprintln(out, FormatAsText(outcome))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// FormatAsText returns a one-line summary such as "created #17 https://..."
func FormatAsText(outcome *entity.UpsertOutcome) string {
	line := fmt.Sprintf("%s #%d", outcome.Action, outcome.IssueNumber)
	if outcome.URL != "" {
		line += " " + outcome.URL
	}
	return line
}
