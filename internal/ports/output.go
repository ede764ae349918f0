package ports

import (
	"io"

	"github-issue-upsert/internal/domain/entity"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// OutcomeWriter renders upsert outcomes for the command line
type OutcomeWriter interface {
	WriteOutcome(w io.Writer, outcome *entity.UpsertOutcome, format OutputFormat) error
}
