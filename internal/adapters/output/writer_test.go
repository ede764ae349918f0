package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-issue-upsert/internal/domain/entity"
	"github-issue-upsert/internal/ports"
)

func TestWriteOutcome(t *testing.T) {
	outcome := &entity.UpsertOutcome{
		Action:      entity.ActionUpdated,
		IssueNumber: 17,
		URL:         "https://github.com/acme/ci/issues/17",
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter().WriteOutcome(&buf, outcome, ports.OutputFormatText))
		assert.Equal(t, "updated #17 https://github.com/acme/ci/issues/17\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter().WriteOutcome(&buf, outcome, ports.OutputFormatJSON))

		var decoded entity.UpsertOutcome
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, *outcome, decoded)
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, NewWriter().WriteOutcome(&buf, outcome, ports.OutputFormat("xml")))
		assert.Empty(t, buf.String())
	})

	t.Run("nil outcome", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, NewWriter().WriteOutcome(&buf, nil, ports.OutputFormatText))
	})
}

func TestFormatAsText_NoURL(t *testing.T) {
	assert.Equal(t, "created #3", FormatAsText(&entity.UpsertOutcome{Action: entity.ActionCreated, IssueNumber: 3}))
}
