package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	insightErrors "github.com/finsight-dev/FinanceInsights/internal/insights/errors"
)

func TestExtractJSON_DirectObject(t *testing.T) {
	raw := `{"response": "hello"}`

	candidate, err := ExtractJSON(raw)

	assert.NoError(t, err)
	assert.Equal(t, raw, candidate)
}

func TestExtractJSON_DirectArray(t *testing.T) {
	raw := `[{"type": "recommendation"}]`

	candidate, err := ExtractJSON(raw)

	assert.NoError(t, err)
	assert.Equal(t, raw, candidate)
}

func TestExtractJSON_FencedBlock(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"score\": 80}\n```\nLet me know if you need more."

	candidate, err := ExtractJSON(raw)

	assert.NoError(t, err)
	assert.Equal(t, `{"score": 80}`, candidate)
}

func TestExtractJSON_FencedBlockExtraWhitespace(t *testing.T) {
	raw := "```json   \n\n  {\"score\": 80}  \n\n```"

	candidate, err := ExtractJSON(raw)

	assert.NoError(t, err)
	assert.Equal(t, `{"score": 80}`, candidate)
}

func TestExtractJSON_PlainProse(t *testing.T) {
	_, err := ExtractJSON("I cannot produce JSON for that request.")

	assert.ErrorIs(t, err, insightErrors.ErrUnparsableResponse)
}

func TestExtractJSON_FencedBlockWithInvalidJSON(t *testing.T) {
	_, err := ExtractJSON("```json\n{not json}\n```")

	assert.ErrorIs(t, err, insightErrors.ErrUnparsableResponse)
}
