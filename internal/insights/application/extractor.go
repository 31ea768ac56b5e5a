package application

import (
	"encoding/json"
	"regexp"
	"strings"

	insightErrors "github.com/finsight-dev/FinanceInsights/internal/insights/errors"
)

var fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// A recognizer attempts one syntactic recovery of a JSON payload from raw
// model output. Recognizers are pure and independently testable; the chain
// below tries them in order, first success wins.
type recognizer func(raw string) (string, bool)

func recognizeDirectJSON(raw string) (string, bool) {
	if json.Valid([]byte(raw)) {
		return raw, true
	}
	return "", false
}

func recognizeFencedJSON(raw string) (string, bool) {
	match := fencedJSONPattern.FindStringSubmatch(raw)
	if match == nil {
		return "", false
	}
	candidate := strings.TrimSpace(match[1])
	if json.Valid([]byte(candidate)) {
		return candidate, true
	}
	return "", false
}

var recognizers = []recognizer{
	recognizeDirectJSON,
	recognizeFencedJSON,
}

// ExtractJSON recovers a JSON payload from raw model text: the whole text as
// JSON, or the interior of a ```json fenced block. No semantic checks happen
// here; anything syntactically unrecoverable fails with ErrUnparsableResponse.
func ExtractJSON(raw string) (string, error) {
	for _, recognize := range recognizers {
		if candidate, ok := recognize(raw); ok {
			return candidate, nil
		}
	}
	return "", insightErrors.ErrUnparsableResponse
}
