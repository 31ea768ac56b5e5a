package application

import (
	"fmt"
	"math"
	"strings"

	insightErrors "github.com/finsight-dev/FinanceInsights/internal/insights/errors"
)

// Kind identifies one of the AI-backed insight types.
type Kind string

const (
	KindCategorization   Kind = "categorization"
	KindSpendingAnalysis Kind = "spending_analysis"
	KindBudgetPrediction Kind = "budget_prediction"
	KindHealthScore      Kind = "health_score"
	KindChat             Kind = "chat"
	KindRecommendations  Kind = "recommendations"
)

type fieldType int

const (
	stringField fieldType = iota
	numberField
	boolField
	stringArrayField
	objectArrayField
)

type field struct {
	name     string
	typ      fieldType
	enum     []string // allowed values, stringField only
	bounded  bool     // numberField constrained to [0,100]
	optional bool
	fields   []field // element fields, objectArrayField only
}

// responseSchema declares the JSON shape expected from the model for one
// insight kind. Both the prompt builder and the validator read it, so the
// requested shape and the accepted shape cannot drift apart.
type responseSchema struct {
	array  bool // true when the top level is a JSON array of objects
	fields []field
}

var insightFields = []field{
	{name: "type", typ: stringField},
	{name: "title", typ: stringField},
	{name: "description", typ: stringField},
	{name: "confidence", typ: numberField, bounded: true},
	{name: "actionable", typ: boolField},
	{name: "action", typ: stringField, optional: true},
}

var schemas = map[Kind]responseSchema{
	KindCategorization: {fields: []field{
		{name: "suggestedCategory", typ: stringField},
		{name: "confidence", typ: numberField, bounded: true},
		{name: "reasoning", typ: stringField},
	}},
	// topCategories is attached from the aggregator after the call, so the
	// model is not asked for it and the validator does not require it.
	KindSpendingAnalysis: {fields: []field{
		{name: "monthlyTrend", typ: stringField, enum: []string{"increasing", "decreasing", "stable"}},
		{name: "insights", typ: objectArrayField, fields: insightFields},
		{name: "recommendations", typ: stringArrayField},
	}},
	KindBudgetPrediction: {fields: []field{
		{name: "nextMonthPrediction", typ: numberField},
		{name: "categoryBreakdown", typ: objectArrayField, fields: []field{
			{name: "category", typ: stringField},
			{name: "predicted", typ: numberField},
		}},
		{name: "confidence", typ: numberField, bounded: true},
	}},
	KindHealthScore: {fields: []field{
		{name: "score", typ: numberField, bounded: true},
		{name: "factors", typ: objectArrayField, fields: []field{
			{name: "name", typ: stringField},
			{name: "impact", typ: stringField, enum: []string{"positive", "negative"}},
			{name: "description", typ: stringField},
		}},
		{name: "improvements", typ: stringArrayField},
	}},
	KindChat: {fields: []field{
		{name: "response", typ: stringField},
		{name: "suggestions", typ: stringArrayField},
		{name: "needsMoreInfo", typ: boolField},
	}},
	KindRecommendations: {array: true, fields: insightFields},
}

// shapeDescription renders the schema as the JSON skeleton embedded in the
// prompt, e.g. {"suggestedCategory": "string", "confidence": 0-100, ...}.
func (s responseSchema) shapeDescription() string {
	body := describeObject(s.fields)
	if s.array {
		return "[" + body + "]"
	}
	return body
}

func describeObject(fields []field) string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q: %s", f.name, describeField(f))
	}
	sb.WriteString("}")
	return sb.String()
}

func describeField(f field) string {
	switch f.typ {
	case stringField:
		if len(f.enum) > 0 {
			quoted := make([]string, len(f.enum))
			for i, v := range f.enum {
				quoted[i] = fmt.Sprintf("%q", v)
			}
			return strings.Join(quoted, " | ")
		}
		return `"string"`
	case numberField:
		if f.bounded {
			return "0-100"
		}
		return "number"
	case boolField:
		return "true | false"
	case stringArrayField:
		return `["string"]`
	case objectArrayField:
		return "[" + describeObject(f.fields) + "]"
	}
	return `"string"`
}

// validateSchema checks a decoded JSON value against the declared shape for
// the kind: required fields present, primitive kinds right, enums respected.
// It does not judge the content of the model's claims.
func validateSchema(value interface{}, kind Kind) error {
	schema, ok := schemas[kind]
	if !ok {
		return insightErrors.NewSchemaMismatchError("no schema declared for kind %q", kind)
	}
	if schema.array {
		items, ok := value.([]interface{})
		if !ok {
			return insightErrors.NewSchemaMismatchError("%s: expected a JSON array", kind)
		}
		for i, item := range items {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return insightErrors.NewSchemaMismatchError("%s: element %d is not an object", kind, i)
			}
			if err := validateObject(obj, schema.fields, fmt.Sprintf("%s[%d]", kind, i)); err != nil {
				return err
			}
		}
		return nil
	}
	obj, ok := value.(map[string]interface{})
	if !ok {
		return insightErrors.NewSchemaMismatchError("%s: expected a JSON object", kind)
	}
	return validateObject(obj, schema.fields, string(kind))
}

func validateObject(obj map[string]interface{}, fields []field, path string) error {
	for _, f := range fields {
		value, present := obj[f.name]
		if !present {
			if f.optional {
				continue
			}
			return insightErrors.NewSchemaMismatchError("%s: missing required field %q", path, f.name)
		}
		if err := validateField(value, f, path+"."+f.name); err != nil {
			return err
		}
	}
	return nil
}

func validateField(value interface{}, f field, path string) error {
	switch f.typ {
	case stringField:
		s, ok := value.(string)
		if !ok {
			return insightErrors.NewSchemaMismatchError("%s: expected a string", path)
		}
		if len(f.enum) > 0 && !contains(f.enum, s) {
			return insightErrors.NewSchemaMismatchError("%s: %q is not one of %v", path, s, f.enum)
		}
	case numberField:
		n, ok := value.(float64)
		if !ok {
			return insightErrors.NewSchemaMismatchError("%s: expected a number", path)
		}
		if f.bounded {
			if n < 0 || n > 100 {
				return insightErrors.NewSchemaMismatchError("%s: %v is outside [0, 100]", path, n)
			}
			// Bounded fields decode into int confidence/score fields, so a
			// fractional value must fail here, not in the typed decode.
			if n != math.Trunc(n) {
				return insightErrors.NewSchemaMismatchError("%s: %v is not an integer", path, n)
			}
		}
	case boolField:
		if _, ok := value.(bool); !ok {
			return insightErrors.NewSchemaMismatchError("%s: expected a boolean", path)
		}
	case stringArrayField:
		items, ok := value.([]interface{})
		if !ok {
			return insightErrors.NewSchemaMismatchError("%s: expected an array of strings", path)
		}
		for i, item := range items {
			if _, ok := item.(string); !ok {
				return insightErrors.NewSchemaMismatchError("%s[%d]: expected a string", path, i)
			}
		}
	case objectArrayField:
		items, ok := value.([]interface{})
		if !ok {
			return insightErrors.NewSchemaMismatchError("%s: expected an array of objects", path)
		}
		for i, item := range items {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return insightErrors.NewSchemaMismatchError("%s[%d]: expected an object", path, i)
			}
			if err := validateObject(obj, f.fields, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
