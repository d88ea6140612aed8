package classify

import (
	"strings"
	"time"

	"github.com/EducAI25/intellidash-insights-ai/domain/dataset"
)

// Keyword vocabularies used by the heuristic rules. Exported so the
// Portuguese/English business vocabulary can be extended or localized
// without touching the rule flow.
var (
	IdentifierKeywords = []string{"id", "codigo", "code"}
	CurrencyKeywords   = []string{"valor", "preço", "price", "cost", "custo", "venda", "receita"}
	PercentKeywords    = []string{"percent", "pct"}
	BooleanLiterals    = []string{"true", "false", "sim", "não", "yes", "no", "1", "0"}
)

// dateLayouts are the calendar formats a cell may use.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"02-Jan-2006",
}

// columnFacts are the per-column signals the rules decide on. They are
// gathered in a single pass over the non-empty values.
type columnFacts struct {
	nameLower    string
	nonEmpty     int
	numericRatio float64
	dateRatio    float64
	allBoolean   bool
	hasPercent   bool
}

// rule pairs a predicate with its outcome. Rules are evaluated in order
// and the first match wins.
type rule struct {
	matches func(columnFacts) bool
	outcome func(columnFacts) (dataset.ColumnType, float64)
}

// Classifier infers a column's semantic type from its name and values.
type Classifier struct {
	rules []rule
}

// New creates a classifier with the default rule table.
func New() *Classifier {
	return &Classifier{rules: defaultRules()}
}

func defaultRules() []rule {
	return []rule{
		{
			// Every non-empty value is a recognized boolean literal.
			matches: func(f columnFacts) bool { return f.allBoolean },
			outcome: func(columnFacts) (dataset.ColumnType, float64) {
				return dataset.TypeBoolean, 0.9
			},
		},
		{
			// More than half the values parse as calendar dates.
			matches: func(f columnFacts) bool { return f.dateRatio > 0.5 },
			outcome: func(columnFacts) (dataset.ColumnType, float64) {
				return dataset.TypeDate, 0.8
			},
		},
		{
			matches: func(f columnFacts) bool {
				return f.numericRatio > 0.8 && (f.hasPercent || containsAny(f.nameLower, PercentKeywords))
			},
			outcome: func(columnFacts) (dataset.ColumnType, float64) {
				return dataset.TypePercentage, 0.9
			},
		},
		{
			matches: func(f columnFacts) bool {
				return f.numericRatio > 0.8 && containsAny(f.nameLower, CurrencyKeywords)
			},
			outcome: func(columnFacts) (dataset.ColumnType, float64) {
				return dataset.TypeCurrency, 0.9
			},
		},
		{
			matches: func(f columnFacts) bool { return f.numericRatio > 0.8 },
			outcome: func(f columnFacts) (dataset.ColumnType, float64) {
				return dataset.TypeNumeric, f.numericRatio
			},
		},
	}
}

// Classify determines the semantic type and confidence for one column.
// Empty and null cells are excluded before analysis; a column with no
// non-empty values is text with confidence 0.
func (c *Classifier) Classify(name string, values []dataset.Value) dataset.ColumnProfile {
	profile := dataset.ColumnProfile{
		Name:         name,
		Type:         dataset.TypeText,
		IsIdentifier: containsAny(strings.ToLower(name), IdentifierKeywords),
	}

	facts := gatherFacts(name, values)
	if facts.nonEmpty == 0 {
		return profile
	}

	for _, r := range c.rules {
		if r.matches(facts) {
			profile.Type, profile.Confidence = r.outcome(facts)
			return profile
		}
	}

	// Fallback: text, more confident the less numeric the column looks.
	profile.Confidence = 1 - facts.numericRatio
	return profile
}

func gatherFacts(name string, values []dataset.Value) columnFacts {
	facts := columnFacts{
		nameLower:  strings.ToLower(name),
		allBoolean: true,
	}

	numericCount := 0
	dateCount := 0
	for _, v := range values {
		if v.IsEmpty() {
			continue
		}
		facts.nonEmpty++

		raw := v.String()
		if _, ok := v.Float(); ok {
			numericCount++
		}
		if strings.Contains(raw, "%") {
			facts.hasPercent = true
		}
		if parsesAsDate(raw) {
			dateCount++
		}
		if !isBooleanLiteral(raw) {
			facts.allBoolean = false
		}
	}

	if facts.nonEmpty == 0 {
		facts.allBoolean = false
		return facts
	}
	facts.numericRatio = float64(numericCount) / float64(facts.nonEmpty)
	facts.dateRatio = float64(dateCount) / float64(facts.nonEmpty)
	return facts
}

func isBooleanLiteral(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, lit := range BooleanLiterals {
		if lower == lit {
			return true
		}
	}
	return false
}

func parsesAsDate(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, trimmed); err == nil {
			return true
		}
	}
	return false
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
