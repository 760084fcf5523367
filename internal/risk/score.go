package risk

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Entry struct {
	Condition string `json:"condition"`
	Score     int    `json:"score"`
}

func (e Entry) Color() string {
	return ColorFor(e.Score)
}

// Report holds the conditions with a positive score, in catalog order.
type Report []Entry

func (r Report) Empty() bool {
	return len(r) == 0
}

func (r Report) Lookup(condition string) (int, bool) {
	for _, e := range r {
		if e.Condition == condition {
			return e.Score, true
		}
	}
	return 0, false
}

// ColorFor maps a score to the bar color used by the chart and the PDF.
func ColorFor(score int) string {
	switch {
	case score >= 3:
		return "red"
	case score == 2:
		return "orange"
	default:
		return "green"
	}
}

// Score sums tier weights for every cue found in the note. Matching is a plain
// case-insensitive substring search with no word boundaries, so a cue inside
// an unrelated word still counts ("mild" matches "mildew"). Known source of
// false positives; kept for compatibility with existing catalogs.
func Score(note string, catalog *Catalog) Report {
	report := Report{}
	if catalog == nil || strings.TrimSpace(note) == "" {
		return report
	}

	// cases.Caser is stateful; one per call keeps Score safe for concurrent use.
	lower := cases.Lower(language.Und)
	text := lower.String(note)

	for _, cond := range catalog.Conditions {
		score := 0
		for _, tier := range Tiers {
			for _, cue := range cond.Cues[tier] {
				if strings.Contains(text, lower.String(cue)) {
					score += tier.Weight()
				}
			}
		}
		if score > 0 {
			report = append(report, Entry{Condition: cond.Name, Score: score})
		}
	}
	return report
}
