package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hypertensionOnly() *Catalog {
	return &Catalog{Conditions: []Condition{
		{Name: "hypertension", Cues: map[Tier][]string{
			TierHigh:     {"stage 2"},
			TierModerate: {"elevated"},
			TierLow:      {"borderline"},
		}},
	}}
}

func TestScore_HighAndLowCuesAdd(t *testing.T) {
	report := Score("45-year-old male with hypertension, stage 2, borderline risk", hypertensionOnly())

	require.Len(t, report, 1)
	assert.Equal(t, Entry{Condition: "hypertension", Score: 4}, report[0])
}

func TestScore_CaseInsensitive(t *testing.T) {
	cat := DefaultCatalog()
	assert.Equal(t, Score("stage 2 hypertension", cat), Score("STAGE 2 HYPERTENSION", cat))
	assert.Equal(t, Score("Pt on Metformin, HbA1c >9", cat), Score("pt on metformin, hba1c >9", cat))
}

func TestScore_UpperCaseCues(t *testing.T) {
	cat := &Catalog{Conditions: []Condition{
		{Name: "obesity", Cues: map[Tier][]string{TierHigh: {"BMI >35"}}},
	}}
	score, ok := Score("bmi >35 noted", cat).Lookup("obesity")
	require.True(t, ok)
	assert.Equal(t, 3, score)
}

func TestScore_EmptyAndBlankNotes(t *testing.T) {
	cat := DefaultCatalog()
	for _, note := range []string{"", "   ", "\n\t"} {
		report := Score(note, cat)
		assert.NotNil(t, report)
		assert.True(t, report.Empty(), "note %q", note)
	}
}

func TestScore_NoCuesMatched(t *testing.T) {
	report := Score("Routine visit, no complaints. Vitals within normal limits.", DefaultCatalog())
	assert.True(t, report.Empty())
}

func TestScore_NilCatalog(t *testing.T) {
	assert.True(t, Score("stage 2", nil).Empty())
}

func TestScore_SharedCueCountsForEveryCondition(t *testing.T) {
	report := Score("severe persistent asthma", DefaultCatalog())

	assert.Equal(t, Report{
		{Condition: "hypertension", Score: 3},
		{Condition: "asthma", Score: 3},
	}, report)
}

func TestScore_SubstringInsideLargerWord(t *testing.T) {
	report := Score("Mildew exposure at home.", DefaultCatalog())

	score, ok := report.Lookup("asthma")
	require.True(t, ok)
	assert.Equal(t, 1, score)
}

func TestScore_EveryCueInTierContributes(t *testing.T) {
	report := Score("hypertensive crisis, severe headache, stage 2 readings", DefaultCatalog())

	score, ok := report.Lookup("hypertension")
	require.True(t, ok)
	assert.Equal(t, 9, score)
}

func TestScore_PreservesCatalogOrder(t *testing.T) {
	note := "BMI >35, on insulin, LDL >190, elevated BP, mild wheeze"
	report := Score(note, DefaultCatalog())

	var names []string
	for _, e := range report {
		names = append(names, e.Condition)
	}
	assert.Equal(t, []string{"hypertension", "diabetes", "hyperlipidemia", "asthma", "obesity"}, names)
}

func TestScore_OnlyPositiveScores(t *testing.T) {
	cat := DefaultCatalog()
	report := Score("type 2 diabetes on metformin", cat)

	for _, e := range report {
		assert.Greater(t, e.Score, 0)
	}
	_, ok := report.Lookup("hypertension")
	assert.False(t, ok)
	score, ok := report.Lookup("diabetes")
	require.True(t, ok)
	assert.Equal(t, 2, score)
}

func TestScore_Deterministic(t *testing.T) {
	cat := DefaultCatalog()
	note := "52-year-old female, prediabetes, BMI 30-35, borderline cholesterol"
	first := Score(note, cat)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Score(note, cat))
	}
}

func TestColorFor(t *testing.T) {
	cases := map[int]string{1: "green", 2: "orange", 3: "red", 4: "red", 9: "red"}
	for score, want := range cases {
		assert.Equal(t, want, ColorFor(score), "score %d", score)
		assert.Equal(t, want, Entry{Score: score}.Color())
	}
}
