package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Skufu/CareNote/internal/llm"
	"github.com/Skufu/CareNote/internal/metrics"
	"github.com/Skufu/CareNote/internal/risk"
	"github.com/Skufu/CareNote/internal/sanitize"
)

type Language string

const (
	English Language = "en"
	Korean  Language = "ko"
)

var (
	ErrEmptyNote           = errors.New("doctor's note is required")
	ErrEmptyQuestion       = errors.New("question is required")
	ErrEmptyReport         = errors.New("report has no sections")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// ValidateNote rejects blank notes before any model call is made.
func ValidateNote(note string) error {
	if strings.TrimSpace(note) == "" {
		return ErrEmptyNote
	}
	return nil
}

func ValidateQuestion(note, question string) error {
	if err := ValidateNote(note); err != nil {
		return err
	}
	if strings.TrimSpace(question) == "" {
		return ErrEmptyQuestion
	}
	return nil
}

// ParseLanguage accepts "en"/"ko" and the display names used by the form.
// An empty value means English.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "en", "english":
		return English, nil
	case "ko", "kr", "korean", "한국어":
		return Korean, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

const (
	SectionExplanation = "explanation"
	SectionEducation   = "education"
	SectionRiskSummary = "risk_summary"
)

type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Document struct {
	ID          string      `json:"id"`
	Language    Language    `json:"language"`
	Note        string      `json:"note"`
	Sections    []Section   `json:"sections"`
	Risk        risk.Report `json:"risk"`
	GeneratedAt time.Time   `json:"generatedAt"`
}

func (d *Document) Section(key string) (Section, bool) {
	for _, s := range d.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// Validate checks a document handed back by a client before it is rendered.
func (d *Document) Validate() error {
	if _, ok := sectionTitles[d.Language]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, d.Language)
	}
	if err := ValidateNote(d.Note); err != nil {
		return err
	}
	if len(d.Sections) == 0 {
		return ErrEmptyReport
	}
	return nil
}

var sectionTitles = map[Language]map[string]string{
	English: {
		SectionExplanation: "Patient-Friendly Explanation",
		SectionEducation:   "Awareness & Education",
		SectionRiskSummary: "Patient Health Risk Summary",
	},
	Korean: {
		SectionExplanation: "환자 친화적 설명",
		SectionEducation:   "환자 교육 및 정보",
		SectionRiskSummary: "건강 상태 요약 & 체크 리스트",
	},
}

type Generator struct {
	client  llm.Client
	catalog *risk.Catalog
	log     zerolog.Logger
	now     func() time.Time
}

func NewGenerator(client llm.Client, catalog *risk.Catalog, logger zerolog.Logger) *Generator {
	return &Generator{
		client:  client,
		catalog: catalog,
		log:     logger,
		now:     time.Now,
	}
}

func (g *Generator) Catalog() *risk.Catalog {
	return g.catalog
}

// Generate runs the prompts one after another. Korean documents are produced
// by translating the English sections. Any failed call aborts the request and
// no partial document is returned.
func (g *Generator) Generate(ctx context.Context, note string, lang Language) (doc *Document, err error) {
	defer func() { metrics.ObserveReport(string(lang), err) }()

	if err := ValidateNote(note); err != nil {
		return nil, err
	}
	titles, ok := sectionTitles[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	steps := []struct {
		key    string
		prompt []llm.Message
	}{
		{SectionExplanation, explanationPrompt(note)},
		{SectionEducation, educationPrompt(note)},
		{SectionRiskSummary, riskSummaryPrompt(note)},
	}

	sections := make([]Section, 0, len(steps))
	for _, step := range steps {
		body, err := g.call(ctx, step.key, step.prompt)
		if err != nil {
			return nil, err
		}
		if lang == Korean {
			body, err = g.call(ctx, step.key+"_ko", translatePrompt(body))
			if err != nil {
				return nil, err
			}
		}
		sections = append(sections, Section{Key: step.key, Title: titles[step.key], Body: body})
	}

	report := risk.Score(note, g.catalog)
	for _, e := range report {
		metrics.ConditionsDetected.WithLabelValues(e.Condition).Inc()
	}

	doc = &Document{
		ID:          uuid.NewString(),
		Language:    lang,
		Note:        note,
		Sections:    sections,
		Risk:        report,
		GeneratedAt: g.now().UTC(),
	}
	g.log.Info().
		Str("report_id", doc.ID).
		Str("language", string(lang)).
		Int("conditions", len(report)).
		Msg("report generated")
	return doc, nil
}

// Ask answers a follow-up question about the note.
func (g *Generator) Ask(ctx context.Context, note, question string) (string, error) {
	if err := ValidateQuestion(note, question); err != nil {
		return "", err
	}
	return g.call(ctx, "question", questionPrompt(note, question))
}

func (g *Generator) call(ctx context.Context, prompt string, messages []llm.Message) (string, error) {
	start := time.Now()
	out, err := g.client.Chat(ctx, messages)
	metrics.ObserveModelCall(prompt, start, err)
	if err != nil {
		g.log.Error().Err(err).Str("prompt", prompt).Msg("model call failed")
		return "", fmt.Errorf("generate %s: %w", prompt, err)
	}
	g.log.Debug().Str("prompt", prompt).Dur("latency", time.Since(start)).Msg("model call done")
	return sanitize.Text(out), nil
}
