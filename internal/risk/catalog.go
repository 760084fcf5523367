package risk

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
)

// Tiers lists the severity tiers in scan order.
var Tiers = []Tier{TierHigh, TierModerate, TierLow}

var tierWeight = map[Tier]int{
	TierLow:      1,
	TierModerate: 2,
	TierHigh:     3,
}

// Weight returns the score contribution of a matched cue in this tier.
func (t Tier) Weight() int {
	return tierWeight[t]
}

func (t Tier) Valid() bool {
	_, ok := tierWeight[t]
	return ok
}

type Condition struct {
	Name string            `yaml:"name" json:"name"`
	Cues map[Tier][]string `yaml:"cues" json:"cues"`
}

// Catalog is the ordered list of conditions the scorer checks. It is read-only
// once loaded.
type Catalog struct {
	Conditions []Condition `yaml:"conditions" json:"conditions"`
}

var ErrEmptyCatalog = errors.New("catalog has no conditions")

// Validate rejects catalogs that would make scoring ambiguous: duplicate or
// blank condition names, unknown tiers, and blank cues (a blank cue matches
// every note).
func (c *Catalog) Validate() error {
	if c == nil || len(c.Conditions) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(c.Conditions))
	for i, cond := range c.Conditions {
		name := strings.TrimSpace(cond.Name)
		if name == "" {
			return fmt.Errorf("condition %d: name is required", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("condition %q: duplicate name", name)
		}
		seen[key] = true

		total := 0
		for tier, cues := range cond.Cues {
			if !tier.Valid() {
				return fmt.Errorf("condition %q: unknown tier %q", name, tier)
			}
			for _, cue := range cues {
				if strings.TrimSpace(cue) == "" {
					return fmt.Errorf("condition %q: blank cue in tier %s", name, tier)
				}
			}
			total += len(cues)
		}
		// A condition without cues can never score.
		if total == 0 {
			return fmt.Errorf("condition %q: no cues", name)
		}
	}
	return nil
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Conditions))
	for _, cond := range c.Conditions {
		names = append(names, cond.Name)
	}
	return names
}

// LoadCatalog reads a YAML catalog file:
//
//	conditions:
//	  - name: hypertension
//	    cues:
//	      high: ["stage 2", "severe"]
//	      low: ["borderline"]
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &cat, nil
}

// DefaultCatalog returns a fresh copy of the built-in cue table.
func DefaultCatalog() *Catalog {
	return &Catalog{Conditions: []Condition{
		{Name: "hypertension", Cues: map[Tier][]string{
			TierHigh:     {"stage 2", "severe", "crisis"},
			TierModerate: {"elevated", "stage 1"},
			TierLow:      {"borderline"},
		}},
		{Name: "diabetes", Cues: map[Tier][]string{
			TierHigh:     {"hba1c >9", "insulin"},
			TierModerate: {"hba1c 7-9", "metformin"},
			TierLow:      {"prediabetes"},
		}},
		{Name: "hyperlipidemia", Cues: map[Tier][]string{
			TierHigh:     {"ldl >190"},
			TierModerate: {"ldl 130-189"},
			TierLow:      {"borderline cholesterol"},
		}},
		{Name: "asthma", Cues: map[Tier][]string{
			TierHigh:     {"status asthmaticus", "severe"},
			TierModerate: {"moderate"},
			TierLow:      {"mild"},
		}},
		{Name: "obesity", Cues: map[Tier][]string{
			TierHigh:     {"bmi >35"},
			TierModerate: {"bmi 30-35"},
			TierLow:      {"bmi 25-30"},
		}},
	}}
}
