package checker

import (
	"fmt"

	"github.com/tonnybx78/cz-name-checker/normalization"
	"github.com/tonnybx78/cz-name-checker/registry"
	"github.com/tonnybx78/cz-name-checker/scoring"
)

// Label klasifikace kandidátního názvu podle rizika záměny.
type Label string

const (
	// LabelExactMatch normalizované jádro kandidáta se přesně shoduje
	// s jádrem registrovaného názvu.
	LabelExactMatch Label = "EXACT_MATCH"
	// LabelLikelyConfusable skóre podobnosti dosáhlo horního prahu.
	LabelLikelyConfusable Label = "LIKELY_CONFUSABLE"
	// LabelCautionSimilar skóre podobnosti dosáhlo středního prahu.
	LabelCautionSimilar Label = "CAUTION_SIMILAR"
	// LabelFree bez blízkých shod v rejstříku.
	LabelFree Label = "FREE"
)

// Severity vrátí závažnost štítku; vyšší číslo znamená vážnější kolizi.
func (l Label) Severity() int {
	switch l {
	case LabelExactMatch:
		return 3
	case LabelLikelyConfusable:
		return 2
	case LabelCautionSimilar:
		return 1
	default:
		return 0
	}
}

// Thresholds prahy podobnosti pro klasifikaci, oba v rozsahu 0..100.
type Thresholds struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
}

// DefaultThresholds vrátí doporučené prahy.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 85, Medium: 70}
}

// Validate ověří, že prahy leží v rozsahu 0..100 a střední práh
// nepřevyšuje horní.
func (t Thresholds) Validate() error {
	if t.High < 0 || t.High > 100 {
		return fmt.Errorf("horní práh %.1f je mimo rozsah 0..100", t.High)
	}
	if t.Medium < 0 || t.Medium > 100 {
		return fmt.Errorf("střední práh %.1f je mimo rozsah 0..100", t.Medium)
	}
	if t.Medium > t.High {
		return fmt.Errorf("střední práh %.1f převyšuje horní práh %.1f", t.Medium, t.High)
	}
	return nil
}

// FindExactCoreMatch najde v korpusu první záznam, jehož normalizované
// jádro se přesně shoduje s jádrem kandidáta. Prázdné jádro se nikdy
// nepovažuje za shodu.
func FindExactCoreMatch(candidate string, corpus []registry.Record) *registry.Record {
	core := normalization.NormCore(candidate)
	if core == "" {
		return nil
	}
	for i := range corpus {
		if normalization.NormCore(corpus[i].Name) == core {
			return &corpus[i]
		}
	}
	return nil
}

// Classify přiřadí kandidátu štítek. Přesná shoda jader má přednost před
// číselným skóre; jinak rozhodují prahy, první splněná podmínka vítězí.
func Classify(exactHit *registry.Record, verdict scoring.Verdict, th Thresholds) Label {
	switch {
	case exactHit != nil:
		return LabelExactMatch
	case verdict.Score >= th.High:
		return LabelLikelyConfusable
	case verdict.Score >= th.Medium:
		return LabelCautionSimilar
	default:
		return LabelFree
	}
}
