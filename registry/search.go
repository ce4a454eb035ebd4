package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/tonnybx78/cz-name-checker/normalization"
)

// Searcher rozhraní nad vyhledáváním v rejstříku, umožňuje podvrhnout
// klienta v testech.
type Searcher interface {
	Search(ctx context.Context, term string, limit int) ([]Record, error)
}

// RobustSearch obejde doslovné podřetězcové vyhledávání rejstříku více
// variantami dotazu: plný název, název bez diakritiky, první slovo jádra
// a první dvě slova jádra. Shodné varianty (bez ohledu na velikost písmen)
// se nevolají dvakrát. Výsledky se průběžně deduplikují podle
// normalizovaného jádra názvu, první výskyt vyhrává.
//
// Selhání jednotlivého dotazu je měkké: zaznamená se varování a pokračuje
// se s tím, co už bylo nasbíráno. Zrušení kontextu zastaví další dotazy,
// dosavadní výsledky zůstávají platné.
func RobustSearch(ctx context.Context, s Searcher, candidate string, limit int) ([]Record, []string) {
	full := strings.TrimSpace(candidate)

	terms := []string{
		full,
		normalization.StripDiacritics(full),
	}
	core := normalization.CoreTokens(candidate)
	if len(core) >= 1 {
		terms = append(terms, core[0])
	}
	if len(core) >= 2 {
		terms = append(terms, strings.Join(core[:2], " "))
	}

	seen := make(map[string]struct{}, len(terms))
	seenCores := make(map[string]struct{})
	var records []Record
	var warnings []string

	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		key := strings.ToLower(term)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if ctx.Err() != nil {
			warnings = append(warnings, fmt.Sprintf("vyhledávání přerušeno, dotaz %q se nevykonal", term))
			continue
		}

		hits, err := s.Search(ctx, term, limit)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("dotaz na ARES %q selhal: %v", term, err))
			continue
		}

		for _, hit := range hits {
			coreKey := normalization.NormCore(hit.Name)
			if coreKey == "" {
				continue
			}
			if _, dup := seenCores[coreKey]; dup {
				continue
			}
			seenCores[coreKey] = struct{}{}
			records = append(records, hit)
		}
	}

	return records, warnings
}
