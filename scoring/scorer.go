// Package scoring počítá konzervativní podobnost kandidátního názvu vůči
// korpusu záznamů z rejstříku.
package scoring

import (
	"github.com/tonnybx78/cz-name-checker/normalization"
	"github.com/tonnybx78/cz-name-checker/registry"
)

// Verdict výsledek porovnání kandidáta s korpusem: nejvyšší dosažené skóre
// v rozsahu 0..100 a název, který ho dosáhl.
type Verdict struct {
	Score       float64 `json:"score"`
	MatchedName string  `json:"matched_name,omitempty"`
}

// MaxSimilarity vrátí maximum přes čtyři doplňkové metriky (token-set,
// token-sort, částečný poměr a QRatio), každou vyhodnocenou proti celému
// korpusu. Bere se nejpodezřelejší čtení: pokud kteroukoli metrikou
// vypadají názvy podobně, považují se za podobné. Prázdný korpus dává
// skóre 0 bez shody.
func MaxSimilarity(candidate string, corpus []registry.Record) Verdict {
	if len(corpus) == 0 {
		return Verdict{}
	}

	rs := normalization.NewRatioScorer()
	metrics := []func(string, string) float64{
		rs.TokenSetRatio,
		rs.TokenSortRatio,
		rs.PartialRatio,
		rs.QRatio,
	}

	var verdict Verdict
	for _, metric := range metrics {
		for _, rec := range corpus {
			score := metric(candidate, rec.Name)
			if score > verdict.Score {
				verdict.Score = score
				verdict.MatchedName = rec.Name
			}
		}
	}
	return verdict
}
