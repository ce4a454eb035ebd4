package normalization

import (
	"sort"
	"strings"
	"unicode"
)

// RatioScorer poskytuje sadu metrik podobnosti řetězců na škále 0..100.
// Metriky se záměrně doplňují: poměr celých řetězců, částečný (podřetězcový)
// poměr a tokenové poměry nezávislé na pořadí slov.
type RatioScorer struct{}

// NewRatioScorer vytvoří nový scorer podobnosti.
func NewRatioScorer() *RatioScorer {
	return &RatioScorer{}
}

// Ratio vypočítá podobnost celých řetězců na základě indel vzdálenosti
// (vkládání a mazání, bez substitucí): 100 * (1 - d / (len1 + len2)).
func (rs *RatioScorer) Ratio(s1, s2 string) float64 {
	r1 := []rune(s1)
	r2 := []rune(s2)
	total := len(r1) + len(r2)
	if total == 0 {
		return 100.0
	}
	dist := indelDistance(r1, r2)
	return 100.0 * (1.0 - float64(dist)/float64(total))
}

// QRatio je Ratio aplikovaný na očištěné řetězce (malá písmena, pouze
// alfanumerické tokeny). Prázdný očištěný vstup dává 0.
func (rs *RatioScorer) QRatio(s1, s2 string) float64 {
	c1 := cleanString(s1)
	c2 := cleanString(s2)
	if c1 == "" || c2 == "" {
		return 0.0
	}
	return rs.Ratio(c1, c2)
}

// PartialRatio vypočítá nejlepší shodu kratšího řetězce proti všem oknům
// stejné délky v delším řetězci. Pokrývá případ, kdy je jeden název
// podřetězcem druhého.
func (rs *RatioScorer) PartialRatio(s1, s2 string) float64 {
	shorter := []rune(cleanString(s1))
	longer := []rune(cleanString(s2))
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100.0
		}
		return 0.0
	}

	best := 0.0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		window := longer[i : i+len(shorter)]
		score := rs.Ratio(string(shorter), string(window))
		if score > best {
			best = score
		}
		if best >= 100.0 {
			break
		}
	}
	return best
}

// TokenSortRatio porovná řetězce po abecedním seřazení tokenů, takže je
// nezávislý na pořadí slov.
func (rs *RatioScorer) TokenSortRatio(s1, s2 string) float64 {
	return rs.Ratio(sortedTokenString(s1), sortedTokenString(s2))
}

// TokenSetRatio porovná množiny tokenů: společný průnik proti průniku
// rozšířenému o zbytky obou stran. Ignoruje pořadí i duplicitní tokeny
// a je odolný vůči generickým slovům navíc.
func (rs *RatioScorer) TokenSetRatio(s1, s2 string) float64 {
	t1 := tokenSet(s1)
	t2 := tokenSet(s2)
	if len(t1) == 0 && len(t2) == 0 {
		return 100.0
	}
	if len(t1) == 0 || len(t2) == 0 {
		return 0.0
	}

	var inter, diff1, diff2 []string
	for tok := range t1 {
		if _, ok := t2[tok]; ok {
			inter = append(inter, tok)
		} else {
			diff1 = append(diff1, tok)
		}
	}
	for tok := range t2 {
		if _, ok := t1[tok]; !ok {
			diff2 = append(diff2, tok)
		}
	}
	sort.Strings(inter)
	sort.Strings(diff1)
	sort.Strings(diff2)

	base := strings.Join(inter, " ")
	combined1 := strings.TrimSpace(base + " " + strings.Join(diff1, " "))
	combined2 := strings.TrimSpace(base + " " + strings.Join(diff2, " "))

	best := rs.Ratio(base, combined1)
	if s := rs.Ratio(base, combined2); s > best {
		best = s
	}
	if s := rs.Ratio(combined1, combined2); s > best {
		best = s
	}
	return best
}

// cleanString převede řetězec na malá písmena a ponechá jen alfanumerické
// tokeny oddělené jednou mezerou.
func cleanString(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}

// sortedTokenString vrátí očištěné tokeny abecedně seřazené do řetězce.
func sortedTokenString(s string) string {
	fields := strings.Fields(cleanString(s))
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// tokenSet vrátí množinu očištěných tokenů.
func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(cleanString(s)) {
		set[tok] = struct{}{}
	}
	return set
}

// indelDistance vypočítá vzdálenost vkládání/mazání dvou řetězců,
// tedy len1 + len2 - 2*LCS.
func indelDistance(r1, r2 []rune) int {
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for i := 1; i <= len(r1); i++ {
		curr[0] = 0
		for j := 1; j <= len(r2); j++ {
			if r1[i-1] == r2[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	lcs := prev[len(r2)]
	return len(r1) + len(r2) - 2*lcs
}

// LevenshteinDistance vypočítá klasickou editační vzdálenost dvou řetězců.
func LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	for j := 0; j <= len(r2); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(r1); i++ {
		curr := make([]int, len(r2)+1)
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, minInt(curr[j-1]+1, prev[j-1]+cost))
		}
		prev = curr
	}
	return prev[len(r2)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
