package normalization

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// legalSuffixes právní přípony obchodních firem, které se z názvu odstraňují.
// Seřazeno od nejdelších, aby interpunkční varianty byly spotřebovány dříve
// než jejich zkrácené tvary.
var legalSuffixes = []string{
	"spol. s r.o.",
	"spol s r o",
	"v.o.s.",
	"s.r.o.",
	"a.s.",
	"k.s.",
	"vos",
	"sro",
	"as",
	"ks",
}

// genericWords generická výplňová slova (geografická a korporátní), která
// nenesou rozlišovací schopnost a z jádra názvu se vypouštějí.
var genericWords = map[string]struct{}{
	"cz": {}, "czech": {}, "praha": {}, "brno": {}, "plzen": {}, "ostrava": {},
	"group": {}, "holding": {}, "solutions": {}, "consulting": {},
	"system": {}, "systems": {}, "technology": {}, "technologies": {},
	"services": {}, "service": {}, "studio": {}, "company": {}, "co": {},
	"global": {}, "international": {}, "advisory": {}, "adviser": {},
	"advisers": {}, "media": {}, "marketing": {}, "agency": {}, "digital": {},
}

// stripMarks odstraňuje diakritická znaménka: NFD dekompozice a vypuštění
// znaků kategorie Mn (nonspacing mark).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics vrátí řetězec bez diakritiky ("Kavárna" -> "Kavarna").
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// IsGenericWord hlásí, zda je token generickým výplňovým slovem.
func IsGenericWord(token string) bool {
	_, ok := genericWords[strings.ToLower(token)]
	return ok
}

// NormCore převede název firmy na porovnatelné normalizované jádro:
// malá písmena, bez diakritiky, bez právních přípon, bez interpunkce,
// bez generických slov, jednoduché mezery. Dva názvy označují tutéž
// entitu právě tehdy, když mají stejné jádro.
//
// Funkce je totální a idempotentní: transformace se opakuje, dokud se
// výstup nemění. Odstraňování přípon je podřetězcové, jediný průchod by
// proto idempotenci nezaručil ("spol, s r: o" potřebuje dva).
func NormCore(name string) string {
	s := name
	for {
		next := normalizeOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

// normalizeOnce provede jeden průchod normalizačním řetězcem.
func normalizeOnce(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ToLower(strings.TrimSpace(name))
	s = StripDiacritics(s)

	for _, suf := range legalSuffixes {
		s = strings.ReplaceAll(s, suf, " ")
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isCoreRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	parts := strings.Fields(b.String())
	kept := parts[:0]
	for _, p := range parts {
		if _, generic := genericWords[p]; !generic {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// isCoreRune ponechává pouze ASCII alfanumerické znaky; všechno ostatní
// se v jádře nahrazuje mezerou.
func isCoreRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// CoreTokens vrátí tokeny normalizovaného jádra názvu.
func CoreTokens(name string) []string {
	return strings.Fields(NormCore(name))
}
