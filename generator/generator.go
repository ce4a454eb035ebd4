// Package generator poskytuje externí schopnost generování kandidátních
// názvů firem. Výstup schopnosti je nedůvěryhodný: může vrátit méně názvů,
// duplicity i generická slova, proto pipeline výstup vždy sanitizuje.
package generator

import (
	"context"
	"strings"

	"github.com/tonnybx78/cz-name-checker/normalization"
)

// maxCandidateLen maximální délka kandidátního názvu ve znacích.
const maxCandidateLen = 70

// Rozsah délky normalizovaného jádra použitelného kandidáta.
const (
	minCoreLen = 4
	maxCoreLen = 14
)

// Request zadání pro generátor názvů.
type Request struct {
	// Keywords obor nebo klíčová slova (např. "právní služby", "kavárna").
	Keywords string
	// Style volitelný stylový pokyn.
	Style string
	// Count požadovaný počet názvů; generátor jich smí vrátit méně.
	Count int
}

// Generator schopnost vygenerovat krátké kandidátní názvy k zadanému
// tématu a stylu.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]string, error)
}

// Sanitize pročistí syrový výstup generátoru: ořízne odrážky a mezery,
// vyřadí kandidáty s prázdným jádrem, s generickým slovem nebo s jádrem
// mimo rozsah 4..14 znaků, zkrátí na 70 znaků a deduplikuje podle
// normalizovaného jádra. Vrací nejvýše count názvů.
func Sanitize(names []string, count int) []string {
	seen := make(map[string]struct{}, len(names))
	clean := make([]string, 0, len(names))

	for _, name := range names {
		name = trimListMarkers(name)
		if name == "" {
			continue
		}
		if len([]rune(name)) > maxCandidateLen {
			name = string([]rune(name)[:maxCandidateLen])
		}

		core := normalization.NormCore(name)
		if core == "" {
			continue
		}
		if n := len(core); n < minCoreLen || n > maxCoreLen {
			continue
		}
		if containsGenericWord(name) {
			continue
		}

		if _, dup := seen[core]; dup {
			continue
		}
		seen[core] = struct{}{}
		clean = append(clean, name)

		if count > 0 && len(clean) >= count {
			break
		}
	}
	return clean
}

// trimListMarkers odstraní odrážky a číslování, kterými modely uvozují
// položky seznamu ("- Zelvago", "• Kavexo", "3. Brixo").
func trimListMarkers(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimLeft(name, "-•* \t")
	name = strings.TrimLeft(name, "0123456789")
	name = strings.TrimLeft(name, ".) \t")
	name = strings.TrimRight(name, "-• \t")
	return strings.TrimSpace(name)
}

// containsGenericWord hlásí, zda kandidát obsahuje generické výplňové
// slovo jako samostatný token (ještě před jeho odfiltrováním z jádra).
func containsGenericWord(name string) bool {
	cleaned := strings.ToLower(normalization.StripDiacritics(name))
	for _, tok := range strings.FieldsFunc(cleaned, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if normalization.IsGenericWord(tok) {
			return true
		}
	}
	return false
}
