// Package checker spojuje generování kandidátních názvů, vyhledávání
// v rejstříku, skórování podobnosti a klasifikaci do jedné pipeline.
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/tonnybx78/cz-name-checker/generator"
	"github.com/tonnybx78/cz-name-checker/normalization"
	"github.com/tonnybx78/cz-name-checker/registry"
	"github.com/tonnybx78/cz-name-checker/scoring"
)

// maxStrictRounds maximální počet generačních kol v přísném režimu,
// ať zbytečně netrápíme API.
const maxStrictRounds = 6

// Result klasifikovaný kandidát. Warnings nese měkká selhání rejstříku,
// která snižují důvěryhodnost výsledku, ale neshazují pipeline.
type Result struct {
	Candidate   string   `json:"candidate"`
	Label       Label    `json:"label"`
	MatchedName string   `json:"matched_name,omitempty"`
	Score       float64  `json:"score"`
	Warnings    []string `json:"warnings,omitempty"`
}

// Options konfigurace pipeline.
type Options struct {
	// Thresholds prahy klasifikace.
	Thresholds Thresholds
	// FetchLimit počet záznamů tahaných z rejstříku na jeden dotaz.
	FetchLimit int
	// Workers velikost fondu souběžných kontrol kandidátů. Kandidáti
	// nesdílejí žádný měnitelný stav, paralelizace je čistě výkonová.
	Workers int
}

// DefaultOptions vrátí výchozí konfiguraci pipeline.
func DefaultOptions() Options {
	return Options{
		Thresholds: DefaultThresholds(),
		FetchLimit: 60,
		Workers:    4,
	}
}

// Validate ověří konfiguraci pipeline před jejím spuštěním.
func (o Options) Validate() error {
	if err := o.Thresholds.Validate(); err != nil {
		return err
	}
	if o.FetchLimit <= 0 {
		return fmt.Errorf("limit záznamů z rejstříku musí být kladný, je %d", o.FetchLimit)
	}
	if o.Workers <= 0 {
		return fmt.Errorf("počet workerů musí být kladný, je %d", o.Workers)
	}
	return nil
}

// GenerateRequest požadavek na vygenerování a prověření názvů.
type GenerateRequest struct {
	Keywords string `json:"keywords"`
	Style    string `json:"style"`
	Count    int    `json:"count"`
	// Strict zapíná přísný režim: generuje se opakovaně a propouštějí se
	// jen kandidáti klasifikovaní jako FREE.
	Strict bool `json:"strict"`
}

// Validate ověří požadavek před spuštěním pipeline.
func (r GenerateRequest) Validate() error {
	if r.Keywords == "" {
		return fmt.Errorf("klíčová slova jsou povinná")
	}
	if r.Count <= 0 {
		return fmt.Errorf("požadovaný počet názvů musí být kladný, je %d", r.Count)
	}
	return nil
}

// Outcome výsledek generačního běhu. Exhausted hlásí, že přísný režim
// vyčerpal rozpočet kol, aniž dosáhl požadovaného počtu. Částečný nebo
// prázdný výsledek je platný výsledek, nikoli chyba.
type Outcome struct {
	Results   []Result `json:"results"`
	Rounds    int      `json:"rounds"`
	Exhausted bool     `json:"exhausted,omitempty"`
}

// Checker orchestruje pipeline kontroly názvů.
type Checker struct {
	searcher registry.Searcher
	gen      generator.Generator
	opts     Options
	logger   *slog.Logger
}

// New vytvoří novou pipeline. Generator smí být nil, pak je dostupná jen
// kontrola dodaných kandidátů (CheckAll), nikoli generování.
func New(searcher registry.Searcher, gen generator.Generator, opts Options, logger *slog.Logger) (*Checker, error) {
	if searcher == nil {
		return nil, fmt.Errorf("searcher je povinný")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("neplatná konfigurace pipeline: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		searcher: searcher,
		gen:      gen,
		opts:     opts,
		logger:   logger,
	}, nil
}

// HasGenerator hlásí, zda je pipeline schopná generovat názvy.
func (c *Checker) HasGenerator() bool {
	return c.gen != nil
}

// WithThresholds vrátí kopii pipeline s jinými prahy, např. podle
// parametrů jednotlivého požadavku.
func (c *Checker) WithThresholds(th Thresholds) (*Checker, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	clone := *c
	clone.opts.Thresholds = th
	return &clone, nil
}

// CheckOne prověří jednoho kandidáta proti rejstříku. Nikdy neselže:
// nedostupný rejstřík vede na prázdný korpus, varování a klasifikaci
// se sníženou důvěryhodností.
func (c *Checker) CheckOne(ctx context.Context, candidate string) Result {
	corpus, warnings := registry.RobustSearch(ctx, c.searcher, candidate, c.opts.FetchLimit)

	verdict := scoring.MaxSimilarity(candidate, corpus)
	exactHit := FindExactCoreMatch(candidate, corpus)
	label := Classify(exactHit, verdict, c.opts.Thresholds)

	matched := verdict.MatchedName
	if exactHit != nil {
		matched = exactHit.Name
	}

	return Result{
		Candidate:   candidate,
		Label:       label,
		MatchedName: matched,
		Score:       roundScore(verdict.Score),
		Warnings:    warnings,
	}
}

// CheckAll prověří dávku kandidátů. Kontroly běží v omezeném fondu
// workerů, pořadí vstupu je zachováno. Zrušení kontextu zastaví další
// dotazy na rejstřík, už spočítané výsledky zůstávají platné.
func (c *Checker) CheckAll(ctx context.Context, candidates []string) []Result {
	results := make([]Result, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			results[i] = c.CheckOne(gctx, candidate)
			return nil
		})
	}
	// Workery nevracejí chyby, měkká selhání nesou výsledky samy.
	_ = g.Wait()

	return results
}

// Generate vygeneruje kandidáty a prověří je proti rejstříku.
//
// V režimu report-all proběhne jedno generační kolo a vrátí se všichni
// kandidáti se štítky; selhání generátoru je pro tento běh fatální.
// V přísném režimu se generuje opakovaně (nejvýše maxStrictRounds kol)
// a ponechávají se jen kandidáti FREE; selhání generátoru spotřebuje
// kolo. Nedosažení požadovaného počtu hlásí Outcome.Exhausted.
func (c *Checker) Generate(ctx context.Context, req GenerateRequest) (Outcome, error) {
	if c.gen == nil {
		return Outcome{}, fmt.Errorf("generátor názvů není nakonfigurován")
	}
	if err := req.Validate(); err != nil {
		return Outcome{}, fmt.Errorf("neplatný požadavek: %w", err)
	}

	genReq := generator.Request{
		Keywords: req.Keywords,
		Style:    req.Style,
		Count:    req.Count,
	}

	if !req.Strict {
		raw, err := c.gen.Generate(ctx, genReq)
		if err != nil {
			return Outcome{}, fmt.Errorf("generování názvů selhalo: %w", err)
		}
		candidates := generator.Sanitize(raw, req.Count)
		if len(candidates) == 0 {
			return Outcome{}, fmt.Errorf("generátor nevrátil žádný použitelný název")
		}
		return Outcome{
			Results: c.CheckAll(ctx, candidates),
			Rounds:  1,
		}, nil
	}

	var outcome Outcome
	seenCores := make(map[string]struct{})
	for outcome.Rounds < maxStrictRounds && len(outcome.Results) < req.Count {
		if ctx.Err() != nil {
			break
		}
		outcome.Rounds++

		raw, err := c.gen.Generate(ctx, genReq)
		if err != nil {
			// Neúspěšné kolo se počítá do rozpočtu, běh pokračuje.
			c.logger.Warn("generační kolo selhalo",
				"round", outcome.Rounds, "error", err)
			continue
		}

		// Bez horní meze: celá dávka rozšiřuje výběr volných názvů.
		candidates := generator.Sanitize(raw, 0)
		for _, result := range c.CheckAll(ctx, candidates) {
			if result.Label != LabelFree {
				continue
			}
			core := normalization.NormCore(result.Candidate)
			if _, dup := seenCores[core]; dup {
				continue
			}
			seenCores[core] = struct{}{}
			outcome.Results = append(outcome.Results, result)
			if len(outcome.Results) >= req.Count {
				break
			}
		}
	}

	outcome.Exhausted = len(outcome.Results) < req.Count
	if outcome.Exhausted {
		c.logger.Info("přísný režim nedosáhl požadovaného počtu",
			"desired", req.Count,
			"found", len(outcome.Results),
			"rounds", outcome.Rounds,
		)
	}
	return outcome, nil
}

// roundScore zaokrouhlí skóre na jedno desetinné místo pro výstup.
func roundScore(score float64) float64 {
	return math.Round(score*10) / 10
}
