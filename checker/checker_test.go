package checker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonnybx78/cz-name-checker/generator"
	"github.com/tonnybx78/cz-name-checker/registry"
)

// stubSearcher vrací stejný korpus pro každý dotaz.
type stubSearcher struct {
	mu      sync.Mutex
	records []registry.Record
	err     error
	calls   int
}

func (s *stubSearcher) Search(ctx context.Context, term string, limit int) ([]registry.Record, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

// stubGenerator vrací předpřipravené dávky názvů, po vyčerpání poslední.
type stubGenerator struct {
	batches [][]string
	err     error
	calls   int
}

func (g *stubGenerator) Generate(ctx context.Context, req generator.Request) ([]string, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	if len(g.batches) == 0 {
		return nil, nil
	}
	idx := g.calls - 1
	if idx >= len(g.batches) {
		idx = len(g.batches) - 1
	}
	return g.batches[idx], nil
}

func newTestChecker(t *testing.T, s registry.Searcher, gen generator.Generator) *Checker {
	t.Helper()
	chk, err := New(s, gen, DefaultOptions(), nil)
	require.NoError(t, err)
	return chk
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	_, err := New(&stubSearcher{}, nil, Options{
		Thresholds: Thresholds{High: 50, Medium: 80},
		FetchLimit: 60,
		Workers:    4,
	}, nil)
	assert.Error(t, err)

	_, err = New(&stubSearcher{}, nil, Options{
		Thresholds: DefaultThresholds(),
		FetchLimit: 0,
		Workers:    4,
	}, nil)
	assert.Error(t, err)

	_, err = New(nil, nil, DefaultOptions(), nil)
	assert.Error(t, err)
}

func TestCheckOneExactMatch(t *testing.T) {
	// Scénář: kandidát s právní příponou, rejstřík zná jádro přesně.
	chk := newTestChecker(t, &stubSearcher{
		records: []registry.Record{{Name: "Nova Technologies"}},
	}, nil)

	result := chk.CheckOne(context.Background(), "Nova Technologies s.r.o.")
	assert.Equal(t, LabelExactMatch, result.Label)
	assert.Equal(t, "Nova Technologies", result.MatchedName)
}

func TestCheckOneFreeName(t *testing.T) {
	// Scénář: nepodobná jména v korpusu, skóre pod středním prahem.
	chk := newTestChecker(t, &stubSearcher{
		records: []registry.Record{{Name: "Alfa Beta"}, {Name: "Gamma Delta"}},
	}, nil)

	result := chk.CheckOne(context.Background(), "Zephyra")
	assert.Equal(t, LabelFree, result.Label)
	assert.Less(t, result.Score, 70.0)
}

func TestCheckOneLikelyConfusable(t *testing.T) {
	// Scénář: kandidát je podřetězcem registrovaného názvu.
	chk := newTestChecker(t, &stubSearcher{
		records: []registry.Record{{Name: "Alpha Consulting Group"}},
	}, nil)

	result := chk.CheckOne(context.Background(), "Alpha Consult")
	assert.Equal(t, LabelLikelyConfusable, result.Label)
	assert.Equal(t, "Alpha Consulting Group", result.MatchedName)
	assert.GreaterOrEqual(t, result.Score, 85.0)
}

func TestCheckOneRegistryDownDegradesGracefully(t *testing.T) {
	chk := newTestChecker(t, &stubSearcher{err: errors.New("ares down")}, nil)

	result := chk.CheckOne(context.Background(), "Zelvago")
	assert.Equal(t, LabelFree, result.Label)
	assert.Zero(t, result.Score)
	assert.NotEmpty(t, result.Warnings, "selhání rejstříku musí být vidět ve varováních")
}

func TestCheckAllPreservesOrder(t *testing.T) {
	chk := newTestChecker(t, &stubSearcher{
		records: []registry.Record{{Name: "Nova Technologies"}},
	}, nil)

	names := []string{"Nova Technologies", "Zephyra", "Brixo"}
	results := chk.CheckAll(context.Background(), names)
	require.Len(t, results, len(names))
	for i, name := range names {
		assert.Equal(t, name, results[i].Candidate)
	}
	assert.Equal(t, LabelExactMatch, results[0].Label)
}

func TestCheckAllRegistryDownNeverFails(t *testing.T) {
	chk := newTestChecker(t, &stubSearcher{err: errors.New("ares down")}, nil)

	results := chk.CheckAll(context.Background(), []string{"Zelvago", "Brixo", "Kavexo"})
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, LabelFree, r.Label)
		assert.NotEmpty(t, r.Warnings)
	}
}

func TestGenerateWithoutGenerator(t *testing.T) {
	chk := newTestChecker(t, &stubSearcher{}, nil)
	_, err := chk.Generate(context.Background(), GenerateRequest{Keywords: "kavárna", Count: 5})
	assert.Error(t, err)
}

func TestGenerateRejectsInvalidRequest(t *testing.T) {
	chk := newTestChecker(t, &stubSearcher{}, &stubGenerator{})

	_, err := chk.Generate(context.Background(), GenerateRequest{Keywords: "", Count: 5})
	assert.Error(t, err)

	_, err = chk.Generate(context.Background(), GenerateRequest{Keywords: "kavárna", Count: 0})
	assert.Error(t, err)
}

func TestGenerateReportMode(t *testing.T) {
	gen := &stubGenerator{batches: [][]string{{"Zelvago", "Brixo", "Kavexo"}}}
	chk := newTestChecker(t, &stubSearcher{
		records: []registry.Record{{Name: "Zelvago"}},
	}, gen)

	outcome, err := chk.Generate(context.Background(), GenerateRequest{
		Keywords: "kavárna", Count: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Rounds)
	require.Len(t, outcome.Results, 3)
	// Report-all vrací i kolizní kandidáty.
	assert.Equal(t, LabelExactMatch, outcome.Results[0].Label)
}

func TestGenerateReportModeGeneratorFailureIsTerminal(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	chk := newTestChecker(t, &stubSearcher{}, gen)

	_, err := chk.Generate(context.Background(), GenerateRequest{Keywords: "kavárna", Count: 3})
	assert.Error(t, err)
}

func TestGenerateStrictModeKeepsOnlyFree(t *testing.T) {
	gen := &stubGenerator{batches: [][]string{{"Zelvago", "Brixo", "Kavexo"}}}
	chk := newTestChecker(t, &stubSearcher{
		records: []registry.Record{{Name: "Zelvago"}},
	}, gen)

	outcome, err := chk.Generate(context.Background(), GenerateRequest{
		Keywords: "kavárna", Count: 2, Strict: true,
	})
	require.NoError(t, err)
	assert.False(t, outcome.Exhausted)
	require.Len(t, outcome.Results, 2)
	for _, r := range outcome.Results {
		assert.Equal(t, LabelFree, r.Label)
		assert.NotEqual(t, "Zelvago", r.Candidate)
	}
}

// TestGenerateStrictModeTerminates rozpočet kol omezuje běh i když
// generátor vrací trvale kolizní názvy.
func TestGenerateStrictModeTerminates(t *testing.T) {
	gen := &stubGenerator{batches: [][]string{{"Zelvago"}}}
	chk := newTestChecker(t, &stubSearcher{
		records: []registry.Record{{Name: "Zelvago"}},
	}, gen)

	outcome, err := chk.Generate(context.Background(), GenerateRequest{
		Keywords: "kavárna", Count: 5, Strict: true,
	})
	require.NoError(t, err)
	assert.True(t, outcome.Exhausted)
	assert.Equal(t, maxStrictRounds, outcome.Rounds)
	assert.Equal(t, maxStrictRounds, gen.calls)
	assert.Empty(t, outcome.Results)
}

// TestGenerateStrictModeGeneratorFailureConsumesRound selhání generátoru
// spotřebuje kolo, ale běh nepřeruší.
func TestGenerateStrictModeGeneratorFailureConsumesRound(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model unavailable")}
	chk := newTestChecker(t, &stubSearcher{}, gen)

	outcome, err := chk.Generate(context.Background(), GenerateRequest{
		Keywords: "kavárna", Count: 2, Strict: true,
	})
	require.NoError(t, err)
	assert.True(t, outcome.Exhausted)
	assert.Equal(t, maxStrictRounds, outcome.Rounds)
	assert.Empty(t, outcome.Results)
}

func TestWithThresholds(t *testing.T) {
	chk := newTestChecker(t, &stubSearcher{}, nil)

	strict, err := chk.WithThresholds(Thresholds{High: 90, Medium: 40})
	require.NoError(t, err)
	assert.NotSame(t, chk, strict)

	_, err = chk.WithThresholds(Thresholds{High: 40, Medium: 90})
	assert.Error(t, err)
}
