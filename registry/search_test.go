package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher zaznamenává dotazy a vrací předpřipravené odpovědi.
type fakeSearcher struct {
	calls   []string
	records map[string][]Record
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, term string, limit int) ([]Record, error) {
	f.calls = append(f.calls, term)
	if f.err != nil {
		return nil, f.err
	}
	return f.records[term], nil
}

func TestRobustSearchQueryVariants(t *testing.T) {
	fake := &fakeSearcher{}
	RobustSearch(context.Background(), fake, "Kavárna U Lípy", 10)

	// Plný název, bez diakritiky, první slovo jádra, první dvě slova jádra.
	assert.Equal(t, []string{
		"Kavárna U Lípy",
		"Kavarna U Lipy",
		"kavarna",
		"kavarna u",
	}, fake.calls)
}

func TestRobustSearchSkipsDuplicateTerms(t *testing.T) {
	fake := &fakeSearcher{}
	RobustSearch(context.Background(), fake, "zelvago", 10)

	// Název bez diakritiky je shodný s plným názvem a jádro má jediné
	// slovo rovné názvu, volá se tedy jen jednou.
	assert.Equal(t, []string{"zelvago"}, fake.calls)
}

func TestRobustSearchDeduplicatesByCore(t *testing.T) {
	fake := &fakeSearcher{
		records: map[string][]Record{
			"Zelvago Plus": {
				{Name: "Zelvago Plus s.r.o.", ICO: "111"},
			},
			// Diakritická i příponová varianta téhož jádra se sloučí.
			"zelvago": {
				{Name: "Zelvágo Plus", ICO: "222"},
				{Name: "Brixo", ICO: "333"},
			},
		},
	}

	records, warnings := RobustSearch(context.Background(), fake, "Zelvago Plus", 10)
	require.Empty(t, warnings)
	assert.Equal(t, []string{"Zelvago Plus", "zelvago"}, fake.calls)
	require.Len(t, records, 2)
	// První výskyt vyhrává.
	assert.Equal(t, "Zelvago Plus s.r.o.", records[0].Name)
	assert.Equal(t, "111", records[0].ICO)
	assert.Equal(t, "Brixo", records[1].Name)
}

func TestRobustSearchFailuresAreSoft(t *testing.T) {
	fake := &fakeSearcher{err: errors.New("ares nedostupný")}

	records, warnings := RobustSearch(context.Background(), fake, "Kavárna U Lípy", 10)
	assert.Empty(t, records)
	// Každý neúspěšný dotaz vyprodukuje varování.
	assert.Len(t, warnings, 4)
	for _, w := range warnings {
		assert.Contains(t, w, "selhal")
	}
}

func TestRobustSearchStopsOnCancelledContext(t *testing.T) {
	fake := &fakeSearcher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, warnings := RobustSearch(ctx, fake, "Kavárna U Lípy", 10)
	assert.Empty(t, records)
	assert.Empty(t, fake.calls, "po zrušení kontextu se nesmí volat rejstřík")
	assert.NotEmpty(t, warnings)
}

func TestRobustSearchDropsEmptyCoreRecords(t *testing.T) {
	fake := &fakeSearcher{
		records: map[string][]Record{
			"zelvago": {
				{Name: "Group Holding Praha"},
				{Name: "Zelvago"},
			},
		},
	}

	records, _ := RobustSearch(context.Background(), fake, "zelvago", 10)
	require.Len(t, records, 1)
	assert.Equal(t, "Zelvago", records[0].Name)
}
