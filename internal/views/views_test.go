package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycelian/casefiles/internal/model"
	"github.com/mycelian/casefiles/internal/store"
)

func rec(id, name, area string, st model.CaseStatus) model.CrimeRecord {
	return model.CrimeRecord{ID: id, CriminalName: name, CrimeSceneArea: area, Status: st}
}

func TestAggregate_Seed(t *testing.T) {
	st := Aggregate(store.Seed())
	assert.Equal(t, Stats{Active: 0, Closed: 1, ColdCase: 1, Total: 2}, st)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Aggregate(nil))
	assert.Equal(t, Stats{}, Aggregate([]model.CrimeRecord{}))
}

func TestAggregate_SumsToTotal(t *testing.T) {
	sets := [][]model.CrimeRecord{
		nil,
		store.Seed(),
		{rec("a", "", "", model.StatusActive)},
		{
			rec("a", "", "", model.StatusActive),
			rec("b", "", "", model.StatusActive),
			rec("c", "", "", model.StatusClosed),
			rec("d", "", "", model.StatusColdCase),
		},
	}
	for _, recs := range sets {
		st := Aggregate(recs)
		assert.Equal(t, len(recs), st.Total)
		assert.Equal(t, st.Total, st.Active+st.Closed+st.ColdCase)
	}
}

func TestAggregate_NoHiddenAccumulation(t *testing.T) {
	recs := store.Seed()
	assert.Equal(t, Aggregate(recs), Aggregate(recs))
}

func TestBreakdown_FixedOrder(t *testing.T) {
	bars := Breakdown(Stats{Active: 3, Closed: 1, ColdCase: 2, Total: 6})
	require.Len(t, bars, 3)
	assert.Equal(t, ChartBar{Label: "Closed", Count: 1, Color: "#10b981"}, bars[0])
	assert.Equal(t, ChartBar{Label: "Cold Case", Count: 2, Color: "#6366f1"}, bars[1])
	assert.Equal(t, ChartBar{Label: "Active", Count: 3, Color: "#f59e0b"}, bars[2])
}

func TestRecent(t *testing.T) {
	var recs []model.CrimeRecord
	for _, id := range []string{"g", "f", "e", "d", "c", "b", "a"} {
		recs = append(recs, rec(id, "", "", model.StatusActive))
	}
	got := Recent(recs, RecentLimit)
	require.Len(t, got, 5)
	assert.Equal(t, "g", got[0].ID)
	assert.Equal(t, "c", got[4].ID)

	assert.Len(t, Recent(recs[:2], 5), 2)
	assert.Empty(t, Recent(nil, 5))
	assert.Empty(t, Recent(recs, -1))
}

func TestBuildDashboard(t *testing.T) {
	d := BuildDashboard(store.Seed())
	assert.Equal(t, 2, d.Stats.Total)
	assert.Len(t, d.Chart, 3)
	assert.Len(t, d.Recent, 2)
}

func TestFilter_EmptyQueryReturnsAllInOrder(t *testing.T) {
	recs := store.Seed()
	assert.Equal(t, recs, Filter(recs, ""))
}

func TestFilter_Industrial(t *testing.T) {
	got := Filter(store.Seed(), "industrial")
	require.Len(t, got, 1)
	assert.Equal(t, "Eastside Industrial Park", got[0].CrimeSceneArea)
}

func TestFilter_MatchesEitherFieldCaseInsensitive(t *testing.T) {
	recs := []model.CrimeRecord{
		rec("1", "Victor Rossi", "Downtown", model.StatusClosed),
		rec("2", "Phantom", "Eastside Industrial Park", model.StatusColdCase),
		rec("3", "Rossi Jr", "Harbor", model.StatusActive),
		rec("4", "Nobody", "Nowhere", model.StatusActive),
	}
	got := Filter(recs, "ROSSI")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	got = Filter(recs, "harb")
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	assert.Empty(t, Filter(recs, "zzz"))
}

func TestFilter_DoesNotMatchOtherFields(t *testing.T) {
	r := rec("1", "A", "B", model.StatusActive)
	r.InvestigationProcess = "industrial espionage"
	r.Category = "industrial"
	assert.Empty(t, Filter([]model.CrimeRecord{r}, "industrial"))
}

func TestFilter_Idempotent(t *testing.T) {
	recs := append(store.Seed(), rec("3", "Dr. East", "West", model.StatusActive))
	for _, q := range []string{"", "east", "o", "Phantom", "nothing"} {
		once := Filter(recs, q)
		assert.Equal(t, once, Filter(once, q), "query %q", q)
	}
}
