package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type rec struct {
	ID  string
	V   string
	Upd time.Time
}

func newJ() *Journal[rec] {
	return New(func(r rec) string { return r.ID }, func(r rec) time.Time { return r.Upd })
}

func keys(list []rec) []string {
	out := []string{}
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

func TestFinish_NoMutations(t *testing.T) {
	j := newJ()
	tk := j.Begin()
	assert.True(t, j.Loading())

	got, ok := j.Finish(tk, []rec{{ID: "a"}, {ID: "b"}})
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, keys(got))
	assert.False(t, j.Loading())
}

/*
TestFinish_DeleteDuringFlight keeps a record deleted while the load was
running out of the merged result even though the stale fetch carries it.
*/
func TestFinish_DeleteDuringFlight(t *testing.T) {
	j := newJ()
	tk := j.Begin()
	j.Deleted("b")

	got, ok := j.Finish(tk, []rec{{ID: "a"}, {ID: "b"}})
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, keys(got))
}

func TestFinish_CreateDuringFlight(t *testing.T) {
	t.Run("missing_from_fetch", func(t *testing.T) {
		j := newJ()
		tk := j.Begin()
		j.Created(rec{ID: "n1"})
		j.Created(rec{ID: "n2"})

		got, _ := j.Finish(tk, []rec{{ID: "a"}})
		assert.Equal(t, []string{"n2", "n1", "a"}, keys(got))
	})

	t.Run("already_in_fetch", func(t *testing.T) {
		j := newJ()
		tk := j.Begin()
		j.Created(rec{ID: "n1"})

		got, _ := j.Finish(tk, []rec{{ID: "n1"}, {ID: "a"}})
		assert.Equal(t, []string{"n1", "a"}, keys(got))
	})

	t.Run("created_then_deleted", func(t *testing.T) {
		j := newJ()
		tk := j.Begin()
		j.Created(rec{ID: "n1"})
		j.Deleted("n1")

		got, _ := j.Finish(tk, []rec{{ID: "a"}})
		assert.Equal(t, []string{"a"}, keys(got))
	})
}

func TestFinish_UpdateKeepsNewer(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	j := newJ()
	tk := j.Begin()
	j.Updated(rec{ID: "a", V: "journal", Upd: t0.Add(time.Minute)})
	j.Updated(rec{ID: "b", V: "journal", Upd: t0})

	got, _ := j.Finish(tk, []rec{
		{ID: "a", V: "fetched", Upd: t0},
		{ID: "b", V: "fetched", Upd: t0.Add(time.Hour)},
	})
	assert.Equal(t, "journal", got[0].V)
	assert.Equal(t, "fetched", got[1].V)
}

func TestFinish_OnlyMutationsAfterBegin(t *testing.T) {
	j := newJ()
	first := j.Begin()
	j.Deleted("a")
	second := j.Begin()

	got, ok := j.Finish(second, []rec{{ID: "b"}})
	assert.True(t, ok)
	assert.Equal(t, []string{"b"}, keys(got))

	_, ok = j.Finish(first, []rec{{ID: "a"}, {ID: "b"}})
	assert.False(t, ok, "older load finishing after a newer one is discarded")
	assert.False(t, j.Loading())
}

func TestMutationsWithoutLoadAreNotKept(t *testing.T) {
	j := newJ()
	j.Deleted("a")
	tk := j.Begin()

	got, _ := j.Finish(tk, []rec{{ID: "a"}})
	assert.Equal(t, []string{"a"}, keys(got))
}

func TestFail_StaleFailureIgnored(t *testing.T) {
	j := newJ()
	old := j.Begin()
	fresh := j.Begin()
	_, ok := j.Finish(fresh, nil)
	assert.True(t, ok)

	assert.False(t, j.Fail(old))

	tk := j.Begin()
	assert.True(t, j.Fail(tk))
}

func TestNoStampUpdateWins(t *testing.T) {
	j := New(func(r rec) string { return r.ID }, nil)
	tk := j.Begin()
	j.Updated(rec{ID: "a", V: "approved"})

	got, _ := j.Finish(tk, []rec{{ID: "a", V: "pending"}})
	assert.Equal(t, "approved", got[0].V)
}
