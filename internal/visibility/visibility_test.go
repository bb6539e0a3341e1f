package visibility

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

func subs(ids ...int) []models.Submission {
	out := make([]models.Submission, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Submission{ID: id})
	}
	return out
}

func hidden(ids ...int) []models.HiddenRecord {
	out := make([]models.HiddenRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.HiddenRecord{UserID: 1, SubmissionID: id})
	}
	return out
}

func idsOf(list []models.Submission) []int {
	out := []int{}
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}

func TestVisibleScenario(t *testing.T) {
	all := []models.Submission{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	got := Visible(all, []models.HiddenRecord{{SubmissionID: 1}})
	assert.Equal(t, []models.Submission{{ID: 2, Title: "B"}}, got)
}

func TestVisibleIsSetDifferenceAndIdempotent(t *testing.T) {
	cases := []struct {
		all, hide, want []int
	}{
		{nil, nil, []int{}},
		{[]int{1, 2, 3}, nil, []int{1, 2, 3}},
		{[]int{1, 2, 3}, []int{2}, []int{1, 3}},
		{[]int{1, 2, 3}, []int{4, 5}, []int{1, 2, 3}},
		{[]int{1, 2, 3}, []int{1, 2, 3}, []int{}},
		{[]int{3, 1, 2}, []int{1, 1}, []int{3, 2}},
	}
	for _, tc := range cases {
		first := Visible(subs(tc.all...), hidden(tc.hide...))
		second := Visible(subs(tc.all...), hidden(tc.hide...))
		assert.Equal(t, tc.want, idsOf(first))
		assert.Equal(t, first, second)
	}
}

func TestHideUnhide(t *testing.T) {
	h := Hide(nil, models.HiddenRecord{SubmissionID: 1})
	h = Hide(h, models.HiddenRecord{SubmissionID: 1})
	require.Len(t, h, 1)

	h = Hide(h, models.HiddenRecord{SubmissionID: 2})
	assert.Len(t, Unhide(h, 1), 1)
	assert.Len(t, h, 2)
	assert.Len(t, Unhide(h, 9), 2)
}

func TestFilterTitle(t *testing.T) {
	all := []models.Submission{{ID: 1, Title: "Show HN: Go"}, {ID: 2, Title: "Ask HN: Rust?"}, {ID: 3, Title: "golang tips"}}
	assert.Equal(t, []int{1, 3}, idsOf(FilterTitle(all, "GO")))
	assert.Equal(t, []int{2}, idsOf(FilterTitle(all, "ask")))
	assert.Equal(t, all, FilterTitle(all, "  "))
	assert.Empty(t, FilterTitle(all, "python"))
}

func TestReconcilerEitherOrder(t *testing.T) {
	a := NewReconciler()
	a.SetSubmissions(subs(1, 2, 3))
	assert.Equal(t, []int{1, 2, 3}, idsOf(a.Visible()))
	a.SetHidden(hidden(2))

	b := NewReconciler()
	b.SetHidden(hidden(2))
	assert.Empty(t, b.Visible())
	b.SetSubmissions(subs(1, 2, 3))

	assert.Equal(t, a.Visible(), b.Visible())
	assert.Equal(t, []int{1, 3}, idsOf(a.Visible()))
}

func TestReconcilerHideRemovesExactlyOne(t *testing.T) {
	r := NewReconciler()
	r.SetSubmissions(subs(1, 2, 3))
	before := len(r.Visible())

	r.ApplyHide(models.HiddenRecord{UserID: 1, SubmissionID: 2})
	assert.Len(t, r.Visible(), before-1)
	assert.True(t, r.IsHidden(2))

	r.ApplyUnhide(2)
	assert.Len(t, r.Visible(), before)
}

func TestReconcilerUpdateSubmission(t *testing.T) {
	r := NewReconciler()
	r.SetSubmissions(subs(1, 2))
	ok := r.UpdateSubmission(2, func(s models.Submission) models.Submission {
		s.TotalVotes = 5
		return s
	})
	require.True(t, ok)
	assert.Equal(t, 5, r.Visible()[1].TotalVotes)
	assert.False(t, r.UpdateSubmission(9, func(s models.Submission) models.Submission { return s }))
}

func TestReconcilerConcurrentArrivals(t *testing.T) {
	r := NewReconciler()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); r.SetSubmissions(subs(1, 2, 3, 4)) }()
	go func() { defer wg.Done(); r.SetHidden(hidden(1, 4)) }()
	wg.Wait()

	assert.Equal(t, []int{2, 3}, idsOf(r.Visible()))
}
