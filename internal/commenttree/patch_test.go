package commenttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

func sample() []models.Comment {
	return []models.Comment{
		comment(1, 1,
			comment(2, 2,
				comment(3, 3),
				comment(4, 1),
			),
			comment(5, 2),
		),
		comment(6, 3),
	}
}

func ids(roots []models.Comment) []int {
	var out []int
	var walk func([]models.Comment)
	walk = func(list []models.Comment) {
		for _, c := range list {
			out = append(out, c.ID)
			walk(c.Replies)
		}
	}
	walk(roots)
	return out
}

func TestApplyVoteAtDepth(t *testing.T) {
	roots := sample()
	total := 7

	got, ok := ApplyVote(roots, models.VoteResult{TargetID: 4, TotalVotes: &total})
	require.True(t, ok)
	c, _ := Find(got, 4)
	assert.Equal(t, 7, c.TotalVotes)

	// input untouched
	orig, _ := Find(roots, 4)
	assert.Equal(t, 0, orig.TotalVotes)

	got, ok = ApplyVote(got, models.VoteResult{TargetID: 5})
	require.True(t, ok)
	c, _ = Find(got, 5)
	assert.Equal(t, 1, c.TotalVotes)
}

func TestApplyFavoriteWithoutCountKeepsVotes(t *testing.T) {
	roots := sample()
	got, ok := ApplyFavorite(roots, models.VoteResult{TargetID: 3})
	require.True(t, ok)
	c, _ := Find(got, 3)
	assert.Equal(t, 0, c.TotalVotes)
}

func TestUnknownTargetLeavesTreeUnchanged(t *testing.T) {
	roots := sample()
	got, ok := ApplyVote(roots, models.VoteResult{TargetID: 42})
	assert.False(t, ok)
	assert.Equal(t, roots, got)

	got, ok = Remove(roots, 42)
	assert.False(t, ok)
	assert.Equal(t, roots, got)
}

func TestRemoveOnlyTakesSubtree(t *testing.T) {
	roots := sample()

	got, ok := Remove(roots, 2)
	require.True(t, ok)
	assert.Equal(t, []int{1, 5, 6}, ids(got))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(roots))

	got, ok = Remove(roots, 3)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 4, 5, 6}, ids(got))

	got, ok = Remove(roots, 6)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(got))
}

func TestAppendReplyAndTopLevel(t *testing.T) {
	roots := sample()

	got, ok := AppendReply(roots, 3, models.Comment{ID: 10, Content: "deep"})
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3, 10, 4, 5, 6}, ids(got))
	reply, _ := Find(got, 10)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, 3, *reply.ParentID)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(roots))

	got = AppendTopLevel(got, models.Comment{ID: 11, ParentID: intp(3)})
	assert.Equal(t, 11, got[len(got)-1].ID)
	assert.Nil(t, got[len(got)-1].ParentID)
}

func TestReplaceContentKeepsReplies(t *testing.T) {
	roots := sample()
	got, ok := ReplaceContent(roots, models.Comment{ID: 2, Content: "edited"})
	require.True(t, ok)

	c, _ := Find(got, 2)
	assert.Equal(t, "edited", c.Content)
	assert.Len(t, c.Replies, 2)

	orig, _ := Find(roots, 2)
	assert.Equal(t, "c", orig.Content)
}
