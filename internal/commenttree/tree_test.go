package commenttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/hackernews-client/internal/models"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

func intp(v int) *int { return &v }

func comment(id int, creator int, replies ...models.Comment) models.Comment {
	return models.Comment{
		ID:        id,
		Content:   "c",
		CreatedBy: models.Creator{ID: creator},
		Replies:   replies,
	}
}

// chain builds a single path of depth n starting at id 1.
func chain(n int) []models.Comment {
	var node *models.Comment
	for id := n; id >= 1; id-- {
		c := comment(id, 1)
		if node != nil {
			c.Replies = []models.Comment{*node}
		}
		node = &c
	}
	return []models.Comment{*node}
}

func TestBuildScenario(t *testing.T) {
	roots := []models.Comment{comment(5, 1, comment(6, 2))}

	nodes := Build(roots, session.Anonymous, Marks{})
	require.Len(t, nodes, 2)
	assert.Equal(t, 5, nodes[0].ID)
	assert.Equal(t, 0, nodes[0].Depth)
	assert.Nil(t, nodes[0].ParentID)
	assert.Equal(t, 1, nodes[0].ReplyCount)
	assert.Equal(t, 6, nodes[1].ID)
	assert.Equal(t, 1, nodes[1].Depth)
	require.NotNil(t, nodes[1].ParentID)
	assert.Equal(t, 5, *nodes[1].ParentID)
	assert.Empty(t, nodes[0].Replies)
}

func TestBuildDepthLevels(t *testing.T) {
	for _, n := range []int{1, 2, 7, 200} {
		nodes := Build(chain(n), session.Anonymous, Marks{})
		require.Len(t, nodes, n)
		assert.Equal(t, n, Depths(nodes))

		depthOf := map[int]int{}
		for _, node := range nodes {
			depthOf[node.ID] = node.Depth
			if node.ParentID != nil {
				assert.Equal(t, depthOf[*node.ParentID]+1, node.Depth)
			} else {
				assert.Equal(t, 0, node.Depth)
			}
		}
	}
}

func TestIsAuthor(t *testing.T) {
	viewer := session.Viewer{ID: 2, Token: "k"}

	assert.True(t, IsAuthor(viewer, models.Creator{ID: 2, Username: "kat"}))
	assert.False(t, IsAuthor(viewer, models.Creator{ID: 3}))
	assert.False(t, IsAuthor(viewer, models.Creator{Username: "kat"}))
	assert.False(t, IsAuthor(session.Anonymous, models.Creator{}))
	assert.False(t, IsAuthor(session.Viewer{ID: 2}, models.Creator{ID: 2}))
}

func TestActionsGating(t *testing.T) {
	viewer := session.Viewer{ID: 2, Token: "k"}
	roots := []models.Comment{comment(1, 2, comment(2, 3))}

	marks := NewMarks()
	marks.Voted[2] = true

	nodes := Build(roots, viewer, marks)
	assert.Equal(t, []Action{ActionReply, ActionEdit, ActionDelete}, nodes[0].Actions)
	assert.Equal(t, []Action{ActionReply, ActionFavorite}, nodes[1].Actions)
	assert.True(t, nodes[1].Voted)

	anon := Build(roots, session.Anonymous, marks)
	assert.Empty(t, anon[0].Actions)
}

func TestNestFlatAndMixed(t *testing.T) {
	flat := []models.Comment{
		{ID: 1, SubmissionID: 9},
		{ID: 2, ParentID: intp(1)},
		{ID: 3, ParentID: intp(2)},
		{ID: 4, SubmissionID: 9},
		{ID: 5, ParentID: intp(1)},
	}
	roots := Nest(flat)
	require.Len(t, roots, 2)
	assert.Equal(t, 1, roots[0].ID)
	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, 2, roots[0].Replies[0].ID)
	assert.Equal(t, 5, roots[0].Replies[1].ID)
	assert.Equal(t, 3, roots[0].Replies[0].Replies[0].ID)
	assert.Equal(t, 4, roots[1].ID)

	// a nested payload without parent refs keeps its shape
	nested := []models.Comment{comment(5, 1, comment(6, 2, comment(7, 3)))}
	again := Nest(nested)
	nodes := Build(again, session.Anonymous, Marks{})
	require.Len(t, nodes, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{nodes[0].Depth, nodes[1].Depth, nodes[2].Depth})
	require.NotNil(t, again[0].Replies[0].ParentID)
	assert.Equal(t, 5, *again[0].Replies[0].ParentID)
}

func TestNestDropsCyclesOrphansAndDuplicates(t *testing.T) {
	input := []models.Comment{
		{ID: 1},
		{ID: 10, ParentID: intp(11)},
		{ID: 11, ParentID: intp(10)},
		{ID: 12, ParentID: intp(99)},
		{ID: 13, ParentID: intp(13)},
		{ID: 1, Content: "duplicate"},
		{ID: 0},
	}
	roots := Nest(input)
	require.Len(t, roots, 1)
	assert.Equal(t, 1, roots[0].ID)
	assert.Empty(t, roots[0].Content)
	assert.Empty(t, roots[0].Replies)
}

func TestNestDoesNotMutateInput(t *testing.T) {
	input := []models.Comment{comment(1, 1, comment(2, 1))}
	_ = Nest(input)
	assert.Nil(t, input[0].ParentID)
	assert.Nil(t, input[0].Replies[0].ParentID)
}

func TestForSubmission(t *testing.T) {
	roots := []models.Comment{{ID: 1, SubmissionID: 3}, {ID: 2, SubmissionID: 4}, {ID: 3}}
	got := ForSubmission(roots, 3)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}
