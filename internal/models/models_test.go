package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatorNormalizesEveryShape(t *testing.T) {
	cases := map[string]Creator{
		`3`:                              {ID: 3},
		`"7"`:                            {ID: 7},
		`"kat"`:                          {Username: "kat"},
		`{"username":"jose"}`:            {Username: "jose"},
		`{"id":4,"username":"raul"}`:     {ID: 4, Username: "raul"},
		`{"id":"12","username":"other"}`: {ID: 12, Username: "other"},
		`null`:                           {},
	}

	for payload, want := range cases {
		t.Run(payload, func(t *testing.T) {
			var got Creator
			require.NoError(t, json.Unmarshal([]byte(payload), &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestCommentDecodesNestedReplies(t *testing.T) {
	payload := `{"id":5,"content":"root","created_by":{"id":1,"username":"jose"},
		"submission":9,"parent":null,"total_votes":2,
		"replies":[{"id":6,"content":"child","created_by":2,"parent":5,"replies":[]}]}`

	var c Comment
	require.NoError(t, json.Unmarshal([]byte(payload), &c))

	assert.Equal(t, 5, c.ID)
	assert.True(t, c.IsTopLevel())
	require.Len(t, c.Replies, 1)
	assert.Equal(t, 6, c.Replies[0].ID)
	assert.Equal(t, Creator{ID: 2}, c.Replies[0].CreatedBy)
	require.NotNil(t, c.Replies[0].ParentID)
	assert.Equal(t, 5, *c.Replies[0].ParentID)
}

func TestRowsUnwrapOptionalEnvelope(t *testing.T) {
	var comments []CommentRow
	require.NoError(t, json.Unmarshal([]byte(`[{"comment":{"id":1,"content":"a"}},{"id":2,"content":"b","submission":4}]`), &comments))
	got := CommentsFromRows(comments)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, 4, got[1].SubmissionID)

	var subs []SubmissionRow
	require.NoError(t, json.Unmarshal([]byte(`[{"submission":{"id":3,"title":"x"}},{"id":4,"title":"y"}]`), &subs))
	gotSubs := SubmissionsFromRows(subs)
	require.Len(t, gotSubs, 2)
	assert.Equal(t, "x", gotSubs[0].Title)
	assert.Equal(t, "y", gotSubs[1].Title)
}

func TestHiddenRecordShapes(t *testing.T) {
	var listed HiddenRecord
	require.NoError(t, json.Unmarshal([]byte(`{"user":3,"submission":{"id":8,"title":"hidden"}}`), &listed))
	assert.Equal(t, 3, listed.UserID)
	assert.Equal(t, 8, listed.SubmissionID)
	require.NotNil(t, listed.Submission)
	assert.Equal(t, "hidden", listed.Submission.Title)

	var flat HiddenRecord
	require.NoError(t, json.Unmarshal([]byte(`{"user_id":1,"submission_id":2}`), &flat))
	assert.Equal(t, HiddenRecord{UserID: 1, SubmissionID: 2}, flat)

	var bare HiddenRecord
	require.NoError(t, json.Unmarshal([]byte(`{"submission":11}`), &bare))
	assert.Equal(t, 11, bare.SubmissionID)
}

func TestVoteResult(t *testing.T) {
	var withTotal VoteResult
	require.NoError(t, json.Unmarshal([]byte(`{"comment":5,"total_votes":3}`), &withTotal))
	assert.Equal(t, 5, withTotal.TargetID)
	require.NotNil(t, withTotal.TotalVotes)
	assert.Equal(t, 3, *withTotal.TotalVotes)

	var bare VoteResult
	require.NoError(t, json.Unmarshal([]byte(`"ok"`), &bare))
	assert.Nil(t, bare.TotalVotes)
}

func TestVotedSubmissionRowShapes(t *testing.T) {
	var record VotedSubmissionRow
	require.NoError(t, json.Unmarshal([]byte(`{"id":9,"submission":5,"user":1}`), &record))
	assert.Equal(t, VotedSubmissionRow{SubmissionID: 5}, record)

	var inline VotedSubmissionRow
	require.NoError(t, json.Unmarshal([]byte(`{"id":9,"submission":{"id":5,"title":"inline"}}`), &inline))
	assert.Equal(t, 5, inline.SubmissionID)
	require.NotNil(t, inline.Submission)
	assert.Equal(t, "inline", inline.Submission.Title)

	var plain VotedSubmissionRow
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"title":"plain"}`), &plain))
	assert.Equal(t, 5, plain.SubmissionID)
	require.NotNil(t, plain.Submission)
	assert.Equal(t, "plain", plain.Submission.Title)
}

func TestCreatorRejectsUnusableNumbers(t *testing.T) {
	for _, payload := range []string{`1e300`, `3.5`, `99999999999999999999`, `"99999999999999999999"`} {
		t.Run(payload, func(t *testing.T) {
			var got Creator
			assert.Error(t, json.Unmarshal([]byte(payload), &got))
		})
	}

	var exp Creator
	require.NoError(t, json.Unmarshal([]byte(`1e3`), &exp))
	assert.Equal(t, Creator{ID: 1000}, exp)
}

func TestSubmissionDraftValidate(t *testing.T) {
	link := "https://example.com/post"
	text := "some text"
	bad := "not a url"

	assert.NoError(t, SubmissionDraft{Title: "A", URL: &link}.Validate())
	assert.NoError(t, SubmissionDraft{Title: "A", Content: &text}.Validate())

	err := SubmissionDraft{Title: " ", URL: &link, Content: &text}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTitleRequired)
	assert.ErrorIs(t, err, ErrURLOrContent)

	err = SubmissionDraft{Title: "A", URL: &bad}.Validate()
	assert.ErrorIs(t, err, ErrInvalidURL)

	err = SubmissionDraft{Title: "A"}.Validate()
	assert.ErrorIs(t, err, ErrURLOrContent)
}
