// Package screens holds the per-screen state of the client: what was
// fetched, what the user did to it, and what to tell the user about it.
//
// A screen is mounted, refreshed and acted on, then unmounted. Its local
// copy of backend data dies with it. Results of calls that finish after
// Unmount are dropped.
package screens

import (
	"context"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

// Backend is the subset of the collaborator API the screens use.
// *apiclient.Client implements it.
type Backend interface {
	ListSubmissions(ctx context.Context) ([]models.Submission, error)
	ListAsk(ctx context.Context) ([]models.Submission, error)
	GetSubmission(ctx context.Context, id int) (*models.Submission, error)
	CreateSubmission(ctx context.Context, token string, draft models.SubmissionDraft) (*models.Submission, error)
	UpdateSubmission(ctx context.Context, token string, id int, draft models.SubmissionDraft) (*models.Submission, error)
	DeleteSubmission(ctx context.Context, token string, id int) error
	VoteSubmission(ctx context.Context, token string, id int) (models.VoteResult, error)
	FavoriteSubmission(ctx context.Context, token string, id int) (models.VoteResult, error)
	ListFavoriteSubmissions(ctx context.Context, token string) ([]models.Submission, error)
	ListUpvotedSubmissions(ctx context.Context, token string) ([]models.Submission, error)

	ListComments(ctx context.Context) ([]models.Comment, error)
	GetComment(ctx context.Context, id int) (*models.Comment, error)
	CreateComment(ctx context.Context, token string, req models.CreateCommentRequest) (*models.Comment, error)
	ReplyComment(ctx context.Context, token string, parentID int, req models.CreateCommentRequest) (*models.Comment, error)
	UpdateComment(ctx context.Context, token string, id int, req models.CreateCommentRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, token string, id int) error
	VoteComment(ctx context.Context, token string, id int) (models.VoteResult, error)
	FavoriteComment(ctx context.Context, token string, id int) (models.VoteResult, error)
	ListFavoriteComments(ctx context.Context, token string) ([]models.Comment, error)
	ListUpvotedComments(ctx context.Context, token string) ([]models.Comment, error)

	ListHidden(ctx context.Context, token string) ([]models.HiddenRecord, error)
	Hide(ctx context.Context, token string, submissionID int) error
	Unhide(ctx context.Context, token string, submissionID int) error

	GetUser(ctx context.Context, id int) (*models.User, error)
	UpdateUser(ctx context.Context, token string, id int, req models.UpdateUserRequest) (*models.User, error)
}
