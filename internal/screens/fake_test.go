package screens

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/emilythestrangee/hackernews-client/internal/apiclient"
	"github.com/emilythestrangee/hackernews-client/internal/models"
)

// fakeBackend is an in-memory Backend. Errors are injected per operation and
// the list calls can be held open with gates.
type fakeBackend struct {
	mu sync.Mutex

	submissions []models.Submission
	details     map[int]models.Submission
	comments    map[int]models.Comment
	hidden      map[string][]models.HiddenRecord
	users       map[int]models.User

	errs  map[string]error
	calls []string

	// replyWithoutID makes create and reply answer with an empty body.
	replyWithoutID bool
	voteTotal      *int
	nextID         int

	submissionsGate chan struct{}
	hiddenGate      chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		details:  map[int]models.Submission{},
		comments: map[int]models.Comment{},
		hidden:   map[string][]models.HiddenRecord{},
		users:    map[int]models.User{},
		errs:     map[string]error{},
		nextID:   1000,
	}
}

func statusErr(op string, status int) error {
	kind := apiclient.KindValidation
	if status >= 500 {
		kind = apiclient.KindServer
	}
	return &apiclient.Error{Op: op, Kind: kind, Status: status}
}

func (f *fakeBackend) failWith(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
}

func (f *fakeBackend) called(op string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == op {
			return true
		}
	}
	return false
}

// enter records the call and returns the injected error, if any.
func (f *fakeBackend) enter(op, token string, auth bool) error {
	if auth && token == "" {
		return fmt.Errorf("%s: %w", op, apiclient.ErrNotAuthenticated)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	return f.errs[op]
}

func wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeBackend) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	if err := f.enter("list_submissions", "", false); err != nil {
		return nil, err
	}
	if err := wait(ctx, f.submissionsGate); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Submission(nil), f.submissions...), nil
}

func (f *fakeBackend) ListAsk(ctx context.Context) ([]models.Submission, error) {
	if err := f.enter("list_ask", "", false); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Submission
	for _, s := range f.submissions {
		if s.IsAsk() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeBackend) GetSubmission(ctx context.Context, id int) (*models.Submission, error) {
	if err := f.enter("get_submission", "", false); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.details[id]
	if !ok {
		return nil, statusErr("get_submission", http.StatusNotFound)
	}
	return &s, nil
}

func (f *fakeBackend) CreateSubmission(ctx context.Context, token string, draft models.SubmissionDraft) (*models.Submission, error) {
	if err := f.enter("create_submission", token, true); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s := models.Submission{ID: f.nextID, Title: draft.Title, URL: draft.URL, Content: draft.Content}
	f.submissions = append(f.submissions, s)
	return &s, nil
}

func (f *fakeBackend) UpdateSubmission(ctx context.Context, token string, id int, draft models.SubmissionDraft) (*models.Submission, error) {
	if err := f.enter("update_submission", token, true); err != nil {
		return nil, err
	}
	return &models.Submission{ID: id, Title: draft.Title, URL: draft.URL, Content: draft.Content}, nil
}

func (f *fakeBackend) DeleteSubmission(ctx context.Context, token string, id int) error {
	return f.enter("delete_submission", token, true)
}

func (f *fakeBackend) voteResult(id int) models.VoteResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.VoteResult{TargetID: id, TotalVotes: f.voteTotal}
}

func (f *fakeBackend) VoteSubmission(ctx context.Context, token string, id int) (models.VoteResult, error) {
	if err := f.enter("vote_submission", token, true); err != nil {
		return models.VoteResult{}, err
	}
	return f.voteResult(id), nil
}

func (f *fakeBackend) FavoriteSubmission(ctx context.Context, token string, id int) (models.VoteResult, error) {
	if err := f.enter("favorite_submission", token, true); err != nil {
		return models.VoteResult{}, err
	}
	return f.voteResult(id), nil
}

func (f *fakeBackend) ListFavoriteSubmissions(ctx context.Context, token string) ([]models.Submission, error) {
	if err := f.enter("list_favorite_submissions", token, true); err != nil {
		return nil, err
	}
	return f.ListAsk(ctx)
}

func (f *fakeBackend) ListUpvotedSubmissions(ctx context.Context, token string) ([]models.Submission, error) {
	if err := f.enter("list_upvoted_submissions", token, true); err != nil {
		return nil, err
	}
	return f.ListSubmissions(ctx)
}

func (f *fakeBackend) ListComments(ctx context.Context) ([]models.Comment, error) {
	if err := f.enter("list_comments", "", false); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for _, s := range f.details {
		out = append(out, s.Comments...)
	}
	return out, nil
}

func (f *fakeBackend) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	if err := f.enter("get_comment", "", false); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, statusErr("get_comment", http.StatusNotFound)
	}
	return &c, nil
}

func (f *fakeBackend) newComment(req models.CreateCommentRequest, parent *int) *models.Comment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replyWithoutID {
		return &models.Comment{}
	}
	f.nextID++
	return &models.Comment{ID: f.nextID, SubmissionID: req.SubmissionID, Content: req.Content, ParentID: parent}
}

func (f *fakeBackend) CreateComment(ctx context.Context, token string, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := f.enter("create_comment", token, true); err != nil {
		return nil, err
	}
	return f.newComment(req, nil), nil
}

func (f *fakeBackend) ReplyComment(ctx context.Context, token string, parentID int, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := f.enter("reply_comment", token, true); err != nil {
		return nil, err
	}
	return f.newComment(req, &parentID), nil
}

func (f *fakeBackend) UpdateComment(ctx context.Context, token string, id int, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := f.enter("update_comment", token, true); err != nil {
		return nil, err
	}
	return &models.Comment{ID: id, Content: req.Content, SubmissionID: req.SubmissionID}, nil
}

func (f *fakeBackend) DeleteComment(ctx context.Context, token string, id int) error {
	return f.enter("delete_comment", token, true)
}

func (f *fakeBackend) VoteComment(ctx context.Context, token string, id int) (models.VoteResult, error) {
	if err := f.enter("vote_comment", token, true); err != nil {
		return models.VoteResult{}, err
	}
	return f.voteResult(id), nil
}

func (f *fakeBackend) FavoriteComment(ctx context.Context, token string, id int) (models.VoteResult, error) {
	if err := f.enter("favorite_comment", token, true); err != nil {
		return models.VoteResult{}, err
	}
	return f.voteResult(id), nil
}

func (f *fakeBackend) ListFavoriteComments(ctx context.Context, token string) ([]models.Comment, error) {
	if err := f.enter("list_favorite_comments", token, true); err != nil {
		return nil, err
	}
	return f.ListComments(ctx)
}

func (f *fakeBackend) ListUpvotedComments(ctx context.Context, token string) ([]models.Comment, error) {
	if err := f.enter("list_upvoted_comments", token, true); err != nil {
		return nil, err
	}
	return f.ListComments(ctx)
}

func (f *fakeBackend) ListHidden(ctx context.Context, token string) ([]models.HiddenRecord, error) {
	if err := f.enter("list_hidden", token, true); err != nil {
		return nil, err
	}
	if err := wait(ctx, f.hiddenGate); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.HiddenRecord{}, f.hidden[token]...), nil
}

func (f *fakeBackend) Hide(ctx context.Context, token string, submissionID int) error {
	if err := f.enter("hide", token, true); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hidden[token] = append(f.hidden[token], models.HiddenRecord{SubmissionID: submissionID})
	return nil
}

func (f *fakeBackend) Unhide(ctx context.Context, token string, submissionID int) error {
	if err := f.enter("unhide", token, true); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []models.HiddenRecord
	for _, h := range f.hidden[token] {
		if h.SubmissionID != submissionID {
			kept = append(kept, h)
		}
	}
	f.hidden[token] = kept
	return nil
}

func (f *fakeBackend) GetUser(ctx context.Context, id int) (*models.User, error) {
	if err := f.enter("get_user", "", false); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, statusErr("get_user", http.StatusNotFound)
	}
	return &u, nil
}

func (f *fakeBackend) UpdateUser(ctx context.Context, token string, id int, req models.UpdateUserRequest) (*models.User, error) {
	if err := f.enter("update_user", token, true); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	if req.About != nil {
		u.About = *req.About
	}
	f.users[id] = u
	return &u, nil
}
