// Package visibility computes which submissions the home feed shows for the
// current viewer: every submission minus the ones the viewer has hidden.
package visibility

import (
	"strings"
	"sync"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

// Visible returns all submissions that have no hidden record, in their
// original order.
func Visible(all []models.Submission, hidden []models.HiddenRecord) []models.Submission {
	excluded := make(map[int]struct{}, len(hidden))
	for _, h := range hidden {
		excluded[h.SubmissionID] = struct{}{}
	}

	out := make([]models.Submission, 0, len(all))
	for _, s := range all {
		if _, skip := excluded[s.ID]; skip {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Hide appends rec unless the submission is already hidden.
func Hide(hidden []models.HiddenRecord, rec models.HiddenRecord) []models.HiddenRecord {
	for _, h := range hidden {
		if h.SubmissionID == rec.SubmissionID {
			return hidden
		}
	}
	out := make([]models.HiddenRecord, 0, len(hidden)+1)
	out = append(out, hidden...)
	return append(out, rec)
}

// Unhide drops every record for submissionID.
func Unhide(hidden []models.HiddenRecord, submissionID int) []models.HiddenRecord {
	out := make([]models.HiddenRecord, 0, len(hidden))
	for _, h := range hidden {
		if h.SubmissionID != submissionID {
			out = append(out, h)
		}
	}
	return out
}

// FilterTitle keeps submissions whose title contains query, ignoring case.
func FilterTitle(subs []models.Submission, query string) []models.Submission {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return subs
	}
	out := make([]models.Submission, 0, len(subs))
	for _, s := range subs {
		if strings.Contains(strings.ToLower(s.Title), q) {
			out = append(out, s)
		}
	}
	return out
}

// Reconciler keeps the two independent inputs of the feed and the visible
// set derived from them. Inputs may be replaced in any order; the visible set
// is recomputed from scratch on every change.
type Reconciler struct {
	mu      sync.RWMutex
	all     []models.Submission
	hidden  []models.HiddenRecord
	visible []models.Submission
}

// NewReconciler returns a reconciler with no submissions and nothing hidden.
func NewReconciler() *Reconciler {
	return &Reconciler{visible: []models.Submission{}}
}

// SetSubmissions replaces the full submission list.
func (r *Reconciler) SetSubmissions(all []models.Submission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = all
	r.recompute()
}

// SetHidden replaces the viewer's hidden records.
func (r *Reconciler) SetHidden(hidden []models.HiddenRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden = hidden
	r.recompute()
}

// ApplyHide records a successful hide.
func (r *Reconciler) ApplyHide(rec models.HiddenRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden = Hide(r.hidden, rec)
	r.recompute()
}

// ApplyUnhide records a successful unhide.
func (r *Reconciler) ApplyUnhide(submissionID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden = Unhide(r.hidden, submissionID)
	r.recompute()
}

// UpdateSubmission applies fn to the stored submission with id, if present.
func (r *Reconciler) UpdateSubmission(id int, fn func(models.Submission) models.Submission) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.all {
		if s.ID == id {
			next := make([]models.Submission, len(r.all))
			copy(next, r.all)
			next[i] = fn(s)
			r.all = next
			r.recompute()
			return true
		}
	}
	return false
}

// Visible returns the submissions not hidden by the viewer.
func (r *Reconciler) Visible() []models.Submission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.visible
}

// Hidden returns the current hidden records. Callers must not modify them.
func (r *Reconciler) Hidden() []models.HiddenRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hidden
}

// IsHidden reports whether the viewer has hidden submissionID.
func (r *Reconciler) IsHidden(submissionID int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.hidden {
		if h.SubmissionID == submissionID {
			return true
		}
	}
	return false
}

func (r *Reconciler) recompute() {
	r.visible = Visible(r.all, r.hidden)
}
