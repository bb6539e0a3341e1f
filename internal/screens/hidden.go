package screens

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/emilythestrangee/hackernews-client/internal/models"
	"github.com/emilythestrangee/hackernews-client/internal/session"
	"github.com/emilythestrangee/hackernews-client/internal/visibility"
)

// HiddenList shows what the viewer hid and lets them restore it.
type HiddenList struct {
	lifecycle

	api     Backend
	session *session.Session
	log     logrus.FieldLogger

	mu      sync.RWMutex
	records []models.HiddenRecord
}

func NewHiddenList(api Backend, sess *session.Session, log logrus.FieldLogger) *HiddenList {
	return &HiddenList{api: api, session: sess, log: log.WithField("screen", "hidden")}
}

func (h *HiddenList) Mount()   { h.mount() }
func (h *HiddenList) Unmount() { h.unmount() }

func (h *HiddenList) Refresh(ctx context.Context) Notice {
	r, ok := h.beginLoad()
	if !ok {
		return Notice{}
	}
	viewer := h.session.Current()
	records, err := h.api.ListHidden(ctx, viewer.Token)
	if err != nil {
		h.log.WithError(err).Warn("⚠️ could not load hidden submissions")
		return NoticeFor("see hidden submissions", err)
	}
	h.applyLoad(r, func() {
		h.mu.Lock()
		h.records = records
		h.mu.Unlock()
	})
	return Notice{}
}

func (h *HiddenList) Items() []models.HiddenRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]models.HiddenRecord, len(h.records))
	copy(out, h.records)
	return out
}

func (h *HiddenList) Unhide(ctx context.Context, submissionID int) Notice {
	gen, ok := h.begin()
	if !ok {
		return Notice{}
	}
	viewer := h.session.Current()
	if err := h.api.Unhide(ctx, viewer.Token, submissionID); err != nil {
		return NoticeFor("unhide", err)
	}
	h.apply(gen, func() {
		h.mu.Lock()
		h.records = visibility.Unhide(h.records, submissionID)
		h.mu.Unlock()
	})
	return Info("Submission restored.")
}
