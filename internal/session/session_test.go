package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/hackernews-client/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()
	assert.False(t, s.Current().LoggedIn())

	var seen []int
	cancel := s.Subscribe(func(v Viewer) { seen = append(seen, v.ID) })

	s.Login(Viewer{ID: 1, Username: "jose", Token: "k1"})
	assert.True(t, s.Current().LoggedIn())
	assert.Equal(t, "jose", s.Current().Username)

	// same identity again is not a change
	s.Login(Viewer{ID: 1, Username: "jose", Token: "k1"})

	s.Login(Viewer{ID: 2, Username: "kat", Token: "k2"})
	s.Logout()
	assert.Equal(t, Anonymous, s.Current())

	cancel()
	s.Login(Viewer{ID: 4, Token: "k4"})

	assert.Equal(t, []int{1, 2, 0}, seen)
}

func TestUpdateProfileKeepsIdentity(t *testing.T) {
	s := New()
	s.Login(Viewer{ID: 1, Username: "jose", Token: "k1"})

	s.UpdateProfile(models.User{ID: 1, Username: "jose", About: "hi"})
	assert.Equal(t, "hi", s.Current().Profile.About)

	s.UpdateProfile(models.User{ID: 2, About: "not me"})
	assert.Equal(t, "hi", s.Current().Profile.About)
}
