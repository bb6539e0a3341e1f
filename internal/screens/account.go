package screens

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/emilythestrangee/hackernews-client/internal/models"
	"github.com/emilythestrangee/hackernews-client/internal/session"
)

var ErrTokenRequired = errors.New("api key is required")

// Login resolves the user behind userID and makes them the current viewer.
// The token is not checked here; the first authenticated call will reject a
// bad one.
func Login(ctx context.Context, api Backend, sess *session.Session, userID int, token string) (session.Viewer, Notice) {
	token = strings.TrimSpace(token)
	if token == "" {
		return session.Anonymous, NoticeFor("log in", ErrTokenRequired)
	}
	u, err := api.GetUser(ctx, userID)
	if err != nil {
		return session.Anonymous, NoticeFor("log in", err)
	}
	v := session.Viewer{ID: u.ID, Username: u.Username, Token: token, Profile: *u}
	if v.ID == 0 {
		v.ID = userID
	}
	sess.Login(v)
	return v, Info("Welcome, " + u.Username + ".")
}

func Logout(sess *session.Session) Notice {
	sess.Logout()
	return Info("Logged out.")
}

// Profile fetches any user's profile. Only the viewer's own profile can be
// updated.
func Profile(ctx context.Context, api Backend, userID int) (*models.User, Notice) {
	u, err := api.GetUser(ctx, userID)
	if err != nil {
		return nil, NoticeFor("load the profile", err)
	}
	return u, Notice{}
}

func UpdateProfile(ctx context.Context, api Backend, sess *session.Session, userID int, req models.UpdateUserRequest) (*models.User, Notice) {
	viewer := sess.Current()
	if viewer.LoggedIn() && viewer.ID != userID {
		return nil, failure(http.StatusForbidden, "You can only edit your own profile.")
	}
	if req.About == nil && req.Avatar == nil && req.Banner == nil {
		return nil, NoticeFor("update the profile", models.ErrNothingToUpdate)
	}
	u, err := api.UpdateUser(ctx, viewer.Token, userID, req)
	if err != nil {
		return nil, NoticeFor("update the profile", err)
	}
	sess.UpdateProfile(*u)
	return u, Info("Profile updated.")
}
