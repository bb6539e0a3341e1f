package screens

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/emilythestrangee/hackernews-client/internal/apiclient"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notice is a short non-blocking message for the user. The zero value means
// there is nothing to say.
type Notice struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	// Status is the HTTP status an error notice maps to.
	Status int `json:"-"`
}

func Info(text string) Notice {
	return Notice{Level: LevelInfo, Text: text}
}

func failure(status int, format string, args ...any) Notice {
	return Notice{Level: LevelError, Text: fmt.Sprintf(format, args...), Status: status}
}

func (n Notice) Failed() bool {
	return n.Level == LevelError
}

func (n Notice) Empty() bool {
	return n.Level == "" && n.Text == ""
}

// NoticeFor turns the failure of action ("vote", "load the feed", ...) into
// something the user can read.
func NoticeFor(action string, err error) Notice {
	if err == nil {
		return Notice{}
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		parts := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			parts = append(parts, capitalize(e.Error()))
		}
		return Notice{Level: LevelError, Text: strings.Join(parts, ". ") + ".", Status: http.StatusBadRequest}
	}

	if errors.Is(err, apiclient.ErrNotAuthenticated) {
		return Notice{Level: LevelError, Text: fmt.Sprintf("You must log in to %s.", action), Status: http.StatusUnauthorized}
	}

	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return Notice{Level: LevelError, Text: capitalize(err.Error()) + ".", Status: http.StatusBadRequest}
	}

	n := Notice{Level: LevelError, Status: apiErr.Status}
	switch apiErr.Kind {
	case apiclient.KindNetwork:
		n.Text = "Could not connect to the server."
		n.Status = http.StatusBadGateway
	case apiclient.KindServer, apiclient.KindDecode:
		n.Text = fmt.Sprintf("Could not %s, the server had a problem. Try again later.", action)
		n.Status = http.StatusBadGateway
	case apiclient.KindValidation:
		n.Text = validationText(action, apiErr)
	default:
		n.Text = fmt.Sprintf("Could not %s.", action)
		n.Status = http.StatusBadGateway
	}
	return n
}

func validationText(action string, apiErr *apiclient.Error) string {
	switch apiErr.Status {
	case http.StatusUnauthorized:
		return fmt.Sprintf("You must log in to %s.", action)
	case http.StatusForbidden:
		return fmt.Sprintf("You are not allowed to %s.", action)
	case http.StatusNotFound:
		return "That item no longer exists."
	case http.StatusBadRequest, http.StatusConflict:
		switch action {
		case "vote":
			return "You have already voted this item."
		case "favorite":
			return "This item is already in your favorites."
		case "hide":
			return "This submission is already hidden."
		}
	}
	if apiErr.Message != "" {
		return capitalize(apiErr.Message)
	}
	return fmt.Sprintf("Could not %s.", action)
}

func capitalize(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
