package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// User is a forum profile as served by GET /users/{id}/
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	Karma     int       `json:"karma"`
	About     string    `json:"about"`
	Avatar    *string   `json:"avatar"`
	Banner    *string   `json:"banner"`
}

// UpdateUserRequest is the PATCH body for a profile. Nil fields are left untouched.
type UpdateUserRequest struct {
	About  *string `json:"about,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
	Banner *string `json:"banner,omitempty"`
}

// Creator is the canonical author reference carried by submissions and comments.
//
// The backend is not consistent about the shape of created_by: it may be a
// bare numeric id, a numeric string, a bare username, or an object with id
// and/or username. All of them decode into this one shape.
type Creator struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

func (c Creator) Known() bool {
	return c.ID != 0 || c.Username != ""
}

func (c *Creator) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Creator{}
		return nil
	}

	switch data[0] {
	case '{':
		var raw struct {
			ID       json.RawMessage `json:"id"`
			Username string          `json:"username"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("created_by object: %w", err)
		}
		id, _, err := parseID(raw.ID)
		if err != nil {
			return fmt.Errorf("created_by.id: %w", err)
		}
		*c = Creator{ID: id, Username: raw.Username}
		return nil
	default:
		id, username, err := parseID(data)
		if err != nil {
			return fmt.Errorf("created_by: %w", err)
		}
		*c = Creator{ID: id, Username: username}
		return nil
	}
}

// parseID accepts a JSON number or string. A string that is not numeric is
// returned as a username instead. Numbers that are not integers or do not fit
// an int are rejected.
func parseID(data json.RawMessage) (int, string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, "", nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, "", err
		}
		s = strings.TrimSpace(s)
		n, err := strconv.Atoi(s)
		switch {
		case err == nil:
			return n, "", nil
		case errors.Is(err, strconv.ErrRange):
			return 0, "", fmt.Errorf("id %q out of range", s)
		}
		return 0, s, nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, "", err
	}
	if i, err := n.Int64(); err == nil {
		if int64(int(i)) != i {
			return 0, "", fmt.Errorf("id %s out of range", n)
		}
		return int(i), "", nil
	}
	// Exponent forms such as 1e3 only parse as floats.
	f, err := n.Float64()
	if err != nil {
		return 0, "", fmt.Errorf("id %s out of range", n)
	}
	if f != math.Trunc(f) {
		return 0, "", fmt.Errorf("id %s is not an integer", n)
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, "", fmt.Errorf("id %s out of range", n)
	}
	return int(f), "", nil
}
