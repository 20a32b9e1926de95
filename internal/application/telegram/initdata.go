package telegram

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"
)

var (
	ErrEmptyInitData = errors.New("init data is empty")
	ErrNoUser        = errors.New("init data contains no user payload")
)

// User is the Telegram account embedded in a WebApp init payload
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

// ParseInitData extracts the embedded user from a Telegram WebApp init
// payload, which is a URL query string carrying a JSON-encoded user field.
// No signature verification happens here: the upstream owns identity
// verification, this parse exists only for the offline auth fallback.
func ParseInitData(initData string) (*User, error) {
	if initData == "" {
		return nil, ErrEmptyInitData
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("malformed init data: %w", err)
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, ErrNoUser
	}

	var user User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("malformed user payload: %w", err)
	}
	if user.ID == 0 {
		return nil, ErrNoUser
	}

	return &user, nil
}

// DevToken synthesizes a development-mode token for a user when the upstream
// cannot be reached during auth bootstrap. Never treated as an upstream
// credential by anything that validates tokens.
func DevToken(userID int64) string {
	return fmt.Sprintf("dev_token_%d_%d", userID, time.Now().UnixMilli())
}
