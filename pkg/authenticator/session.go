package authenticator

import (
	"context"

	"github.com/questx-lab/questkit/pkg/xcontext"
)

// AccessToken is the object carried by the access tokens of the host backend.
type AccessToken struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
}

// Session decides whether the user is signed in from the configured access
// token. The user is signed in only while the token is valid and not expired.
type Session struct {
	engine TokenEngine[AccessToken]
	token  string
}

func NewSession(engine TokenEngine[AccessToken], token string) *Session {
	return &Session{engine: engine, token: token}
}

func (s *Session) IsSignedIn(ctx context.Context) bool {
	_, ok := s.User(ctx)
	return ok
}

func (s *Session) User(ctx context.Context) (AccessToken, bool) {
	if s.token == "" {
		return AccessToken{}, false
	}

	info, err := s.engine.Verify(s.token)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
		return AccessToken{}, false
	}

	return info, info.ID != ""
}

// Token returns the raw access token sent to the host backend.
func (s *Session) Token() string {
	return s.token
}
