// ABOUTME: Session state observed from the backend's access token
// ABOUTME: Decodes (never verifies) the token payload for routing decisions

package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// State is the client-observed authentication state.
type State int

const (
	Anonymous State = iota
	IncompleteProfile
	Complete
)

func (s State) String() string {
	switch s {
	case IncompleteProfile:
		return "authenticated (profile incomplete)"
	case Complete:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session holds the claims the client reads from the token. The zero
// value is the anonymous session.
type Session struct {
	UserID          string
	Email           string
	ProfileComplete bool
}

// FromToken decodes a session token's payload without verifying its
// signature; the backend owns validation. Any malformed token is
// treated the same as no token at all.
func FromToken(token string) Session {
	if token == "" {
		return Session{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}
	}

	s := Session{}
	if sub, ok := claims["sub"].(string); ok {
		s.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		s.Email = email
	}
	if complete, ok := claims["profile_complete"].(bool); ok {
		s.ProfileComplete = complete
	}
	// Some token issuers nest the flag under user_metadata
	if meta, ok := claims["user_metadata"].(map[string]any); ok {
		if complete, ok := meta["profile_complete"].(bool); ok && complete {
			s.ProfileComplete = true
		}
	}
	return s
}

// State maps the session onto the three observed auth states.
func (s Session) State() State {
	if s.UserID == "" {
		return Anonymous
	}
	if !s.ProfileComplete {
		return IncompleteProfile
	}
	return Complete
}

// IsAuthenticated reports whether a user id was decoded.
func (s Session) IsAuthenticated() bool {
	return s.UserID != ""
}
