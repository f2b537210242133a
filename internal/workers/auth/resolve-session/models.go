// internal/workers/auth/resolve-session/models.go
package resolvesession

import "heloc-workers/internal/models"

type Input struct {
	SessionID string `json:"sessionId"`
}

type Output struct {
	SessionID string           `json:"sessionId"`
	AuthState models.AuthState `json:"authState"`
	User      *models.User     `json:"user,omitempty"`
	IsAdmin   bool             `json:"isAdmin"`
}
