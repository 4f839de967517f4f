package app

import (
	"time"

	"github.com/cinemahub/profile-service/internal/sdk/models"
)

const dateLayout = "2006-01-02"

type ProfileResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	Info        string `json:"info"`
	Avatar      string `json:"avatar"`
}

// profileResponse renders a stored profile with the avatar key resolved to a
// retrievable URL. The internal storage key never leaves the service.
func (a *App) profileResponse(p models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Gender:      p.Gender,
		DateOfBirth: p.DateOfBirth.Format(dateLayout),
		Info:        p.Info,
		Avatar:      a.store.GetPublicURL(p.Avatar),
	}
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type LivenessResponse struct {
	Status     string `json:"status"`
	Host       string `json:"host"`
	GOMAXPROCS int    `json:"gomaxprocs"`
}

// profileInput carries the submitted multipart fields before validation.
type profileInput struct {
	FirstName   string
	LastName    string
	Gender      string
	DateOfBirth string
	Info        string

	// filled by validation
	gender      string
	dateOfBirth time.Time
	info        string
}
