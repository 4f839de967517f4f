package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ErrUnmarshal       = "invalid_request_body"
	ErrInvalidUserID   = "invalid_user_id"
	ErrValidation      = "validation_failed"
	ErrUnauthorized    = "unauthorized"
	ErrUserNotActive   = "user_not_found_or_not_active"
	ErrForbidden       = "forbidden"
	ErrProfileExists   = "user_already_has_profile"
	ErrProfileNotFound = "profile_not_found"
	ErrUploadAvatar    = "internal_avatar_upload_error"
	ErrCreateProfile   = "internal_create_profile_error"
	ErrRetrieveProfile = "internal_retrieve_profile_error"
	ErrVerifyUser      = "internal_verify_user_error"
)

var errorStatusMap = map[string]int{
	ErrUnmarshal:       http.StatusBadRequest,
	ErrInvalidUserID:   http.StatusBadRequest,
	ErrValidation:      http.StatusUnprocessableEntity,
	ErrUnauthorized:    http.StatusUnauthorized,
	ErrUserNotActive:   http.StatusUnauthorized,
	ErrForbidden:       http.StatusForbidden,
	ErrProfileExists:   http.StatusBadRequest,
	ErrProfileNotFound: http.StatusNotFound,
	ErrUploadAvatar:    http.StatusInternalServerError,
	ErrCreateProfile:   http.StatusInternalServerError,
	ErrRetrieveProfile: http.StatusInternalServerError,
	ErrVerifyUser:      http.StatusInternalServerError,
}

var errorMessageMap = map[string]string{
	ErrUserNotActive:   "User not found or not active.",
	ErrForbidden:       "You don't have permission to edit this profile.",
	ErrProfileExists:   "User already has a profile.",
	ErrProfileNotFound: "User doesn't have a profile yet.",
	ErrUploadAvatar:    "Failed to upload avatar. Please try again later.",
	ErrCreateProfile:   "An error occurred during profile creation.",
}

func statusForError(code string) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, code string, details map[string]string) {
	c.JSON(statusForError(code), ErrorResponse{
		Error:   code,
		Message: errorMessageMap[code],
		Details: details,
	})
}
