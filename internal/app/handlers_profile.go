package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cinemahub/profile-service/internal/sdk/middleware"
	"github.com/cinemahub/profile-service/internal/sdk/models"
	"github.com/cinemahub/profile-service/internal/sdk/sqldb"
	"github.com/cinemahub/profile-service/internal/services/sentry"
)

const maxMultipartMemory = 10 << 20 // 10 MB

// avatarObjectKey is deterministic per user, so a retried creation request
// overwrites the previous object instead of duplicating it.
func avatarObjectKey(userID int64) string {
	return fmt.Sprintf("avatars/%d_avatar.jpg", userID)
}

// HandleCreateProfile creates the one profile a user may own.
//
// Order of checks: resolve principal and active flag, authorize owner-or-admin,
// validate every submitted field, check for an existing profile, upload the
// avatar, insert the row. Validation failures never leave partial side effects;
// a commit-time unique violation is reported as the same duplicate-profile
// error as the pre-check, which closes the check-then-act race.
func (a *App) HandleCreateProfile(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || targetID <= 0 {
		writeError(c, ErrInvalidUserID, nil)
		return
	}

	claims, err := middleware.GetClaims(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	principal, err := a.db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			writeError(c, ErrUserNotActive, nil)
			return
		}
		a.toSentry(c, "create_profile", "db", sentry.LevelError, err)
		writeError(c, ErrVerifyUser, nil)
		return
	}
	if !principal.IsActive {
		writeError(c, ErrUserNotActive, nil)
		return
	}

	if principal.ID != targetID && !principal.IsAdmin {
		writeError(c, ErrForbidden, nil)
		return
	}

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	in := profileInput{
		FirstName:   c.PostForm("first_name"),
		LastName:    c.PostForm("last_name"),
		Gender:      c.PostForm("gender"),
		DateOfBirth: c.PostForm("date_of_birth"),
		Info:        c.PostForm("info"),
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		avatar = nil // absence is reported by the avatar validator
	}

	if field, reason := validateProfileInput(&in, avatar); field != "" {
		writeError(c, ErrValidation, map[string]string{field: reason})
		return
	}

	_, err = a.db.GetProfileByUserID(c.Request.Context(), targetID)
	if err == nil {
		writeError(c, ErrProfileExists, nil)
		return
	}
	if !errors.Is(err, sqldb.ErrDBNotFound) {
		a.toSentry(c, "create_profile", "db", sentry.LevelError, err)
		writeError(c, ErrRetrieveProfile, nil)
		return
	}

	file, err := avatar.Open()
	if err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}
	defer file.Close()

	objectKey := avatarObjectKey(targetID)
	if err := a.store.Upload(c.Request.Context(), objectKey, file, avatar.Size, avatar.Header.Get("Content-Type")); err != nil {
		a.toSentry(c, "create_profile", "storage", sentry.LevelError, err)
		writeError(c, ErrUploadAvatar, nil)
		return
	}

	profile, err := a.db.CreateProfile(c.Request.Context(), models.NewProfile{
		UserID:      targetID,
		FirstName:   normalizeName(in.FirstName),
		LastName:    normalizeName(in.LastName),
		Gender:      in.gender,
		DateOfBirth: in.dateOfBirth,
		Info:        in.info,
		Avatar:      objectKey,
	})
	if err != nil {
		// A concurrent request won the insert; the orphaned object under the
		// deterministic key is overwritten by any later attempt.
		if errors.Is(err, sqldb.ErrDBDuplicatedEntry) {
			writeError(c, ErrProfileExists, nil)
			return
		}
		a.toSentry(c, "create_profile", "db", sentry.LevelError, err)
		writeError(c, ErrCreateProfile, nil)
		return
	}

	c.JSON(http.StatusCreated, a.profileResponse(profile))
}

// HandleGetProfile returns a user's profile, subject to the same
// owner-or-admin rule as creation.
func (a *App) HandleGetProfile(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil || targetID <= 0 {
		writeError(c, ErrInvalidUserID, nil)
		return
	}

	claims, err := middleware.GetClaims(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	principal, err := a.db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			writeError(c, ErrUserNotActive, nil)
			return
		}
		a.toSentry(c, "get_profile", "db", sentry.LevelError, err)
		writeError(c, ErrVerifyUser, nil)
		return
	}
	if !principal.IsActive {
		writeError(c, ErrUserNotActive, nil)
		return
	}

	if principal.ID != targetID && !principal.IsAdmin {
		writeError(c, ErrForbidden, nil)
		return
	}

	profile, err := a.db.GetProfileByUserID(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			writeError(c, ErrProfileNotFound, nil)
			return
		}
		a.toSentry(c, "get_profile", "db", sentry.LevelError, err)
		writeError(c, ErrRetrieveProfile, nil)
		return
	}

	c.JSON(http.StatusOK, a.profileResponse(profile))
}
