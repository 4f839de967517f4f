// Package app provides the HTTP handlers for the profile creation workflow.
package app

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/cinemahub/profile-service/internal/sdk/middleware"
	"github.com/cinemahub/profile-service/internal/sdk/sqldb"
	"github.com/cinemahub/profile-service/internal/services/jwt"
	"github.com/cinemahub/profile-service/internal/services/sentry"
)

// AvatarStore is the object-storage capability the workflow consumes.
// Implemented by services/minio.
type AvatarStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetPublicURL(objectName string) string
}

type App struct {
	db     sqldb.Service
	store  AvatarStore
	jwt    *jwt.TokenService
	sentry *sentry.SentryService
}

func NewApp(
	db sqldb.Service,
	store AvatarStore,
	jwt *jwt.TokenService,
	sentry *sentry.SentryService,
) *App {
	return &App{
		db:     db,
		store:  store,
		jwt:    jwt,
		sentry: sentry,
	}
}

func (a *App) toSentry(c *gin.Context, handler, errType string, level sentry.Level, err error) {
	a.sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("handler", handler)
		scope.SetExtra("error_type", errType)
		scope.SetLevel(level)
		if reqID := c.GetString(middleware.RequestIDKey); reqID != "" {
			scope.SetTag("request_id", reqID)
		}
		a.sentry.CaptureException(err)
	})
}
