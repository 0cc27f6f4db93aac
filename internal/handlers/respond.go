package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	apierrors "github.com/yukikurage/academic-hub-api/internal/errors"
	"github.com/yukikurage/academic-hub-api/internal/middleware"
	"github.com/yukikurage/academic-hub-api/internal/services"
)

// respondError maps a service error onto an API error response.
// Unexpected errors are attached to the context for the request logger.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrInvalidToken):
		apierrors.Unauthorized(c, "Could not validate credentials")

	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, "You do not have permission to modify this item")

	case errors.Is(err, services.ErrFileMissing):
		apierrors.NotFound(c, "File not found")
	case errors.Is(err, services.ErrResourceNotFound):
		apierrors.NotFound(c, "Resource not found")
	case errors.Is(err, services.ErrPostNotFound):
		apierrors.NotFound(c, "Post not found")
	case errors.Is(err, services.ErrReplyNotFound):
		apierrors.NotFound(c, "Reply not found")
	case errors.Is(err, services.ErrGoalNotFound):
		apierrors.NotFound(c, "Goal not found")
	case errors.Is(err, services.ErrBookmarkNotFound):
		apierrors.NotFound(c, "Bookmark not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrPhotoNotFound):
		apierrors.NotFound(c, "Photo not found")

	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email already registered")
	case errors.Is(err, services.ErrBookmarkExists):
		apierrors.Conflict(c, "Resource already bookmarked")

	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrFileTooLarge):
		apierrors.BadRequest(c, "File too large")
	case errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidResourceType),
		errors.Is(err, services.ErrInvalidFileType),
		errors.Is(err, services.ErrFileRequired),
		errors.Is(err, services.ErrBranchRequired),
		errors.Is(err, services.ErrYearRequired),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrInvalidProgress),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrCategoryRequired),
		errors.Is(err, services.ErrMessageRequired):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrChatUpstream):
		_ = c.Error(err)
		apierrors.BadGateway(c, "AI service error")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service not configured")

	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

// formFile opens an uploaded file from a body capped at maxBytes.
// A body over the cap answers as ErrFileTooLarge; any other failure as missingMsg.
func formFile(c *gin.Context, field string, maxBytes int64, missingMsg string) (multipart.File, *multipart.FileHeader, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	fileHeader, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, services.ErrFileTooLarge)
		} else {
			apierrors.BadRequest(c, missingMsg)
		}
		return nil, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.BadRequest(c, "Could not read uploaded file")
		return nil, nil, false
	}
	return file, fileHeader, true
}

// bindJSON binds the request body, answering 400 with validation details on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.ValidationDetails(err))
		return false
	}
	return true
}

// requireActor returns the authenticated caller; RequireAuth guarantees it on protected routes
func requireActor(c *gin.Context) (services.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return services.Actor{}, false
	}
	return actor, true
}

func requireID(c *gin.Context) (uint64, bool) {
	id, ok := middleware.GetID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

