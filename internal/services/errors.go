package services

import (
	"errors"
)

var (
	// Identity
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrWrongPassword        = errors.New("current password is incorrect")
	ErrUserNotFound         = errors.New("user not found")
	ErrNameRequired         = errors.New("name is required")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrFailedToHashPassword = errors.New("failed to hash password")

	// Authorization
	ErrPermissionDenied = errors.New("permission denied")

	// Resources and files
	ErrResourceNotFound    = errors.New("resource not found")
	ErrInvalidResourceType = errors.New("invalid resource type")
	ErrFileMissing         = errors.New("file not found")
	ErrInvalidFileType     = errors.New("invalid file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileRequired        = errors.New("file is required")
	ErrBranchRequired      = errors.New("branch is required")
	ErrYearRequired        = errors.New("year is required")
	ErrPhotoNotFound       = errors.New("photo not found")

	// Validation shared by several subsystems
	ErrTitleRequired = errors.New("title is required")
	ErrTitleTooLong  = errors.New("title is too long")

	// Bookmarks
	ErrBookmarkExists   = errors.New("resource already bookmarked")
	ErrBookmarkNotFound = errors.New("bookmark not found")

	// Learning goals
	ErrGoalNotFound    = errors.New("learning goal not found")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")

	// Forum
	ErrPostNotFound     = errors.New("post not found")
	ErrReplyNotFound    = errors.New("reply not found")
	ErrContentRequired  = errors.New("content is required")
	ErrCategoryRequired = errors.New("category is required")

	// Chat assistant
	ErrMessageRequired        = errors.New("message is required")
	ErrChatUpstream           = errors.New("chat assistant is unavailable")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
)
