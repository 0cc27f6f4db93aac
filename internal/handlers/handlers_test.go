package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/academic-hub-api/internal/achievements"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	"github.com/yukikurage/academic-hub-api/internal/dto"
	apierrors "github.com/yukikurage/academic-hub-api/internal/errors"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/repository"
	"github.com/yukikurage/academic-hub-api/internal/services"
	"github.com/yukikurage/academic-hub-api/internal/storage"
	"github.com/yukikurage/academic-hub-api/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type scriptedCompleter struct {
	err error
}

func (s *scriptedCompleter) Complete(_ context.Context, _, _, message string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "echo: " + message, nil
}

// HandlerTestSuite drives the HTTP API end to end against an in-memory database
type HandlerTestSuite struct {
	suite.Suite
	db        *gorm.DB
	blobs     *storage.LocalStore
	tokens    *services.TokenService
	completer *scriptedCompleter
	resources *ResourceHandler
	router    *gin.Engine

	student *models.User
	other   *models.User
	admin   *models.User
}

// SetupTest runs before each test
func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.db = testutil.NewTestDB(suite.T())
	log := logger.Nop()

	var err error
	suite.blobs, err = storage.NewLocalStore(suite.T().TempDir())
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	resourceRepo := repository.NewResourceRepository(suite.db)
	bookmarkRepo := repository.NewBookmarkRepository(suite.db)
	downloadRepo := repository.NewDownloadRepository(suite.db)
	achievementRepo := repository.NewAchievementRepository(suite.db)
	goalRepo := repository.NewGoalRepository(suite.db)
	forumRepo := repository.NewForumRepository(suite.db)

	engine := achievements.NewEngine(achievementRepo, services.AchievementCounters(services.AchievementSources{
		Users:     userRepo,
		Resources: resourceRepo,
		Bookmarks: bookmarkRepo,
		Downloads: downloadRepo,
		Goals:     goalRepo,
		Forum:     forumRepo,
	}), log)

	hasher := services.BcryptHasher{Cost: bcrypt.MinCost}
	suite.tokens = services.NewTokenService("handler-test-secret", time.Hour)
	suite.completer = &scriptedCompleter{}

	stats := services.NewStatsService(resourceRepo, userRepo, nil, time.Minute, log)
	authService := services.NewAuthService(userRepo, hasher, suite.tokens, stats)

	h := Handlers{
		Auth:         NewAuthHandler(authService),
		Resources:    NewResourceHandler(services.NewResourceService(resourceRepo, downloadRepo, suite.blobs, engine, stats, log)),
		Bookmarks:    NewBookmarkHandler(services.NewBookmarkService(bookmarkRepo, resourceRepo, engine)),
		Achievements: NewAchievementHandler(engine),
		Goals:        NewGoalHandler(services.NewGoalService(goalRepo, engine)),
		Forum:        NewForumHandler(services.NewForumService(forumRepo, engine, log)),
		Profile: NewProfileHandler(services.NewProfileService(services.ProfileRepositories{
			Users:        userRepo,
			Resources:    resourceRepo,
			Bookmarks:    bookmarkRepo,
			Downloads:    downloadRepo,
			Achievements: achievementRepo,
			Goals:        goalRepo,
		}, hasher, suite.blobs, engine, log)),
		Chat:  NewChatHandler(services.NewChatService(repository.NewChatRepository(suite.db), suite.completer, log)),
		Stats: NewStatsHandler(stats),
	}

	suite.resources = h.Resources

	suite.router = gin.New()
	suite.router.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	suite.router.GET("/health", Health(suite.db))
	RegisterRoutes(suite.router.Group("/api"), h, authService)

	suite.student = testutil.CreateUser(suite.T(), suite.db, "student@example.com", false)
	suite.other = testutil.CreateUser(suite.T(), suite.db, "other@example.com", false)
	suite.admin = testutil.CreateUser(suite.T(), suite.db, "admin@example.com", true)
}

func (suite *HandlerTestSuite) token(user *models.User) string {
	token, err := suite.tokens.Issue(user.ID)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(req *http.Request, user *models.User, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	if user != nil {
		req.Header.Set(constants.AuthorizationHeader, "Bearer "+suite.token(user))
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) request(method, path string, user *models.User, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return suite.do(req, user)
}

func (suite *HandlerTestSuite) multipartRequest(path, fileField, fileName string, content []byte, fields map[string]string) *http.Request {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		suite.Require().NoError(mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile(fileField, fileName)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (suite *HandlerTestSuite) uploadPaper(user *models.User, title string) dto.ResourceDTO {
	req := suite.multipartRequest("/api/papers", "file", "exam.pdf", []byte("%PDF-1.4 test"), map[string]string{
		"title":  title,
		"branch": "CSE",
		"tags":   "dbms, sql",
	})
	w := suite.do(req, user)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var res dto.ResourceDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, dst interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func (suite *HandlerTestSuite) errorCode(w *httptest.ResponseRecorder) string {
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	return apiErr.Code
}

// Auth

func (suite *HandlerTestSuite) TestRegisterLoginMe() {
	w := suite.request(http.MethodPost, "/api/auth/register", nil, map[string]string{
		"name": "Fresh", "email": "fresh@example.com", "password": "secret1",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var registered dto.AuthResponse
	suite.decode(w, &registered)
	suite.Equal("bearer", registered.TokenType)
	suite.Equal("fresh@example.com", registered.User.Email)

	w = suite.request(http.MethodPost, "/api/auth/register", nil, map[string]string{
		"name": "Again", "email": "fresh@example.com", "password": "secret1",
	})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email": "fresh@example.com", "password": "nope-nope",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email": "fresh@example.com", "password": "secret1",
	})
	suite.Require().Equal(http.StatusOK, w.Code)
	var login dto.AuthResponse
	suite.decode(w, &login)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set(constants.AuthorizationHeader, "Bearer "+login.AccessToken)
	w = suite.do(req, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var me dto.UserDTO
	suite.decode(w, &me)
	suite.Equal(registered.User.ID, me.ID)
}

func (suite *HandlerTestSuite) TestRegister_Validation() {
	w := suite.request(http.MethodPost, "/api/auth/register", nil, map[string]string{"email": "x@example.com"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(apierrors.ErrCodeInvalidInput, suite.errorCode(w))

	w = suite.request(http.MethodPost, "/api/auth/register", nil, map[string]string{
		"name": "Short", "email": "short@example.com", "password": "123",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestProtectedRoutesRequireToken() {
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/papers"},
		{http.MethodGet, "/api/papers/1/download"},
		{http.MethodGet, "/api/bookmarks"},
		{http.MethodGet, "/api/learning-goals"},
		{http.MethodPost, "/api/forum/posts"},
		{http.MethodGet, "/api/profile"},
		{http.MethodPost, "/api/ai/chat"},
	} {
		w := suite.request(route.method, route.path, nil, nil)
		suite.Equal(http.StatusUnauthorized, w.Code, route.path)
	}
}

// Resources

func (suite *HandlerTestSuite) TestUploadListDownloadView() {
	res := suite.uploadPaper(suite.student, "DBMS Endsem")
	suite.Equal(models.ResourceTypePaper, res.Type)
	suite.Equal([]string{"dbms", "sql"}, res.Tags)

	w := suite.request(http.MethodGet, "/api/papers?branch=CSE&q=dbms", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.ResourceListResponse
	suite.decode(w, &list)
	suite.Equal(int64(1), list.Pagination.Total)
	suite.Require().Len(list.Items, 1)

	w = suite.request(http.MethodGet, "/api/notes", nil, nil)
	suite.decode(w, &list)
	suite.Empty(list.Items)

	w = suite.request(http.MethodGet, "/api/papers/1/download", suite.other, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "attachment")
	suite.Contains(w.Header().Get("Content-Disposition"), "DBMS Endsem.pdf")
	suite.Equal("%PDF-1.4 test", w.Body.String())

	w = suite.request(http.MethodGet, "/api/papers/1/view", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Disposition"), "inline")

	var downloads int64
	suite.Require().NoError(suite.db.Model(&models.Download{}).Count(&downloads).Error)
	suite.Equal(int64(1), downloads)
}

func (suite *HandlerTestSuite) TestUpload_RejectsNonPDF() {
	req := suite.multipartRequest("/api/notes", "file", "notes.docx", []byte("doc"), map[string]string{
		"title": "Notes", "branch": "ECE",
	})
	w := suite.do(req, suite.student)
	suite.Equal(http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/notes", strings.NewReader("title=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = suite.do(req, suite.student)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpload_OversizedBodyIsFileTooLarge() {
	suite.resources.maxBodyBytes = 1 << 10

	req := suite.multipartRequest("/api/papers", "file", "big.pdf", bytes.Repeat([]byte("a"), 4<<10), map[string]string{
		"title": "Big", "branch": "CSE",
	})
	w := suite.do(req, suite.student)
	suite.Equal(http.StatusBadRequest, w.Code)

	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeInvalidInput, apiErr.Code)
	suite.Equal("File too large", apiErr.Message)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Paper{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *HandlerTestSuite) TestDownload_MissingFileIsNotFound() {
	res := suite.uploadPaper(suite.student, "Lost")
	var paper models.Paper
	suite.Require().NoError(suite.db.First(&paper, res.ID).Error)
	suite.Require().NoError(suite.blobs.Delete(context.Background(), paper.FilePath))

	w := suite.request(http.MethodGet, "/api/papers/1/download", suite.student, nil)
	suite.Equal(http.StatusNotFound, w.Code)
	var apiErr apierrors.APIError
	suite.decode(w, &apiErr)
	suite.Equal("File not found", apiErr.Message)

	w = suite.request(http.MethodGet, "/api/papers/99/download", suite.student, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, "/api/papers/abc", nil, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDelete_Permissions() {
	suite.uploadPaper(suite.student, "Owned")

	w := suite.request(http.MethodDelete, "/api/papers/1", suite.other, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal(apierrors.ErrCodeForbidden, suite.errorCode(w))

	w = suite.request(http.MethodDelete, "/api/papers/1", suite.admin, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/papers/1", nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

// Bookmarks and achievements

func (suite *HandlerTestSuite) TestBookmarks() {
	res := suite.uploadPaper(suite.other, "Bookmarked")
	body := map[string]interface{}{"resource_type": "paper", "resource_id": res.ID, "category": "revision"}

	w := suite.request(http.MethodPost, "/api/bookmarks", suite.student, body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.request(http.MethodPost, "/api/bookmarks", suite.student, body)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodGet, "/api/bookmarks/check/papers/1", suite.student, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var check dto.BookmarkCheckResponse
	suite.decode(w, &check)
	suite.True(check.Bookmarked)

	w = suite.request(http.MethodGet, "/api/achievements", suite.student, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var earned []dto.AchievementDTO
	suite.decode(w, &earned)
	suite.Require().Len(earned, 1)
	suite.Equal(achievements.FirstBookmark, earned[0].Type)

	w = suite.request(http.MethodDelete, "/api/bookmarks/paper/1", suite.student, nil)
	suite.Equal(http.StatusOK, w.Code)
	w = suite.request(http.MethodDelete, "/api/bookmarks/paper/1", suite.student, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, "/api/bookmarks/check/video/1", suite.student, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestAchievementCatalogIsPublic() {
	w := suite.request(http.MethodGet, "/api/achievements/catalog", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var catalog []map[string]interface{}
	suite.decode(w, &catalog)
	suite.Len(catalog, len(achievements.Catalog()))
	suite.NotContains(catalog[0], "Threshold")
}

// Learning goals

func (suite *HandlerTestSuite) TestGoals() {
	w := suite.request(http.MethodPost, "/api/learning-goals", suite.student, map[string]interface{}{"title": "Finish OS", "progress": 50})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var goal models.LearningGoal
	suite.decode(w, &goal)
	suite.False(goal.Completed)

	w = suite.request(http.MethodPut, "/api/learning-goals/1", suite.student, map[string]interface{}{"progress": 100})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &goal)
	suite.True(goal.Completed)

	w = suite.request(http.MethodPut, "/api/learning-goals/1", suite.student, map[string]interface{}{"progress": 150})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/learning-goals/1/toggle", suite.other, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, "/api/achievements", suite.student, nil)
	var earned []dto.AchievementDTO
	suite.decode(w, &earned)
	types := make([]achievements.Type, len(earned))
	for i, e := range earned {
		types[i] = e.Type
	}
	suite.ElementsMatch([]achievements.Type{achievements.GoalSetter, achievements.GoalAchiever}, types)

	w = suite.request(http.MethodDelete, "/api/learning-goals/1", suite.student, nil)
	suite.Equal(http.StatusOK, w.Code)
}

// Forum

func (suite *HandlerTestSuite) TestForumFlow() {
	w := suite.request(http.MethodPost, "/api/forum/posts", suite.student, map[string]interface{}{
		"title": "Kirchhoff's laws", "content": "KVL vs KCL?", "category": "electronics", "tags": []string{"circuits"},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var post dto.PostDTO
	suite.decode(w, &post)
	suite.Equal(suite.student.Name, post.Author.Name)

	suite.request(http.MethodGet, "/api/forum/posts/1", nil, nil)
	w = suite.request(http.MethodGet, "/api/forum/posts/1", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &post)
	suite.Equal(int64(2), post.Views)

	w = suite.request(http.MethodPost, "/api/forum/posts/1/replies", suite.other, map[string]string{"content": "KCL is about currents."})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodGet, "/api/forum/posts/1/replies", nil, nil)
	var replies []dto.ReplyDTO
	suite.decode(w, &replies)
	suite.Require().Len(replies, 1)
	suite.Equal(suite.other.ID, replies[0].Author.ID)

	w = suite.request(http.MethodGet, "/api/forum/posts?category=electronics", nil, nil)
	var list dto.PostListResponse
	suite.decode(w, &list)
	suite.Require().Len(list.Posts, 1)
	suite.Equal(int64(1), list.Posts[0].RepliesCount)

	w = suite.request(http.MethodPut, "/api/forum/posts/1", suite.other, map[string]string{"title": "Mine now"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodDelete, "/api/forum/posts/1", suite.student, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/forum/posts/1/replies", nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

// Profile

func (suite *HandlerTestSuite) TestProfilePhoto() {
	req := suite.multipartRequest("/api/profile/photo", "photo", "me.png", []byte("\x89PNG fake"), nil)
	w := suite.do(req, suite.student)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var me dto.UserDTO
	suite.decode(w, &me)
	suite.True(me.HasPhoto)

	w = suite.request(http.MethodGet, "/api/profile/photo/1", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("image/png", w.Header().Get("Content-Type"))
	suite.Equal("\x89PNG fake", w.Body.String())

	w = suite.request(http.MethodGet, "/api/profile/photo/2", nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodPut, "/api/profile/password", suite.student, map[string]string{
		"current_password": "wrong", "new_password": "newsecret",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, "/api/profile/stats", suite.student, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var stats dto.ProfileStatsDTO
	suite.decode(w, &stats)
	suite.Equal(int64(1), stats.TotalAchievements)
	suite.NotNil(stats.RecentDownloads)
}

// Chat

func (suite *HandlerTestSuite) TestChat_RemembersSession() {
	w := suite.request(http.MethodPost, "/api/ai/chat", suite.student, map[string]string{"message": "What is a BJT?"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var first dto.ChatResponse
	suite.decode(w, &first)
	suite.Equal("echo: What is a BJT?", first.Response)
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	payload, _ := json.Marshal(map[string]string{"message": "And a MOSFET?"})
	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w = suite.do(req, suite.student, cookies...)
	suite.Require().Equal(http.StatusOK, w.Code)
	var second dto.ChatResponse
	suite.decode(w, &second)
	suite.Equal(first.SessionID, second.SessionID)

	w = suite.request(http.MethodGet, "/api/ai/chat/history?session_id="+first.SessionID, suite.student, nil)
	var history []models.ChatMessage
	suite.decode(w, &history)
	suite.Len(history, 2)
}

func (suite *HandlerTestSuite) TestChat_UpstreamFailure() {
	suite.completer.err = errors.New("boom")

	w := suite.request(http.MethodPost, "/api/ai/chat", suite.student, map[string]string{"message": "hi", "sessionId": "s1"})
	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Equal(apierrors.ErrCodeUpstreamFailure, suite.errorCode(w))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.ChatMessage{}).Count(&count).Error)
	suite.Zero(count)
}

// Stats and health

func (suite *HandlerTestSuite) TestStatsAndHealth() {
	suite.uploadPaper(suite.student, "Counted")

	w := suite.request(http.MethodGet, "/api/stats", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var stats services.PlatformStats
	suite.decode(w, &stats)
	suite.Equal(int64(1), stats.TotalPapers)
	suite.Equal(int64(3), stats.TotalUsers)

	w = suite.request(http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

// TestHandlerTestSuite runs the test suite
func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
