package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"boardhub/internal/auth"
	"boardhub/internal/dbtest"
	"boardhub/internal/handlers"
	"boardhub/internal/models"
	"boardhub/internal/router"
	"boardhub/internal/services"
	"boardhub/internal/store"
	"boardhub/internal/uow"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	jwt    *auth.JWT
}

type nopMailer struct{}

func (nopMailer) SendVerificationCode(string, string) error { return nil }

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	logger := dbtest.Logger()
	tokens := auth.NewJWT("handler-secret", "boardhub-test", time.Hour)
	units := uow.NewGormFactory(db, sql.LevelDefault, logger)
	posts := store.GormPosts{}

	boards := services.NewBoardService(db, tokens, posts, nil, 0, logger)
	recommends := services.NewRecommendService(units, tokens, posts, store.GormRecommends{}, nil, logger)
	comments := services.NewCommentService(db, tokens, store.GormComments{}, posts, logger)
	moderation := services.NewModerationService(db, units, tokens, posts, store.GormReports{}, nil, logger)
	users := services.NewUserService(db, store.GormUsers{}, nopMailer{}, tokens, auth.NewGoogleVerifier("", nil), bcrypt.MinCost, logger)

	engine := router.New(router.Handlers{
		Board:   handlers.NewBoardHandler(boards, recommends),
		Comment: handlers.NewCommentHandler(comments),
		Report:  handlers.NewReportHandler(moderation),
		User:    handlers.NewUserHandler(users),
	}, []string{"*"}, logger)

	return &testServer{engine: engine, db: db, jwt: tokens}
}

func (s *testServer) user(t *testing.T, name string, grade int) (*models.User, string) {
	t.Helper()

	u := &models.User{LoginID: name, Password: "x", Nickname: name, Email: name + "@example.com", Grade: grade}
	require.NoError(t, s.db.Create(u).Error)
	tok, err := s.jwt.Issue(u)
	require.NoError(t, err)
	return u, tok
}

func (s *testServer) post(t *testing.T, owner *models.User) *models.Post {
	t.Helper()

	p := &models.Post{UserID: owner.ID, CategoryID: 1, Title: "hello", Contents: "*hi*"}
	require.NoError(t, s.db.Create(p).Error)
	return p
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestRecommendEndpoint(t *testing.T) {
	s := newTestServer(t)
	u, tok := s.user(t, "alice", models.GradeMember)
	p := s.post(t, u)

	path := "/board/" + itoa(p.ID) + "/recommend"

	w := s.do(t, http.MethodPost, path, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[map[string]interface{}](t, w)
	assert.Equal(t, true, res["success"])
	assert.Equal(t, "create", res["msg"])
	assert.Equal(t, float64(1), res["recommendCount"])

	w = s.do(t, http.MethodPost, path, tok, nil)
	res = decode[map[string]interface{}](t, w)
	assert.Equal(t, "cancel", res["msg"])
	assert.Equal(t, float64(0), res["recommendCount"])

	w = s.do(t, http.MethodPost, "/board/9999/recommend", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCredentialErrors(t *testing.T) {
	s := newTestServer(t)
	u, _ := s.user(t, "alice", models.GradeMember)
	p := s.post(t, u)
	path := "/board/" + itoa(p.ID) + "/recommend"

	w := s.do(t, http.MethodPost, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, path, "forged.token.value", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var n int64
	require.NoError(t, s.db.Model(&models.Recommend{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpdateMismatchIsNotAnError(t *testing.T) {
	s := newTestServer(t)
	owner, _ := s.user(t, "owner", models.GradeMember)
	_, otherTok := s.user(t, "other", models.GradeMember)
	p := s.post(t, owner)

	w := s.do(t, http.MethodPatch, "/board", otherTok, services.UpdatePostInput{
		ID: p.ID, UserID: owner.ID, Title: "mine now", CategoryID: 1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[services.Result](t, w)
	assert.False(t, res.Success)
	assert.Equal(t, services.MsgIdentityMismatch, res.Message)
}

func TestBoardReads(t *testing.T) {
	s := newTestServer(t)
	u, _ := s.user(t, "alice", models.GradeMember)
	p := s.post(t, u)

	w := s.do(t, http.MethodGet, "/board", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.PostSummary](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "alice", list[0].Nickname)

	w = s.do(t, http.MethodGet, "/board/"+itoa(p.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[models.PostDetail](t, w)
	assert.Contains(t, detail.ContentsHTML, "<em>hi</em>")

	w = s.do(t, http.MethodGet, "/board/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/board/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/board/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Category](t, w), 4)
}

func TestBanEndpoint(t *testing.T) {
	s := newTestServer(t)
	author, authorTok := s.user(t, "author", models.GradeMember)
	_, modTok := s.user(t, "mod", models.GradeModerator)
	p := s.post(t, author)

	w := s.do(t, http.MethodPost, "/report", authorTok, services.SubmitReportInput{PostID: p.ID, Reason: "spam"})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[services.Result](t, w)
	require.True(t, res.Success)
	reportID := uint(res.Data.(float64))

	ban := services.BanInput{PostID: p.ID, ReportID: reportID}

	w = s.do(t, http.MethodPost, "/report/ban", authorTok, ban)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/report/ban", modTok, ban)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[services.Result](t, w).Success)

	w = s.do(t, http.MethodGet, "/board/"+itoa(p.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	s := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&models.User{
		LoginID: "ivan", Password: string(hash), Nickname: "ivan", Email: "ivan@example.com",
		LoginType: models.LoginTypeLocal, Grade: models.GradeMember,
	}).Error)

	w := s.do(t, http.MethodPost, "/user/login", "", map[string]string{"userId": "ivan", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.True(t, res.Success)

	ident, err := s.jwt.Verify(res.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ivan", ident.Nickname)

	w = s.do(t, http.MethodPost, "/user/login", "", map[string]string{"userId": "ivan"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
