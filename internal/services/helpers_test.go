package services

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"boardhub/internal/auth"
	"boardhub/internal/dbtest"
	"boardhub/internal/models"
	"boardhub/internal/uow"
	"boardhub/internal/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type fixture struct {
	db     *gorm.DB
	jwt    *auth.JWT
	units  uow.Factory
	cache  *utils.Cache
	freeID uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	cache, err := utils.NewCache(100)
	require.NoError(t, err)

	var free models.Category
	require.NoError(t, db.Where("category = ?", "free").Take(&free).Error)

	return &fixture{
		db:     db,
		jwt:    auth.NewJWT(testSecret, "boardhub-test", time.Hour),
		units:  uow.NewGormFactory(db, sql.LevelDefault, dbtest.Logger()),
		cache:  cache,
		freeID: free.ID,
	}
}

func (f *fixture) user(t *testing.T, name string, grade int) *models.User {
	t.Helper()

	u := &models.User{
		LoginID:   name,
		Password:  "x",
		Nickname:  name,
		Email:     fmt.Sprintf("%s@example.com", name),
		LoginType: models.LoginTypeLocal,
		Grade:     grade,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) token(t *testing.T, u *models.User) string {
	t.Helper()

	tok, err := f.jwt.Issue(u)
	require.NoError(t, err)
	return tok
}

func (f *fixture) post(t *testing.T, owner *models.User, title string) *models.Post {
	t.Helper()

	p := &models.Post{
		UserID:     owner.ID,
		CategoryID: f.freeID,
		Title:      title,
		Contents:   "contents of " + title,
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func (f *fixture) reload(t *testing.T, p *models.Post) *models.Post {
	t.Helper()

	var got models.Post
	require.NoError(t, f.db.Take(&got, p.ID).Error)
	return &got
}

func (f *fixture) recommendRows(t *testing.T, postID uint) []models.Recommend {
	t.Helper()

	var rows []models.Recommend
	require.NoError(t, f.db.Where("post_id = ?", postID).Find(&rows).Error)
	return rows
}
