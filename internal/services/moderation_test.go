package services

import (
	"context"
	"errors"
	"testing"

	"boardhub/internal/auth"
	"boardhub/internal/dbtest"
	"boardhub/internal/models"
	"boardhub/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (f *fixture) moderationService(reports store.Reports) *ModerationService {
	return NewModerationService(f.db, f.units, f.jwt, store.GormPosts{}, reports, f.cache, dbtest.Logger())
}

func (f *fixture) report(t *testing.T, p *models.Post, reporter *models.User) *models.Report {
	t.Helper()

	r := &models.Report{PostID: p.ID, UserID: reporter.ID, Reason: "spam"}
	require.NoError(t, f.db.Create(r).Error)
	return r
}

func (f *fixture) reloadReport(t *testing.T, r *models.Report) *models.Report {
	t.Helper()

	var got models.Report
	require.NoError(t, f.db.Take(&got, r.ID).Error)
	return &got
}

func TestBanHidesPostAndClosesReport(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author", models.GradeMember)
	reporter := f.user(t, "reporter", models.GradeMember)
	mod := f.user(t, "mod", models.GradeModerator)
	p := f.post(t, author, "offending")
	r := f.report(t, p, reporter)
	svc := f.moderationService(store.GormReports{})

	res, err := svc.Ban(context.Background(), f.token(t, mod), BanInput{PostID: p.ID, ReportID: r.ID})
	require.NoError(t, err)
	assert.True(t, res.Success)

	assert.True(t, f.reload(t, p).Banned)
	got := f.reloadReport(t, r)
	assert.True(t, got.Deleted)
	assert.True(t, got.Checked)

	list, err := f.boardService().GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

type failingClose struct {
	store.Reports
}

func (failingClose) MarkDeleted(*gorm.DB, uint, uint) (int64, error) {
	return 0, errors.New("disk on fire")
}

func TestBanRollsBackWhenReportCloseFails(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author", models.GradeMember)
	mod := f.user(t, "mod", models.GradeModerator)
	p := f.post(t, author, "offending")
	r := f.report(t, p, author)

	_, err := f.moderationService(failingClose{store.GormReports{}}).
		Ban(context.Background(), f.token(t, mod), BanInput{PostID: p.ID, ReportID: r.ID})
	require.ErrorIs(t, err, ErrTransactionFailure)

	assert.False(t, f.reload(t, p).Banned)
	assert.False(t, f.reloadReport(t, r).Deleted)
}

func TestBanReportMismatch(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author", models.GradeMember)
	mod := f.user(t, "mod", models.GradeModerator)
	p := f.post(t, author, "offending")
	other := f.post(t, author, "innocent")
	r := f.report(t, other, mod)
	svc := f.moderationService(store.GormReports{})

	res, err := svc.Ban(context.Background(), f.token(t, mod), BanInput{PostID: p.ID, ReportID: r.ID})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MsgReportNotFound, res.Message)
	assert.False(t, f.reload(t, p).Banned)

	res, err = svc.Ban(context.Background(), f.token(t, mod), BanInput{PostID: p.ID + 100, ReportID: r.ID})
	require.NoError(t, err)
	assert.Equal(t, MsgPostNotFound, res.Message)
	assert.False(t, f.reloadReport(t, r).Deleted)
}

func TestModerationRequiresModerator(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author", models.GradeMember)
	p := f.post(t, author, "offending")
	r := f.report(t, p, author)
	svc := f.moderationService(store.GormReports{})

	_, err := svc.Ban(context.Background(), f.token(t, author), BanInput{PostID: p.ID, ReportID: r.ID})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, f.reload(t, p).Banned)

	_, err = svc.ListOpen(context.Background(), f.token(t, author))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ListOpen(context.Background(), "bogus")
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)
}

func TestSubmitAndListReports(t *testing.T) {
	f := newFixture(t)
	author := f.user(t, "author", models.GradeMember)
	reporter := f.user(t, "reporter", models.GradeMember)
	mod := f.user(t, "mod", models.GradeModerator)
	p := f.post(t, author, "questionable")
	svc := f.moderationService(store.GormReports{})

	res, err := svc.Submit(context.Background(), f.token(t, reporter), SubmitReportInput{PostID: p.ID, Reason: "rude"})
	require.NoError(t, err)
	require.True(t, res.Success)

	_, err = svc.Submit(context.Background(), f.token(t, reporter), SubmitReportInput{PostID: p.ID + 100, Reason: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)

	reports, err := svc.ListOpen(context.Background(), f.token(t, mod))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, reporter.ID, reports[0].UserID)
	assert.Equal(t, "rude", reports[0].Reason)
}
