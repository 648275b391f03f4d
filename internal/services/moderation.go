package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"boardhub/internal/auth"
	"boardhub/internal/models"
	"boardhub/internal/store"
	"boardhub/internal/uow"
	"boardhub/internal/utils"

	"gorm.io/gorm"
)

var (
	errBanMissed    = errors.New("no post banned")
	errReportMissed = errors.New("no report closed")
)

type SubmitReportInput struct {
	PostID uint   `json:"boardId"`
	Reason string `json:"reason"`
}

type BanInput struct {
	PostID   uint `json:"boardId"`
	ReportID uint `json:"boardNotifyId"`
}

// ModerationService takes reports from users and lets moderators act on them.
type ModerationService struct {
	db       *gorm.DB
	units    uow.Factory
	verifier auth.Verifier
	posts    store.Posts
	reports  store.Reports
	cache    *utils.Cache
	logger   *slog.Logger
}

func NewModerationService(db *gorm.DB, units uow.Factory, verifier auth.Verifier, posts store.Posts, reports store.Reports, cache *utils.Cache, logger *slog.Logger) *ModerationService {
	return &ModerationService{
		db:       db,
		units:    units,
		verifier: verifier,
		posts:    posts,
		reports:  reports,
		cache:    cache,
		logger:   logger,
	}
}

// Submit files a report against a visible post on behalf of the caller.
func (s *ModerationService) Submit(ctx context.Context, credential string, in SubmitReportInput) (Result, error) {
	ident, err := s.verifier.Verify(credential)
	if err != nil {
		return Result{}, failure(s.logger, "submit report", err)
	}

	db := s.db.WithContext(ctx)
	if _, err := s.posts.Owner(db, in.PostID); err != nil {
		return Result{}, failure(s.logger, "submit report", err)
	}

	report := &models.Report{
		PostID: in.PostID,
		UserID: ident.UserID,
		Reason: in.Reason,
	}
	if err := s.reports.Create(db, report); err != nil {
		return Result{}, failure(s.logger, "submit report", err)
	}
	return ok(report.ID), nil
}

func (s *ModerationService) moderator(credential string) (auth.Identity, error) {
	ident, err := s.verifier.Verify(credential)
	if err != nil {
		return auth.Identity{}, err
	}
	if !ident.IsModerator() {
		return auth.Identity{}, ErrForbidden
	}
	return ident, nil
}

func (s *ModerationService) ListOpen(ctx context.Context, credential string) ([]models.Report, error) {
	if _, err := s.moderator(credential); err != nil {
		return nil, failure(s.logger, "list reports", err)
	}

	reports, err := s.reports.ListOpen(s.db.WithContext(ctx))
	if err != nil {
		return nil, failure(s.logger, "list reports", err)
	}
	return reports, nil
}

// Ban hides the reported post and closes the report in one transaction. Neither change
// is kept unless both apply.
func (s *ModerationService) Ban(ctx context.Context, credential string, in BanInput) (Result, error) {
	ident, err := s.moderator(credential)
	if err != nil {
		return Result{}, failure(s.logger, "ban board", err)
	}

	err = uow.Do(ctx, s.units, func(tx *gorm.DB) error {
		n, err := s.posts.Ban(tx, in.PostID)
		if err != nil {
			return fmt.Errorf("ban post: %w", err)
		}
		if n == 0 {
			return errBanMissed
		}

		n, err = s.reports.MarkDeleted(tx, in.ReportID, in.PostID)
		if err != nil {
			return fmt.Errorf("close report: %w", err)
		}
		if n == 0 {
			return errReportMissed
		}
		return nil
	})
	switch {
	case errors.Is(err, errBanMissed):
		return Result{Success: false, Message: MsgPostNotFound}, nil
	case errors.Is(err, errReportMissed):
		return Result{Success: false, Message: MsgReportNotFound}, nil
	case err != nil:
		return Result{}, failure(s.logger, "ban board", err)
	}

	s.logger.Info("post banned", "post", in.PostID, "report", in.ReportID, "moderator", ident.UserID)
	invalidatePost(s.cache, in.PostID)
	return ok(nil), nil
}
