package services

import (
	"context"
	"fmt"
	"log/slog"

	"boardhub/internal/auth"
	"boardhub/internal/store"
	"boardhub/internal/uow"
	"boardhub/internal/utils"

	"gorm.io/gorm"
)

// Toggle outcomes
const (
	MsgRecommendCreate     = "create"
	MsgRecommendCancel     = "cancel"
	MsgRecommendReactivate = "reactivate"
)

type RecommendResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"msg"`
	RecommendCount int64  `json:"recommendCount"`
}

// RecommendService flips a user's recommendation of a post.
type RecommendService struct {
	units    uow.Factory
	verifier auth.Verifier
	posts    store.Posts
	recs     store.Recommends
	cache    *utils.Cache
	logger   *slog.Logger
}

func NewRecommendService(units uow.Factory, verifier auth.Verifier, posts store.Posts, recs store.Recommends, cache *utils.Cache, logger *slog.Logger) *RecommendService {
	return &RecommendService{
		units:    units,
		verifier: verifier,
		posts:    posts,
		recs:     recs,
		cache:    cache,
		logger:   logger,
	}
}

// Toggle moves the (post, caller) pair to its next state: absent -> active,
// active -> inactive, inactive -> active. The returned count is read from the
// recommendation rows inside the same transaction. Banned, deleted and missing posts
// give ErrNotFound.
func (s *RecommendService) Toggle(ctx context.Context, postID uint, credential string) (RecommendResult, error) {
	var res RecommendResult

	err := uow.Do(ctx, s.units, func(tx *gorm.DB) error {
		ident, err := s.verifier.Verify(credential)
		if err != nil {
			return err
		}

		if _, err := s.posts.Owner(tx, postID); err != nil {
			return err
		}

		rec, err := s.recs.Find(tx, postID, ident.UserID)
		if err != nil {
			return fmt.Errorf("find recommend: %w", err)
		}

		switch {
		case rec == nil:
			err = s.recs.Insert(tx, postID, ident.UserID)
			res.Message = MsgRecommendCreate
		case rec.Active:
			err = s.recs.SetActive(tx, postID, ident.UserID, false)
			res.Message = MsgRecommendCancel
		default:
			err = s.recs.SetActive(tx, postID, ident.UserID, true)
			res.Message = MsgRecommendReactivate
		}
		if err != nil {
			return fmt.Errorf("%s recommend: %w", res.Message, err)
		}

		count, err := s.recs.CountActive(tx, postID)
		if err != nil {
			return fmt.Errorf("count recommend: %w", err)
		}

		res.Success = true
		res.RecommendCount = count
		return nil
	})
	if err != nil {
		return RecommendResult{}, failure(s.logger, "toggle recommend", err)
	}

	invalidatePost(s.cache, postID)
	return res, nil
}
