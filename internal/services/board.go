package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"boardhub/internal/auth"
	"boardhub/internal/models"
	"boardhub/internal/store"
	"boardhub/internal/utils"

	"gorm.io/gorm"
)

const (
	cacheListPrefix   = "board:list:"
	cacheDetailPrefix = "board:detail:"
)

func invalidatePost(cache *utils.Cache, postID uint) {
	cache.Delete(fmt.Sprintf("%s%d", cacheDetailPrefix, postID))
	cache.DeletePrefix(cacheListPrefix)
}

type CreatePostInput struct {
	Title      string `json:"title"`
	Contents   string `json:"contents"`
	CategoryID uint   `json:"boardCategoryId"`
}

// UpdatePostInput carries the owner the client claims; it must match the caller.
type UpdatePostInput struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"userId"`
	Title      string `json:"title"`
	Contents   string `json:"contents"`
	CategoryID uint   `json:"boardCategoryId"`
}

type DeletePostInput struct {
	ID     uint `json:"id"`
	UserID uint `json:"userId"`
}

type BoardService struct {
	db       *gorm.DB
	verifier auth.Verifier
	posts    store.Posts
	cache    *utils.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewBoardService(db *gorm.DB, verifier auth.Verifier, posts store.Posts, cache *utils.Cache, cacheTTL time.Duration, logger *slog.Logger) *BoardService {
	return &BoardService{
		db:       db,
		verifier: verifier,
		posts:    posts,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// GetAll lists every visible post, newest first.
func (s *BoardService) GetAll(ctx context.Context) ([]models.PostSummary, error) {
	return s.list(ctx, 0)
}

func (s *BoardService) GetByCategory(ctx context.Context, categoryID uint) ([]models.PostSummary, error) {
	return s.list(ctx, categoryID)
}

func (s *BoardService) list(ctx context.Context, categoryID uint) ([]models.PostSummary, error) {
	key := fmt.Sprintf("%s%d", cacheListPrefix, categoryID)
	if cached, ok := s.cache.Get(key).([]models.PostSummary); ok {
		return slices.Clone(cached), nil
	}

	posts, err := s.posts.List(s.db.WithContext(ctx), categoryID)
	if err != nil {
		return nil, failure(s.logger, "list boards", err)
	}
	s.cache.Set(key, slices.Clone(posts), s.cacheTTL)
	return posts, nil
}

// GetOne returns a visible post with its contents rendered to HTML.
func (s *BoardService) GetOne(ctx context.Context, id uint) (*models.PostDetail, error) {
	key := fmt.Sprintf("%s%d", cacheDetailPrefix, id)
	// cached by value so callers each get their own copy
	if cached, ok := s.cache.Get(key).(models.PostDetail); ok {
		return &cached, nil
	}

	post, err := s.posts.Detail(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, failure(s.logger, "get board", err)
	}
	post.ContentsHTML = utils.RenderMarkdown(post.Contents)

	s.cache.Set(key, *post, s.cacheTTL)
	return post, nil
}

// GetForUpdate returns the post for its edit form, only to its owner.
func (s *BoardService) GetForUpdate(ctx context.Context, credential string, id uint) (Result, error) {
	ident, err := s.verifier.Verify(credential)
	if err != nil {
		return Result{}, failure(s.logger, "get board for update", err)
	}

	owner, err := s.posts.Owner(s.db.WithContext(ctx), id)
	if err != nil {
		return Result{}, failure(s.logger, "get board for update", err)
	}
	if !auth.Owns(owner, ident.UserID) {
		s.logger.Info("edit form requested by non-owner", "post", id, "user", ident.UserID)
		return mismatch(), nil
	}

	post, err := s.GetOne(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return ok(post), nil
}

func (s *BoardService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.posts.Categories(s.db.WithContext(ctx))
	if err != nil {
		return nil, failure(s.logger, "list categories", err)
	}
	return categories, nil
}

// Create stores a new post owned by the verified caller.
func (s *BoardService) Create(ctx context.Context, credential string, in CreatePostInput) (Result, error) {
	ident, err := s.verifier.Verify(credential)
	if err != nil {
		return Result{}, failure(s.logger, "create board", err)
	}

	post := &models.Post{
		UserID:     ident.UserID,
		CategoryID: in.CategoryID,
		Title:      in.Title,
		Contents:   in.Contents,
	}
	if err := s.posts.Create(s.db.WithContext(ctx), post); err != nil {
		return Result{}, failure(s.logger, "create board", err)
	}

	s.cache.DeletePrefix(cacheListPrefix)
	return ok(post.ID), nil
}

func (s *BoardService) Update(ctx context.Context, credential string, in UpdatePostInput) (Result, error) {
	ident, err := s.verifier.Verify(credential)
	if err != nil {
		return Result{}, failure(s.logger, "update board", err)
	}
	if !auth.Owns(in.UserID, ident.UserID) {
		return mismatch(), nil
	}

	n, err := s.posts.UpdateOwned(s.db.WithContext(ctx), store.PostChanges{
		ID:         in.ID,
		OwnerID:    ident.UserID,
		Title:      in.Title,
		Contents:   in.Contents,
		CategoryID: in.CategoryID,
	})
	if err != nil {
		return Result{}, failure(s.logger, "update board", err)
	}
	if n == 0 {
		return Result{Success: false, Message: MsgPostNotFound}, nil
	}

	invalidatePost(s.cache, in.ID)
	return ok(nil), nil
}

// Delete soft-deletes a post owned by the caller.
func (s *BoardService) Delete(ctx context.Context, credential string, in DeletePostInput) (Result, error) {
	ident, err := s.verifier.Verify(credential)
	if err != nil {
		return Result{}, failure(s.logger, "delete board", err)
	}
	if !auth.Owns(in.UserID, ident.UserID) {
		return mismatch(), nil
	}

	n, err := s.posts.SoftDeleteOwned(s.db.WithContext(ctx), in.ID, ident.UserID)
	if err != nil {
		return Result{}, failure(s.logger, "delete board", err)
	}
	if n == 0 {
		return Result{Success: false, Message: MsgPostNotFound}, nil
	}

	invalidatePost(s.cache, in.ID)
	return ok(nil), nil
}
