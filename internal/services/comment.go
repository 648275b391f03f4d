package services

import (
	"context"
	"log/slog"

	"boardhub/internal/auth"
	"boardhub/internal/models"
	"boardhub/internal/store"

	"gorm.io/gorm"
)

type CreateCommentInput struct {
	PostID   uint   `json:"boardId"`
	Contents string `json:"contents"`
}

type UpdateCommentInput struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"userId"`
	Contents string `json:"contents"`
}

type DeleteCommentInput struct {
	ID     uint `json:"id"`
	UserID uint `json:"userId"`
}

type CommentService struct {
	db       *gorm.DB
	verifier auth.Verifier
	comments store.Comments
	posts    store.Posts
	logger   *slog.Logger
}

func NewCommentService(db *gorm.DB, verifier auth.Verifier, comments store.Comments, posts store.Posts, logger *slog.Logger) *CommentService {
	return &CommentService{
		db:       db,
		verifier: verifier,
		comments: comments,
		posts:    posts,
		logger:   logger,
	}
}

func (s *CommentService) List(ctx context.Context, postID uint) ([]models.CommentView, error) {
	comments, err := s.comments.List(s.db.WithContext(ctx), postID)
	if err != nil {
		return nil, failure(s.logger, "list comments", err)
	}
	return comments, nil
}

// Create adds a comment by the caller to a visible post.
func (s *CommentService) Create(ctx context.Context, credential string, in CreateCommentInput) (Result, error) {
	ident, err := s.verifier.Verify(credential)
	if err != nil {
		return Result{}, failure(s.logger, "create comment", err)
	}

	db := s.db.WithContext(ctx)
	if _, err := s.posts.Owner(db, in.PostID); err != nil {
		return Result{}, failure(s.logger, "create comment", err)
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		UserID:   ident.UserID,
		Contents: in.Contents,
	}
	if err := s.comments.Create(db, comment); err != nil {
		return Result{}, failure(s.logger, "create comment", err)
	}
	return ok(comment.ID), nil
}

func (s *CommentService) Update(ctx context.Context, credential string, in UpdateCommentInput) (Result, error) {
	ident, err := s.verifier.Verify(credential)
	if err != nil {
		return Result{}, failure(s.logger, "update comment", err)
	}
	if !auth.Owns(in.UserID, ident.UserID) {
		return mismatch(), nil
	}

	n, err := s.comments.UpdateOwned(s.db.WithContext(ctx), in.ID, ident.UserID, in.Contents)
	if err != nil {
		return Result{}, failure(s.logger, "update comment", err)
	}
	if n == 0 {
		return Result{Success: false, Message: MsgCommentNotFound}, nil
	}
	return ok(nil), nil
}

func (s *CommentService) Delete(ctx context.Context, credential string, in DeleteCommentInput) (Result, error) {
	ident, err := s.verifier.Verify(credential)
	if err != nil {
		return Result{}, failure(s.logger, "delete comment", err)
	}
	if !auth.Owns(in.UserID, ident.UserID) {
		return mismatch(), nil
	}

	n, err := s.comments.SoftDeleteOwned(s.db.WithContext(ctx), in.ID, ident.UserID)
	if err != nil {
		return Result{}, failure(s.logger, "delete comment", err)
	}
	if n == 0 {
		return Result{Success: false, Message: MsgCommentNotFound}, nil
	}
	return ok(nil), nil
}
