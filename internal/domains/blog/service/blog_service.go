package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blogify-backend/internal/domains/blog"
	"blogify-backend/pkg/logger"
)

// CommentCounter provides comment counts for blog listings without coupling
// this package to the comment domain. Implemented by the comment repository.
type CommentCounter interface {
	CountByBlogIDs(ctx context.Context, blogIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type blogService struct {
	repo     blog.Repository
	comments CommentCounter
}

// NewBlogService creates the blog business logic layer.
func NewBlogService(repo blog.Repository, comments CommentCounter) blog.Service {
	return &blogService{
		repo:     repo,
		comments: comments,
	}
}

func (s *blogService) Create(ctx context.Context, authorID uuid.UUID, req blog.CreateBlogRequest) (*blog.BlogDTO, error) {
	status := blog.Status(req.Status)
	if req.Status == "" {
		status = blog.StatusDraft
	}

	b := &blog.Blog{
		AuthorID: authorID,
		Title:    req.Title,
		Content:  req.Content,
		Status:   status,
	}
	if status == blog.StatusPublished {
		now := time.Now()
		b.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	logger.Info("Blog created", map[string]interface{}{
		"blog_id":   b.ID.String(),
		"author_id": authorID.String(),
		"status":    string(b.Status),
	})

	dto := b.ToDTO()
	return &dto, nil
}

func (s *blogService) List(ctx context.Context, viewerID uuid.UUID, query blog.ListBlogsQuery) (*blog.ListBlogsResponse, error) {
	query.Normalize()
	scope := blog.ResolveScope(query.Scope, viewerID)
	offset := (query.Page - 1) * query.PageSize

	blogs, total, err := s.repo.List(ctx, viewerID, scope, query.PageSize, offset)
	if err != nil {
		return nil, err
	}

	counts, err := s.commentCounts(ctx, blogs)
	if err != nil {
		return nil, err
	}

	dtos := make([]blog.BlogDTO, 0, len(blogs))
	for i := range blogs {
		dto := blogs[i].ToDTO()
		dto.CommentCount = counts[blogs[i].ID]
		dtos = append(dtos, dto)
	}

	return &blog.ListBlogsResponse{
		Blogs:      dtos,
		Page:       query.Page,
		PageSize:   query.PageSize,
		TotalCount: total,
	}, nil
}

func (s *blogService) Get(ctx context.Context, id, viewerID uuid.UUID) (*blog.BlogDTO, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.CanView(viewerID) {
		return nil, blog.ErrDraftForbidden
	}

	// The bump is part of the read: the count must be durable before the
	// response goes out, so a failed increment fails the request.
	if b.CountsView(viewerID) {
		if err := s.repo.IncrementViewCount(ctx, b.ID); err != nil {
			return nil, err
		}
		b.ViewCount++
	}

	counts, err := s.commentCounts(ctx, []blog.Blog{*b})
	if err != nil {
		return nil, err
	}

	dto := b.ToDTO()
	dto.CommentCount = counts[b.ID]
	return &dto, nil
}

func (s *blogService) Update(ctx context.Context, id, authorID uuid.UUID, req blog.UpdateBlogRequest) (*blog.BlogDTO, error) {
	// Author-scoped lookup: non-authors get not-found, never forbidden, so
	// the existence of other users' drafts is not revealed.
	b, err := s.repo.FindByIDAndAuthor(ctx, id, authorID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.Status != nil {
		next := blog.Status(*req.Status)
		if err := b.ValidateTransition(next); err != nil {
			return nil, err
		}
		if next == blog.StatusPublished && b.PublishedAt == nil {
			now := time.Now()
			b.PublishedAt = &now
		}
		b.Status = next
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	logger.Info("Blog updated", map[string]interface{}{
		"blog_id": b.ID.String(),
		"status":  string(b.Status),
	})

	dto := b.ToDTO()
	return &dto, nil
}

func (s *blogService) Delete(ctx context.Context, id, authorID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, authorID); err != nil {
		return err
	}

	logger.Info("Blog deleted", map[string]interface{}{
		"blog_id":   id.String(),
		"author_id": authorID.String(),
	})
	return nil
}

func (s *blogService) commentCounts(ctx context.Context, blogs []blog.Blog) (map[uuid.UUID]int64, error) {
	if len(blogs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	ids := make([]uuid.UUID, 0, len(blogs))
	for i := range blogs {
		ids = append(ids, blogs[i].ID)
	}
	return s.comments.CountByBlogIDs(ctx, ids)
}
