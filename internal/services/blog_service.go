package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/clinichq/clinic-backend/internal/dto"
	"github.com/clinichq/clinic-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("blog post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrBodyRequired    = errors.New("body is required")
	ErrContentRejected = errors.New("content rejected by moderation")
)

type BlogService struct {
	db         *gorm.DB
	moderation *ModerationService
}

func NewBlogService(db *gorm.DB, moderation *ModerationService) *BlogService {
	return &BlogService{db: db, moderation: moderation}
}

func (s *BlogService) Create(authorID uuid.UUID, req *dto.CreateBlogPostRequest) (*models.BlogPost, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrBodyRequired
	}
	if ok, reason := s.moderation.FilterContent(req.Title + " " + req.Body); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.moderation.GetRejectionMessage(reason))
	}

	post := models.BlogPost{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Title:     req.Title,
		Body:      req.Body,
		CoverURL:  req.CoverURL,
		Published: true,
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}

	return &post, nil
}

// ListPublished returns published posts, newest first. Unpublished drafts
// only show up in the admin listing.
func (s *BlogService) ListPublished() ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := s.db.Where("published = true").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, nil
}

func (s *BlogService) Get(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.db.Preload("Comments").First(&post, "id = ? AND published = true", id).Error; err != nil {
		return nil, ErrPostNotFound
	}
	return &post, nil
}

// Update patches a post, author-or-admin only.
func (s *BlogService) Update(id, callerID uuid.UUID, callerRole models.Role, req *dto.UpdateBlogPostRequest) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		return nil, ErrPostNotFound
	}

	if callerRole != models.RoleAdmin && post.AuthorID != callerID {
		return nil, ErrNotOwner
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, ErrBodyRequired
		}
		updates["body"] = *req.Body
	}
	if req.CoverURL != nil {
		updates["cover_url"] = *req.CoverURL
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}

	if text, ok := updates["title"].(string); ok {
		if allowed, reason := s.moderation.FilterContent(text); !allowed {
			return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.moderation.GetRejectionMessage(reason))
		}
	}
	if text, ok := updates["body"].(string); ok {
		if allowed, reason := s.moderation.FilterContent(text); !allowed {
			return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.moderation.GetRejectionMessage(reason))
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&post).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update blog post: %w", err)
		}
	}

	return &post, nil
}

func (s *BlogService) Delete(id, callerID uuid.UUID, callerRole models.Role) error {
	var post models.BlogPost
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		return ErrPostNotFound
	}

	if callerRole != models.RoleAdmin && post.AuthorID != callerID {
		return ErrNotOwner
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

func (s *BlogService) AddComment(postID, authorID uuid.UUID, req *dto.CreateCommentRequest) (*models.Comment, error) {
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrBodyRequired
	}
	if ok, reason := s.moderation.FilterContent(req.Body); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.moderation.GetRejectionMessage(reason))
	}

	var post models.BlogPost
	if err := s.db.First(&post, "id = ? AND published = true", postID).Error; err != nil {
		return nil, ErrPostNotFound
	}

	comment := models.Comment{
		ID:       uuid.New(),
		PostID:   post.ID,
		AuthorID: authorID,
		Body:     req.Body,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &comment, nil
}

func (s *BlogService) ListComments(postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment, author-or-admin only.
func (s *BlogService) DeleteComment(postID, commentID, callerID uuid.UUID, callerRole models.Role) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ? AND post_id = ?", commentID, postID).Error; err != nil {
		return ErrCommentNotFound
	}

	if callerRole != models.RoleAdmin && comment.AuthorID != callerID {
		return ErrNotOwner
	}

	return s.db.Delete(&comment).Error
}
