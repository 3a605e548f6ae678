package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/collegeconnect/backend/internal/models"
	"github.com/collegeconnect/backend/internal/utils"
)

type FeedParams struct {
	CollegeID *string
	Category  string // empty or "ALL" = no filter
	Offset    int
	Limit     int
}

type PostRepository interface {
	Feed(ctx context.Context, p FeedParams) ([]models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByIDWithAuthor(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error

	// LikedPostIDs returns which of postIDs the user has liked.
	LikedPostIDs(ctx context.Context, userID string, postIDs []uint) (map[uint]bool, error)
	HasLiked(ctx context.Context, userID string, postID uint) (bool, error)
	// ToggleLike flips the like state; the Like row and likes_count move in
	// the same transaction so the counter cannot drift from its rows.
	ToggleLike(ctx context.Context, userID string, postID uint) (liked bool, likesCount int, err error)

	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	GetComment(ctx context.Context, id uint) (*models.Comment, error)
	// AddComment inserts the comment and bumps comments_count transactionally.
	AddComment(ctx context.Context, comment *models.Comment) error
}

type postRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func authorPreload(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "role")
}

func (r *postRepo) Feed(ctx context.Context, p FeedParams) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if p.CollegeID != nil {
		q = q.Where("college_id = ?", *p.CollegeID)
	}
	if p.Category != "" && p.Category != "ALL" {
		q = q.Where("category = ?", p.Category)
	}

	var posts []models.Post
	err := q.Order("created_at DESC").
		Offset(p.Offset).
		Limit(p.Limit).
		Preload("User", authorPreload).
		Preload("User.Profile").
		Find(&posts).Error
	return posts, err
}

func (r *postRepo) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) GetByIDWithAuthor(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User", authorPreload).
		Preload("User.Profile").
		Where("id = ?", id).
		Take(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// child rows first, then the post
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
}

func (r *postRepo) LikedPostIDs(ctx context.Context, userID string, postIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *postRepo) HasLiked(ctx context.Context, userID string, postID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&n).Error
	return n > 0, err
}

func (r *postRepo) ToggleLike(ctx context.Context, userID string, postID uint) (bool, int, error) {
	var liked bool
	var count int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like models.Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).Take(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Like{UserID: userID, PostID: postID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		var post models.Post
		if err := tx.Select("likes_count").Where("id = ?", postID).Take(&post).Error; err != nil {
			return err
		}
		count = post.LikesCount
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

func (r *postRepo) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var out []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") }).
		Preload("User.Profile").
		Find(&out).Error
	return out, err
}

func (r *postRepo) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") }).
		Preload("User.Profile").
		Where("id = ?", id).
		Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postRepo) AddComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}
