package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collegeconnect/backend/internal/models"
	"github.com/collegeconnect/backend/internal/utils"
)

type PortfolioRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Portfolio, error)
	// GetOwned returns the item only when it belongs to userID.
	GetOwned(ctx context.Context, id, userID string) (*models.Portfolio, error)
	Create(ctx context.Context, item *models.Portfolio) error
	Save(ctx context.Context, item *models.Portfolio) error
	Delete(ctx context.Context, id string) error
}

type portfolioRepo struct {
	db *gorm.DB
}

func NewPortfolioRepo(db *gorm.DB) PortfolioRepository {
	return &portfolioRepo{db: db}
}

func (r *portfolioRepo) ListByUser(ctx context.Context, userID string) ([]models.Portfolio, error) {
	var out []models.Portfolio
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *portfolioRepo) GetOwned(ctx context.Context, id, userID string) (*models.Portfolio, error) {
	var item models.Portfolio
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *portfolioRepo) Create(ctx context.Context, item *models.Portfolio) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *portfolioRepo) Save(ctx context.Context, item *models.Portfolio) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *portfolioRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Portfolio{}).Error
}
