package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collegeconnect/backend/internal/models"
	"github.com/collegeconnect/backend/internal/utils"
)

// NameRef is the id+name shape the autocomplete endpoints return.
type NameRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogRepository covers the global company and skill catalogs.
type CatalogRepository interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	GetCompany(ctx context.Context, id string) (*models.Company, error)
	CreateCompany(ctx context.Context, c *models.Company) error
	SaveCompany(ctx context.Context, c *models.Company) error
	DeleteCompany(ctx context.Context, id string) error
	SearchCompanies(ctx context.Context, query string, limit int) ([]NameRef, error)
	// CompaniesEmployingSkill lists companies where users matching the skill
	// (scoped to collegeID unless nil) have recorded experience.
	CompaniesEmployingSkill(ctx context.Context, skillLike string, collegeID *string) ([]models.Company, error)

	ListSkills(ctx context.Context) ([]models.Skill, error)
	GetSkill(ctx context.Context, id string) (*models.Skill, error)
	CreateSkill(ctx context.Context, s *models.Skill) error
	SaveSkill(ctx context.Context, s *models.Skill) error
	DeleteSkill(ctx context.Context, id string) error
	SearchSkills(ctx context.Context, query string, limit int) ([]NameRef, error)
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var out []models.Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *catalogRepo) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *catalogRepo) CreateCompany(ctx context.Context, c *models.Company) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogRepo) SaveCompany(ctx context.Context, c *models.Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *catalogRepo) DeleteCompany(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Company{}).Error
}

func (r *catalogRepo) SearchCompanies(ctx context.Context, query string, limit int) ([]NameRef, error) {
	var out []NameRef
	err := r.db.WithContext(ctx).
		Model(&models.Company{}).
		Select("id, name").
		Where("name LIKE ?", "%"+query+"%").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *catalogRepo) CompaniesEmployingSkill(ctx context.Context, skillLike string, collegeID *string) ([]models.Company, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Company{}).
		Distinct("companies.*").
		Joins("JOIN experiences ON experiences.company_id = companies.id").
		Joins("JOIN users ON users.id = experiences.user_id").
		Joins("JOIN user_skills ON user_skills.user_id = users.id").
		Joins("JOIN skills ON skills.id = user_skills.skill_id").
		Where("skills.name LIKE ?", "%"+skillLike+"%")
	if collegeID != nil {
		q = q.Where("users.college_id = ?", *collegeID)
	}

	var out []models.Company
	err := q.Find(&out).Error
	return out, err
}

func (r *catalogRepo) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var out []models.Skill
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *catalogRepo) GetSkill(ctx context.Context, id string) (*models.Skill, error) {
	var s models.Skill
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *catalogRepo) CreateSkill(ctx context.Context, s *models.Skill) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *catalogRepo) SaveSkill(ctx context.Context, s *models.Skill) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *catalogRepo) DeleteSkill(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Skill{}).Error
}

func (r *catalogRepo) SearchSkills(ctx context.Context, query string, limit int) ([]NameRef, error) {
	var out []NameRef
	err := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Select("id, name").
		Where("name LIKE ?", "%"+query+"%").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
