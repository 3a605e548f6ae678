package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collegeconnect/backend/internal/models"
	"github.com/collegeconnect/backend/internal/utils"
)

// CollegeWithAdmins is a college plus the number of COLLEGE_ADMIN accounts it
// has, as shown on the super-admin console.
type CollegeWithAdmins struct {
	models.College
	AdminCount int64 `json:"adminCount"`
}

// Duplicate sentinels so the service layer can map uniqueness failures to the
// documented 400 messages without knowing the driver.
var (
	ErrSubdomainTaken  = errors.New("subdomain already exists")
	ErrAdminEmailTaken = errors.New("admin email already exists")
)

type CollegeRepository interface {
	FindByID(ctx context.Context, id string) (*models.College, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*models.College, error)
	ListWithAdminCounts(ctx context.Context) ([]CollegeWithAdmins, error)
	// CreateWithAdmin creates the college and, when admin is non-nil, its
	// first COLLEGE_ADMIN in one transaction. Either both land or neither.
	CreateWithAdmin(ctx context.Context, college *models.College, admin *models.User) error
}

type collegeRepo struct {
	db *gorm.DB
}

func NewCollegeRepo(db *gorm.DB) CollegeRepository {
	return &collegeRepo{db: db}
}

func (r *collegeRepo) FindByID(ctx context.Context, id string) (*models.College, error) {
	var c models.College
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collegeRepo) FindBySubdomain(ctx context.Context, subdomain string) (*models.College, error) {
	var c models.College
	err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collegeRepo) ListWithAdminCounts(ctx context.Context) ([]CollegeWithAdmins, error) {
	var colleges []models.College
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&colleges).Error; err != nil {
		return nil, err
	}

	type adminRow struct {
		CollegeID string
		N         int64
	}
	var rows []adminRow
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("college_id, COUNT(*) AS n").
		Where("role = ? AND college_id IS NOT NULL", models.RoleCollegeAdmin).
		Group("college_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.CollegeID] = row.N
	}

	out := make([]CollegeWithAdmins, 0, len(colleges))
	for _, c := range colleges {
		out = append(out, CollegeWithAdmins{College: c, AdminCount: counts[c.ID]})
	}
	return out, nil
}

func (r *collegeRepo) CreateWithAdmin(ctx context.Context, college *models.College, admin *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.College{}).Where("subdomain = ?", college.Subdomain).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrSubdomainTaken
		}

		if admin != nil && admin.Email != nil {
			if err := tx.Model(&models.User{}).Where("email = ?", *admin.Email).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrAdminEmailTaken
			}
		}

		if college.ID == "" {
			college.ID = uuid.NewString()
		}
		if err := tx.Create(college).Error; err != nil {
			return err
		}

		if admin != nil {
			if admin.ID == "" {
				admin.ID = uuid.NewString()
			}
			admin.CollegeID = &college.ID
			admin.Role = models.RoleCollegeAdmin
			if err := tx.Create(admin).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
