package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/collegeconnect/backend/internal/models"
	"github.com/collegeconnect/backend/internal/utils"
)

// SearchParams drives the directory search. String-list filters match with
// LIKE by default; ExactTerms switches skills/companies to IN matching (used
// by the natural-language analyzer, which returns canonical names).
type SearchParams struct {
	CollegeID       *string // nil = unscoped (super admin)
	Role            *models.Role
	NameLike        string
	Skills          []string
	Companies       []string
	ExactTerms      bool
	GraduationYears []string
	Departments     []string
	Sections        []string
	Offset          int
	Limit           int // <= 0 disables pagination
}

// AdminListParams drives the tenant user listing on the admin console.
type AdminListParams struct {
	Search string
	Role   *models.Role
	Offset int
	Limit  int
}

// CareerExperience is one entry of a career replace request, already parsed.
type CareerExperience struct {
	CompanyName string
	Title       string
	StartDate   time.Time
	EndDate     *time.Time
	Description string
}

// CareerLocation carries the optional location update of a career replace.
type CareerLocation struct {
	City     string
	Country  string
	Locality string
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByLogin(ctx context.Context, login string, collegeID *string, superOnly bool) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByUsernameAndCollege(ctx context.Context, username, collegeID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*models.User, error)
	HasSuperAdmin(ctx context.Context) (bool, error)

	UpdateRefreshToken(ctx context.Context, userID string, token *string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	UpdateRole(ctx context.Context, userID string, role models.Role) error
	BulkUpdateRole(ctx context.Context, collegeID string, userIDs []string, role models.Role) (int64, error)

	GetWithCareer(ctx context.Context, id string, withPortfolio bool) (*models.User, error)
	Search(ctx context.Context, p SearchParams) ([]models.User, int64, error)
	ListByCollege(ctx context.Context, collegeID string, p AdminListParams) ([]models.User, int64, error)

	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, p *models.Profile) error
	SetResumeURL(ctx context.Context, userID, resumeURL string) error

	ReplaceCareer(ctx context.Context, userID string, exps []CareerExperience, skills []string, loc *CareerLocation) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) takeOne(ctx context.Context, conds func(*gorm.DB) *gorm.DB) (*models.User, error) {
	var u models.User
	err := conds(r.db.WithContext(ctx)).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.takeOne(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("id = ?", id) })
}

func (r *userRepo) FindByLogin(ctx context.Context, login string, collegeID *string, superOnly bool) (*models.User, error) {
	return r.takeOne(ctx, func(db *gorm.DB) *gorm.DB {
		db = db.Where("(email = ? OR username = ?)", login, login)
		if collegeID != nil {
			return db.Where("college_id = ?", *collegeID)
		}
		if superOnly {
			return db.Where("role = ?", models.RoleSuperAdmin)
		}
		return db
	})
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.takeOne(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("username = ?", username) })
}

func (r *userRepo) FindByUsernameAndCollege(ctx context.Context, username, collegeID string) (*models.User, error) {
	return r.takeOne(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("username = ? AND college_id = ?", username, collegeID)
	})
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.takeOne(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("email = ?", email) })
}

func (r *userRepo) FindByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return r.takeOne(ctx, func(db *gorm.DB) *gorm.DB { return db.Where("refresh_token = ?", token) })
}

func (r *userRepo) HasSuperAdmin(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleSuperAdmin).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepo) UpdateRefreshToken(ctx context.Context, userID string, token *string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).Error
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

func (r *userRepo) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}

func (r *userRepo) BulkUpdateRole(ctx context.Context, collegeID string, userIDs []string, role models.Role) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id IN ? AND college_id = ?", userIDs, collegeID).
		Update("role", role)
	return res.RowsAffected, res.Error
}

func (r *userRepo) GetWithCareer(ctx context.Context, id string, withPortfolio bool) (*models.User, error) {
	q := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Experiences", func(db *gorm.DB) *gorm.DB {
			return db.Order("experiences.start_date DESC")
		}).
		Preload("Experiences.Company").
		Preload("Skills")
	if withPortfolio {
		q = q.Preload("Portfolios", func(db *gorm.DB) *gorm.DB {
			return db.Order("portfolios.created_at DESC")
		})
	}

	var u models.User
	err := q.Where("id = ?", id).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// likeAny builds an OR of LIKE conditions over one column.
func likeAny(column string, terms []string) (string, []any) {
	conds := make([]string, len(terms))
	args := make([]any, len(terms))
	for i, t := range terms {
		conds[i] = column + " LIKE ?"
		args[i] = "%" + t + "%"
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

func intYears(years []string) []int {
	out := make([]int, 0, len(years))
	for _, y := range years {
		if n, err := strconv.Atoi(strings.TrimSpace(y)); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func (r *userRepo) Search(ctx context.Context, p SearchParams) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN profiles ON profiles.user_id = users.id")

	if p.CollegeID != nil {
		q = q.Where("users.college_id = ?", *p.CollegeID)
	}
	if p.Role != nil {
		q = q.Where("users.role = ?", *p.Role)
	}
	if p.NameLike != "" {
		q = q.Where("profiles.full_name LIKE ?", "%"+p.NameLike+"%")
	}
	if years := intYears(p.GraduationYears); len(years) > 0 {
		q = q.Where("profiles.graduation_year IN ?", years)
	}
	if len(p.Departments) > 0 {
		q = q.Where("profiles.department IN ?", p.Departments)
	}
	if len(p.Sections) > 0 {
		q = q.Where("profiles.section IN ?", p.Sections)
	}

	if len(p.Skills) > 0 {
		sub := r.db.Model(&models.UserSkill{}).
			Select("user_skills.user_id").
			Joins("JOIN skills ON skills.id = user_skills.skill_id")
		if p.ExactTerms {
			sub = sub.Where("skills.name IN ?", p.Skills)
		} else {
			cond, args := likeAny("skills.name", p.Skills)
			sub = sub.Where(cond, args...)
		}
		q = q.Where("users.id IN (?)", sub)
	}

	if len(p.Companies) > 0 {
		sub := r.db.Model(&models.Experience{}).
			Select("experiences.user_id").
			Joins("JOIN companies ON companies.id = experiences.company_id")
		if p.ExactTerms {
			sub = sub.Where("companies.name IN ?", p.Companies)
		} else {
			cond, args := likeAny("companies.name", p.Companies)
			sub = sub.Where(cond, args...)
		}
		q = q.Where("users.id IN (?)", sub)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("users.username ASC").
		Preload("Profile").
		Preload("Skills").
		Preload("Experiences.Company")
	if p.Limit > 0 {
		q = q.Offset(p.Offset).Limit(p.Limit)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepo) ListByCollege(ctx context.Context, collegeID string, p AdminListParams) ([]models.User, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("users.college_id = ?", collegeID)

	if p.Search != "" {
		like := "%" + p.Search + "%"
		q = q.Where("(users.username LIKE ? OR users.email LIKE ? OR profiles.full_name LIKE ?)", like, like, like)
	}
	if p.Role != nil {
		q = q.Where("users.role = ?", *p.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := q.Order("users.username ASC").
		Preload("Profile").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepo) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepo) UpsertProfile(ctx context.Context, p *models.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "bio", "headline", "department", "section",
				"graduation_year", "profile_picture_url", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *userRepo) SetResumeURL(ctx context.Context, userID, resumeURL string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"resume_url", "updated_at"}),
		}).
		Create(&models.Profile{UserID: userID, ResumeURL: resumeURL}).Error
}

// ReplaceCareer swaps a user's experiences and skills wholesale inside one
// transaction: any bad entry aborts the whole replace and the prior state
// survives. Companies and skills are find-or-created by name.
func (r *userRepo) ReplaceCareer(ctx context.Context, userID string, exps []CareerExperience, skills []string, loc *CareerLocation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserSkill{}).Error; err != nil {
			return err
		}

		for _, exp := range exps {
			name := strings.TrimSpace(exp.CompanyName)
			if name == "" {
				return fmt.Errorf("experience %q: company name is required", exp.Title)
			}
			company, err := findOrCreateCompany(tx, name)
			if err != nil {
				return err
			}
			e := models.Experience{
				ID:          uuid.NewString(),
				UserID:      userID,
				CompanyID:   company.ID,
				Title:       exp.Title,
				StartDate:   exp.StartDate,
				EndDate:     exp.EndDate,
				Description: exp.Description,
			}
			if err := tx.Create(&e).Error; err != nil {
				return err
			}
		}

		for _, skillName := range skills {
			name := strings.TrimSpace(skillName)
			if name == "" {
				return errors.New("skill name is required")
			}
			skill, err := findOrCreateSkill(tx, name)
			if err != nil {
				return err
			}
			us := models.UserSkill{UserID: userID, SkillID: skill.ID}
			if err := tx.Create(&us).Error; err != nil {
				return err
			}
		}

		if loc != nil {
			err := tx.Model(&models.Profile{}).
				Where("user_id = ?", userID).
				Updates(map[string]any{
					"city":     loc.City,
					"country":  loc.Country,
					"locality": loc.Locality,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func findOrCreateCompany(tx *gorm.DB, name string) (*models.Company, error) {
	var c models.Company
	err := tx.Where("name = ?", name).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = models.Company{ID: uuid.NewString(), Name: name}
		err = tx.Create(&c).Error
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func findOrCreateSkill(tx *gorm.DB, name string) (*models.Skill, error) {
	var s models.Skill
	err := tx.Where("name = ?", name).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = models.Skill{ID: uuid.NewString(), Name: name}
		err = tx.Create(&s).Error
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
