package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

// CreateCollegeRequest onboards a tenant together with its first admin.
type CreateCollegeRequest struct {
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	Location  string `json:"location"`
	Website   string `json:"website"`

	AdminUsername string `json:"adminUsername"`
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
	AdminFullName string `json:"adminFullName"`
}

// CreateAdminRequest adds another COLLEGE_ADMIN to an existing college.
type CreateAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type CollegeService interface {
	List(ctx context.Context) ([]pgrepo.CollegeWithAdmins, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.College, error)
	Create(ctx context.Context, req CreateCollegeRequest) (*models.College, error)
	CreateAdmin(ctx context.Context, collegeID string, req CreateAdminRequest) (*models.User, error)
}

type collegeService struct {
	colleges pgrepo.CollegeRepository
	users    pgrepo.UserRepository
}

func NewCollegeService(colleges pgrepo.CollegeRepository, users pgrepo.UserRepository) CollegeService {
	return &collegeService{colleges: colleges, users: users}
}

func (s *collegeService) List(ctx context.Context) ([]pgrepo.CollegeWithAdmins, error) {
	const op = "CollegeService.List"

	out, err := s.colleges.ListWithAdminCounts(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list colleges", err)
	}
	return out, nil
}

func (s *collegeService) GetBySubdomain(ctx context.Context, subdomain string) (*models.College, error) {
	const op = "CollegeService.GetBySubdomain"

	college, err := s.colleges.FindBySubdomain(ctx, subdomain)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "College not found.", nil)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up college", err)
	}
	return college, nil
}

var subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

func (s *collegeService) Create(ctx context.Context, req CreateCollegeRequest) (*models.College, error) {
	const op = "CollegeService.Create"

	req.Subdomain = strings.ToLower(strings.TrimSpace(req.Subdomain))
	if strings.TrimSpace(req.Name) == "" || req.Subdomain == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name and subdomain are required", nil)
	}
	if !subdomainRe.MatchString(req.Subdomain) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "subdomain may only contain lowercase letters, digits and hyphens", nil)
	}

	college := &models.College{
		Name:      req.Name,
		Subdomain: req.Subdomain,
		Location:  req.Location,
		Website:   req.Website,
	}

	var admin *models.User
	if req.AdminEmail != "" || req.AdminUsername != "" {
		if req.AdminEmail == "" || req.AdminUsername == "" || req.AdminPassword == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "adminUsername, adminEmail and adminPassword are required", nil)
		}
		hash, err := utils.HashPassword(req.AdminPassword)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
		}
		email := req.AdminEmail
		admin = &models.User{
			Email:        &email,
			Username:     req.AdminUsername,
			PasswordHash: hash,
		}
	}

	err := s.colleges.CreateWithAdmin(ctx, college, admin)
	switch {
	case errors.Is(err, pgrepo.ErrSubdomainTaken):
		return nil, utils.E(utils.CodeConflict, op, "Subdomain already exists.", err)
	case errors.Is(err, pgrepo.ErrAdminEmailTaken):
		return nil, utils.E(utils.CodeConflict, op, "Admin email already exists.", err)
	case utils.IsDuplicate(err):
		return nil, utils.E(utils.CodeConflict, op, "Subdomain already exists.", err)
	case err != nil:
		return nil, utils.E(utils.CodeInternal, op, "failed to create college", err)
	}

	if admin != nil && req.AdminFullName != "" {
		err := s.users.UpsertProfile(ctx, &models.Profile{
			UserID:   admin.ID,
			FullName: req.AdminFullName,
		})
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to create admin profile", err)
		}
	}
	return college, nil
}

func (s *collegeService) CreateAdmin(ctx context.Context, collegeID string, req CreateAdminRequest) (*models.User, error) {
	const op = "CollegeService.CreateAdmin"

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "username, email and password are required", nil)
	}

	if _, err := s.colleges.FindByID(ctx, collegeID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "College not found.", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up college", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	email := req.Email
	admin := &models.User{
		CollegeID:    &collegeID,
		Email:        &email,
		Username:     req.Username,
		Role:         models.RoleCollegeAdmin,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if utils.IsDuplicate(err) {
			return nil, utils.E(utils.CodeConflict, op, "Admin email already exists.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create admin", err)
	}

	if req.FullName != "" {
		err := s.users.UpsertProfile(ctx, &models.Profile{UserID: admin.ID, FullName: req.FullName})
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to create admin profile", err)
		}
	}
	return admin, nil
}
