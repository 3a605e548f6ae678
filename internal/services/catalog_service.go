package services

import (
	"context"
	"errors"
	"strings"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

// CompanyInput is the editable shape of a catalog company.
type CompanyInput struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Size        string `json:"size"`
	Location    string `json:"location"`
	Description string `json:"description"`
	FoundedYear *int   `json:"foundedYear"`
	Website     string `json:"website"`
	LinkedinURL string `json:"linkedinUrl"`
	LogoURL     string `json:"logoUrl"`
	IsVerified  *bool  `json:"isVerified"`
}

// SkillInput is the editable shape of a catalog skill.
type SkillInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	IsTechnical *bool  `json:"isTechnical"`
	IconURL     string `json:"iconUrl"`
}

type CatalogService interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	CreateCompany(ctx context.Context, in CompanyInput) (*models.Company, error)
	UpdateCompany(ctx context.Context, id string, in CompanyInput) (*models.Company, error)
	DeleteCompany(ctx context.Context, id string) error
	SearchCompanies(ctx context.Context, query string) ([]pgrepo.NameRef, error)
	CompaniesEmployingSkill(ctx context.Context, callerRole models.Role, callerCollegeID *string, skill string) ([]models.Company, error)

	ListSkills(ctx context.Context) ([]models.Skill, error)
	CreateSkill(ctx context.Context, in SkillInput) (*models.Skill, error)
	UpdateSkill(ctx context.Context, id string, in SkillInput) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id string) error
	SearchSkills(ctx context.Context, query string) ([]pgrepo.NameRef, error)
}

type catalogService struct {
	catalog pgrepo.CatalogRepository
}

func NewCatalogService(catalog pgrepo.CatalogRepository) CatalogService {
	return &catalogService{catalog: catalog}
}

const autocompleteLimit = 10

func (s *catalogService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	const op = "CatalogService.ListCompanies"

	out, err := s.catalog.ListCompanies(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list companies", err)
	}
	return out, nil
}

func (s *catalogService) CreateCompany(ctx context.Context, in CompanyInput) (*models.Company, error) {
	const op = "CatalogService.CreateCompany"

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}

	c := &models.Company{
		Name:        in.Name,
		Industry:    in.Industry,
		Size:        in.Size,
		Location:    in.Location,
		Description: in.Description,
		FoundedYear: in.FoundedYear,
		Website:     in.Website,
		LinkedinURL: in.LinkedinURL,
		LogoURL:     in.LogoURL,
	}
	if in.IsVerified != nil {
		c.IsVerified = *in.IsVerified
	}

	if err := s.catalog.CreateCompany(ctx, c); err != nil {
		if utils.IsDuplicate(err) {
			return nil, utils.E(utils.CodeConflict, op, "Company already exists.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create company", err)
	}
	return c, nil
}

func (s *catalogService) UpdateCompany(ctx context.Context, id string, in CompanyInput) (*models.Company, error) {
	const op = "CatalogService.UpdateCompany"

	c, err := s.catalog.GetCompany(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "Company not found.", nil)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up company", err)
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	c.Industry = in.Industry
	c.Size = in.Size
	c.Location = in.Location
	c.Description = in.Description
	c.FoundedYear = in.FoundedYear
	c.Website = in.Website
	c.LinkedinURL = in.LinkedinURL
	c.LogoURL = in.LogoURL
	if in.IsVerified != nil {
		c.IsVerified = *in.IsVerified
	}

	if err := s.catalog.SaveCompany(ctx, c); err != nil {
		if utils.IsDuplicate(err) {
			return nil, utils.E(utils.CodeConflict, op, "Company already exists.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update company", err)
	}
	return c, nil
}

func (s *catalogService) DeleteCompany(ctx context.Context, id string) error {
	const op = "CatalogService.DeleteCompany"

	if _, err := s.catalog.GetCompany(ctx, id); errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "Company not found.", nil)
	} else if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to look up company", err)
	}

	if err := s.catalog.DeleteCompany(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete company", err)
	}
	return nil
}

func (s *catalogService) SearchCompanies(ctx context.Context, query string) ([]pgrepo.NameRef, error) {
	const op = "CatalogService.SearchCompanies"

	out, err := s.catalog.SearchCompanies(ctx, strings.TrimSpace(query), autocompleteLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "company search failed", err)
	}
	return out, nil
}

func (s *catalogService) CompaniesEmployingSkill(ctx context.Context, callerRole models.Role, callerCollegeID *string, skill string) ([]models.Company, error) {
	const op = "CatalogService.CompaniesEmployingSkill"

	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "skill is required", nil)
	}

	var collegeID *string
	if callerRole != models.RoleSuperAdmin {
		collegeID = callerCollegeID
	}

	out, err := s.catalog.CompaniesEmployingSkill(ctx, skill, collegeID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "company lookup failed", err)
	}
	return out, nil
}

func (s *catalogService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	const op = "CatalogService.ListSkills"

	out, err := s.catalog.ListSkills(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list skills", err)
	}
	return out, nil
}

func (s *catalogService) CreateSkill(ctx context.Context, in SkillInput) (*models.Skill, error) {
	const op = "CatalogService.CreateSkill"

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}

	sk := &models.Skill{
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		IsTechnical: true,
		IconURL:     in.IconURL,
	}
	if in.IsTechnical != nil {
		sk.IsTechnical = *in.IsTechnical
	}

	if err := s.catalog.CreateSkill(ctx, sk); err != nil {
		if utils.IsDuplicate(err) {
			return nil, utils.E(utils.CodeConflict, op, "Skill already exists.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create skill", err)
	}
	return sk, nil
}

func (s *catalogService) UpdateSkill(ctx context.Context, id string, in SkillInput) (*models.Skill, error) {
	const op = "CatalogService.UpdateSkill"

	sk, err := s.catalog.GetSkill(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "Skill not found.", nil)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up skill", err)
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		sk.Name = name
	}
	sk.Category = in.Category
	sk.Description = in.Description
	sk.IconURL = in.IconURL
	if in.IsTechnical != nil {
		sk.IsTechnical = *in.IsTechnical
	}

	if err := s.catalog.SaveSkill(ctx, sk); err != nil {
		if utils.IsDuplicate(err) {
			return nil, utils.E(utils.CodeConflict, op, "Skill already exists.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update skill", err)
	}
	return sk, nil
}

func (s *catalogService) DeleteSkill(ctx context.Context, id string) error {
	const op = "CatalogService.DeleteSkill"

	if _, err := s.catalog.GetSkill(ctx, id); errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "Skill not found.", nil)
	} else if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to look up skill", err)
	}

	if err := s.catalog.DeleteSkill(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete skill", err)
	}
	return nil
}

func (s *catalogService) SearchSkills(ctx context.Context, query string) ([]pgrepo.NameRef, error) {
	const op = "CatalogService.SearchSkills"

	out, err := s.catalog.SearchSkills(ctx, strings.TrimSpace(query), autocompleteLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "skill search failed", err)
	}
	return out, nil
}
