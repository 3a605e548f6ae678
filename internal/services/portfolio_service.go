package services

import (
	"context"
	"errors"
	"strings"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

// PortfolioInput is the editable shape of a portfolio item.
type PortfolioInput struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Role        string `json:"role"`
	URL         string `json:"url"`
	IframeURL   string `json:"iframeUrl"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type PortfolioService interface {
	List(ctx context.Context, userID string) ([]models.Portfolio, error)
	Create(ctx context.Context, userID string, in PortfolioInput) (*models.Portfolio, error)
	Update(ctx context.Context, userID, id string, in PortfolioInput) (*models.Portfolio, error)
	Delete(ctx context.Context, userID, id string) error
}

type portfolioService struct {
	portfolios pgrepo.PortfolioRepository
}

func NewPortfolioService(portfolios pgrepo.PortfolioRepository) PortfolioService {
	return &portfolioService{portfolios: portfolios}
}

func validPortfolioType(t string) bool {
	switch models.PortfolioType(t) {
	case models.PortfolioProject, models.PortfolioPublication, models.PortfolioProduct,
		models.PortfolioMedia, models.PortfolioDesign, models.PortfolioAchievement,
		models.PortfolioOther:
		return true
	}
	return false
}

func (s *portfolioService) List(ctx context.Context, userID string) ([]models.Portfolio, error) {
	const op = "PortfolioService.List"

	out, err := s.portfolios.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list portfolio", err)
	}
	return out, nil
}

func (s *portfolioService) Create(ctx context.Context, userID string, in PortfolioInput) (*models.Portfolio, error) {
	const op = "PortfolioService.Create"

	if strings.TrimSpace(in.Title) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	}
	t := in.Type
	if t == "" {
		t = string(models.PortfolioOther)
	}
	if !validPortfolioType(t) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown portfolio type "+in.Type, nil)
	}

	item := &models.Portfolio{
		UserID:      userID,
		Title:       in.Title,
		Type:        models.PortfolioType(t),
		Role:        in.Role,
		URL:         in.URL,
		IframeURL:   in.IframeURL,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
	if err := s.portfolios.Create(ctx, item); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create portfolio item", err)
	}
	return item, nil
}

func (s *portfolioService) Update(ctx context.Context, userID, id string, in PortfolioInput) (*models.Portfolio, error) {
	const op = "PortfolioService.Update"

	item, err := s.portfolios.GetOwned(ctx, id, userID)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "Portfolio item not found.", nil)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up portfolio item", err)
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		item.Title = title
	}
	if in.Type != "" {
		if !validPortfolioType(in.Type) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "unknown portfolio type "+in.Type, nil)
		}
		item.Type = models.PortfolioType(in.Type)
	}
	item.Role = in.Role
	item.URL = in.URL
	item.IframeURL = in.IframeURL
	item.Description = in.Description
	item.ImageURL = in.ImageURL

	if err := s.portfolios.Save(ctx, item); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update portfolio item", err)
	}
	return item, nil
}

func (s *portfolioService) Delete(ctx context.Context, userID, id string) error {
	const op = "PortfolioService.Delete"

	if _, err := s.portfolios.GetOwned(ctx, id, userID); errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, "Portfolio item not found.", nil)
	} else if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to look up portfolio item", err)
	}

	if err := s.portfolios.Delete(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete portfolio item", err)
	}
	return nil
}
