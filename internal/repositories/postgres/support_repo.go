package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/collegeconnect/backend/internal/models"
	"github.com/collegeconnect/backend/internal/utils"
)

// TicketListParams narrows the ticket list. Nil fields mean no filter; the
// service sets UserID or CollegeID from the caller's role.
type TicketListParams struct {
	UserID    *string
	CollegeID *string
	Status    *models.TicketStatus
	Type      *models.TicketType
}

type SupportRepository interface {
	Create(ctx context.Context, ticket *models.SupportTicket) error
	List(ctx context.Context, p TicketListParams) ([]models.SupportTicket, error)
	GetByID(ctx context.Context, id string) (*models.SupportTicket, error)
	Save(ctx context.Context, ticket *models.SupportTicket) error

	ListComments(ctx context.Context, ticketID string) ([]models.TicketComment, error)
	AddComment(ctx context.Context, comment *models.TicketComment) error
}

type supportRepo struct {
	db *gorm.DB
}

func NewSupportRepo(db *gorm.DB) SupportRepository {
	return &supportRepo{db: db}
}

func ticketAuthorPreload(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username", "role", "college_id")
}

func (r *supportRepo) Create(ctx context.Context, ticket *models.SupportTicket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *supportRepo) List(ctx context.Context, p TicketListParams) ([]models.SupportTicket, error) {
	q := r.db.WithContext(ctx).Model(&models.SupportTicket{})
	if p.UserID != nil {
		q = q.Where("user_id = ?", *p.UserID)
	}
	if p.CollegeID != nil {
		q = q.Where("college_id = ?", *p.CollegeID)
	}
	if p.Status != nil {
		q = q.Where("status = ?", *p.Status)
	}
	if p.Type != nil {
		q = q.Where("type = ?", *p.Type)
	}

	var out []models.SupportTicket
	err := q.Order("created_at DESC").
		Preload("User", ticketAuthorPreload).
		Preload("User.Profile").
		Find(&out).Error
	return out, err
}

func (r *supportRepo) GetByID(ctx context.Context, id string) (*models.SupportTicket, error) {
	var t models.SupportTicket
	err := r.db.WithContext(ctx).
		Preload("User", ticketAuthorPreload).
		Preload("User.Profile").
		Where("id = ?", id).
		Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *supportRepo) Save(ctx context.Context, ticket *models.SupportTicket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *supportRepo) ListComments(ctx context.Context, ticketID string) ([]models.TicketComment, error) {
	var out []models.TicketComment
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Preload("User", ticketAuthorPreload).
		Preload("User.Profile").
		Find(&out).Error
	return out, err
}

func (r *supportRepo) AddComment(ctx context.Context, comment *models.TicketComment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(comment).Error
}
