package services

import (
	"context"
	"errors"
	"strings"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

// CreateTicketRequest opens a support ticket on behalf of the caller.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
}

type SupportService interface {
	Create(ctx context.Context, caller Caller, req CreateTicketRequest) (*models.SupportTicket, error)
	// List widens with role: students and alumni see their own tickets,
	// college admins and faculty their college's, super admins everything.
	List(ctx context.Context, caller Caller, status, ticketType string) ([]models.SupportTicket, error)
	Get(ctx context.Context, caller Caller, id string) (*models.SupportTicket, error)
	UpdateStatus(ctx context.Context, caller Caller, id, status string) (*models.SupportTicket, error)
	ListComments(ctx context.Context, caller Caller, id string) ([]models.TicketComment, error)
	AddComment(ctx context.Context, caller Caller, id, content string) (*models.TicketComment, error)
}

type supportService struct {
	tickets pgrepo.SupportRepository
}

func NewSupportService(tickets pgrepo.SupportRepository) SupportService {
	return &supportService{tickets: tickets}
}

func validTicketType(t string) bool {
	switch models.TicketType(t) {
	case models.TicketBug, models.TicketFeature:
		return true
	}
	return false
}

func validTicketStatus(s string) bool {
	switch models.TicketStatus(s) {
	case models.TicketOpen, models.TicketValidated, models.TicketInProgress,
		models.TicketOnHold, models.TicketResolved, models.TicketRejected,
		models.TicketClosed:
		return true
	}
	return false
}

func validTicketPriority(p string) bool {
	switch models.TicketPriority(p) {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityCritical:
		return true
	}
	return false
}

func (s *supportService) Create(ctx context.Context, caller Caller, req CreateTicketRequest) (*models.SupportTicket, error) {
	const op = "SupportService.Create"

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "title and description are required", nil)
	}

	ticketType := req.Type
	if ticketType == "" {
		ticketType = string(models.TicketBug)
	}
	if !validTicketType(ticketType) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown ticket type "+req.Type, nil)
	}

	priority := req.Priority
	if priority == "" {
		priority = string(models.PriorityMedium)
	}
	if !validTicketPriority(priority) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown priority "+req.Priority, nil)
	}

	ticket := &models.SupportTicket{
		UserID:      caller.UserID,
		CollegeID:   caller.CollegeID,
		Title:       req.Title,
		Description: req.Description,
		Type:        models.TicketType(ticketType),
		Status:      models.TicketOpen,
		Priority:    models.TicketPriority(priority),
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create ticket", err)
	}
	return ticket, nil
}

func (s *supportService) List(ctx context.Context, caller Caller, status, ticketType string) ([]models.SupportTicket, error) {
	const op = "SupportService.List"

	p := pgrepo.TicketListParams{}
	switch caller.Role {
	case models.RoleSuperAdmin:
		// unscoped
	case models.RoleCollegeAdmin, models.RoleFaculty:
		p.CollegeID = caller.CollegeID
	default:
		p.UserID = &caller.UserID
	}
	if status != "" {
		if !validTicketStatus(status) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "unknown status "+status, nil)
		}
		st := models.TicketStatus(status)
		p.Status = &st
	}
	if ticketType != "" {
		if !validTicketType(ticketType) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "unknown ticket type "+ticketType, nil)
		}
		tt := models.TicketType(ticketType)
		p.Type = &tt
	}

	out, err := s.tickets.List(ctx, p)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list tickets", err)
	}
	return out, nil
}

func (s *supportService) Get(ctx context.Context, caller Caller, id string) (*models.SupportTicket, error) {
	const op = "SupportService.Get"
	return s.getVisible(ctx, op, caller, id)
}

func (s *supportService) UpdateStatus(ctx context.Context, caller Caller, id, status string) (*models.SupportTicket, error) {
	const op = "SupportService.UpdateStatus"

	if caller.Role != models.RoleSuperAdmin && caller.Role != models.RoleCollegeAdmin {
		return nil, utils.E(utils.CodeForbidden, op, "Access denied.", nil)
	}
	if !validTicketStatus(status) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown status "+status, nil)
	}

	ticket, err := s.getVisible(ctx, op, caller, id)
	if err != nil {
		return nil, err
	}

	ticket.Status = models.TicketStatus(status)
	if err := s.tickets.Save(ctx, ticket); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update ticket", err)
	}
	return ticket, nil
}

func (s *supportService) ListComments(ctx context.Context, caller Caller, id string) ([]models.TicketComment, error) {
	const op = "SupportService.ListComments"

	if _, err := s.getVisible(ctx, op, caller, id); err != nil {
		return nil, err
	}

	out, err := s.tickets.ListComments(ctx, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list ticket comments", err)
	}
	return out, nil
}

func (s *supportService) AddComment(ctx context.Context, caller Caller, id, content string) (*models.TicketComment, error) {
	const op = "SupportService.AddComment"

	if strings.TrimSpace(content) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "comment content is required", nil)
	}
	if _, err := s.getVisible(ctx, op, caller, id); err != nil {
		return nil, err
	}

	comment := &models.TicketComment{TicketID: id, UserID: caller.UserID, Content: content}
	if err := s.tickets.AddComment(ctx, comment); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to add ticket comment", err)
	}
	return comment, nil
}

// getVisible loads a ticket and applies the role-based visibility rule.
func (s *supportService) getVisible(ctx context.Context, op string, caller Caller, id string) (*models.SupportTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "Ticket not found.", nil)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load ticket", err)
	}

	switch caller.Role {
	case models.RoleSuperAdmin:
		return ticket, nil
	case models.RoleCollegeAdmin, models.RoleFaculty:
		if utils.CanAccessTenant(caller.Role, caller.CollegeID, ticket.CollegeID) {
			return ticket, nil
		}
	default:
		if ticket.UserID == caller.UserID {
			return ticket, nil
		}
	}
	return nil, utils.E(utils.CodeForbidden, op, "Access denied.", nil)
}
