package models

import "time"

type TicketType string

const (
	TicketBug     TicketType = "BUG"
	TicketFeature TicketType = "FEATURE_REQUEST"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketValidated  TicketStatus = "VALIDATED"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketOnHold     TicketStatus = "ON_HOLD"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketRejected   TicketStatus = "REJECTED"
	TicketClosed     TicketStatus = "CLOSED"
)

type TicketPriority string

const (
	PriorityLow      TicketPriority = "LOW"
	PriorityMedium   TicketPriority = "MEDIUM"
	PriorityHigh     TicketPriority = "HIGH"
	PriorityCritical TicketPriority = "CRITICAL"
)

// SupportTicket belongs to the reporting user and their college. Visibility
// widens with role: reporters see their own, college admins their college,
// super admins everything.
type SupportTicket struct {
	ID          string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID      string         `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	CollegeID   *string        `gorm:"column:college_id;type:uuid;index" json:"collegeId"`
	Title       string         `gorm:"column:title;type:text;not null" json:"title"`
	Description string         `gorm:"column:description;type:text;not null" json:"description"`
	Type        TicketType     `gorm:"column:type;type:text;default:BUG" json:"type"`
	Status      TicketStatus   `gorm:"column:status;type:text;default:OPEN" json:"status"`
	Priority    TicketPriority `gorm:"column:priority;type:text;default:MEDIUM" json:"priority"`

	User     *User           `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Comments []TicketComment `gorm:"foreignKey:TicketID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (SupportTicket) TableName() string { return "support_tickets" }

// TicketComment is one message in a ticket's thread.
type TicketComment struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TicketID string `gorm:"column:ticket_id;type:uuid;not null;index" json:"ticketId"`
	UserID   string `gorm:"column:user_id;type:uuid;not null" json:"userId"`
	Content  string `gorm:"column:content;type:text;not null" json:"content"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (TicketComment) TableName() string { return "ticket_comments" }
