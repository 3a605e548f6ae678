package models

import "time"

type PortfolioType string

const (
	PortfolioProject     PortfolioType = "PROJECT"
	PortfolioPublication PortfolioType = "PUBLICATION"
	PortfolioProduct     PortfolioType = "PRODUCT"
	PortfolioMedia       PortfolioType = "MEDIA"
	PortfolioDesign      PortfolioType = "DESIGN"
	PortfolioAchievement PortfolioType = "ACHIEVEMENT"
	PortfolioOther       PortfolioType = "OTHER"
)

// Portfolio is a user-owned showcase item shown on the public profile.
type Portfolio struct {
	ID          string        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID      string        `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	Title       string        `gorm:"column:title;type:text;not null" json:"title"`
	Type        PortfolioType `gorm:"column:type;type:text;default:OTHER" json:"type"`
	Role        string        `gorm:"column:role;type:text" json:"role,omitempty"`
	URL         string        `gorm:"column:url;type:text" json:"url,omitempty"`
	IframeURL   string        `gorm:"column:iframe_url;type:text" json:"iframeUrl,omitempty"`
	Description string        `gorm:"column:description;type:text" json:"description,omitempty"`
	ImageURL    string        `gorm:"column:image_url;type:text" json:"imageUrl,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Portfolio) TableName() string { return "portfolios" }
