package models

import "time"

// College is the tenant root. Every user, post and support ticket hangs off one
// college; deleting a college detaches its users (SET NULL) but removes its feed
// and tickets.
type College struct {
	ID        string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string `gorm:"column:name;type:text;not null" json:"name"`
	Subdomain string `gorm:"column:subdomain;type:text;not null;uniqueIndex" json:"subdomain"`
	Location  string `gorm:"column:location;type:text" json:"location,omitempty"`
	Website   string `gorm:"column:website;type:text" json:"website,omitempty"`
	LogoURL   string `gorm:"column:logo_url;type:text" json:"logoUrl,omitempty"`

	Users   []User          `gorm:"foreignKey:CollegeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"users,omitempty"`
	Posts   []Post          `gorm:"foreignKey:CollegeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tickets []SupportTicket `gorm:"foreignKey:CollegeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (College) TableName() string { return "colleges" }
