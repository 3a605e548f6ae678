package models

import "time"

// Experience links a user to a company with a role and date range. A nil
// EndDate means the position is current.
type Experience struct {
	ID          string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID      string     `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	CompanyID   string     `gorm:"column:company_id;type:uuid;not null;index" json:"companyId"`
	Title       string     `gorm:"column:title;type:text;not null" json:"title"`
	StartDate   time.Time  `gorm:"column:start_date;not null" json:"startDate"`
	EndDate     *time.Time `gorm:"column:end_date" json:"endDate"`
	Description string     `gorm:"column:description;type:text" json:"description,omitempty"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Experience) TableName() string { return "experiences" }
