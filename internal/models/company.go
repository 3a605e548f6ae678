package models

import "time"

// Company is a global catalog entity (not tenant-scoped), unique by name.
// Rows are created either by a super admin or lazily when a user records an
// experience at a company the catalog has not seen yet.
type Company struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:text;not null;uniqueIndex" json:"name"`
	Industry    string `gorm:"column:industry;type:text" json:"industry,omitempty"`
	Size        string `gorm:"column:size;type:text" json:"size,omitempty"`
	Location    string `gorm:"column:location;type:text" json:"location,omitempty"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
	FoundedYear *int   `gorm:"column:founded_year" json:"foundedYear,omitempty"`
	Website     string `gorm:"column:website;type:text" json:"website,omitempty"`
	LinkedinURL string `gorm:"column:linkedin_url;type:text" json:"linkedinUrl,omitempty"`
	LogoURL     string `gorm:"column:logo_url;type:text" json:"logoUrl,omitempty"`
	IsVerified  bool   `gorm:"column:is_verified;default:false" json:"isVerified"`

	Experiences []Experience `gorm:"foreignKey:CompanyID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Tags        []Tag        `gorm:"many2many:company_tags" json:"tags,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Company) TableName() string { return "companies" }

// Tag categorizes companies, many-to-many through company_tags.
type Tag struct {
	ID   string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name string `gorm:"column:name;type:text;not null;uniqueIndex" json:"name"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Tag) TableName() string { return "tags" }

// CompanyTag is the explicit join row so tag links can be queried directly.
type CompanyTag struct {
	CompanyID string `gorm:"column:company_id;type:uuid;primaryKey" json:"companyId"`
	TagID     string `gorm:"column:tag_id;type:uuid;primaryKey" json:"tagId"`
}

func (CompanyTag) TableName() string { return "company_tags" }
