package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill is a global catalog entity, unique by name, linked to users through
// user_skills.
type Skill struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:text;not null;uniqueIndex" json:"name"`
	Category    string `gorm:"column:category;type:text" json:"category,omitempty"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
	IsTechnical bool   `gorm:"column:is_technical;default:true" json:"isTechnical"`
	IconURL     string `gorm:"column:icon_url;type:text" json:"iconUrl,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Skill) TableName() string { return "skills" }

// UserSkill is the user<->skill join row. It carries its own id so the
// dashboards can aggregate over it directly.
type UserSkill struct {
	ID      string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID  string `gorm:"column:user_id;type:uuid;index" json:"userId"`
	SkillID string `gorm:"column:skill_id;type:uuid;index" json:"skillId"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Skill *Skill `gorm:"foreignKey:SkillID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"skill,omitempty"`
}

func (UserSkill) TableName() string { return "user_skills" }

func (us *UserSkill) BeforeCreate(tx *gorm.DB) error {
	if us.ID == "" {
		us.ID = uuid.NewString()
	}
	return nil
}
