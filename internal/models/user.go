package models

import (
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleStudent      Role = "STUDENT"
	RoleAlumni       Role = "ALUMNI"
	RoleFaculty      Role = "FACULTY"
	RoleCollegeAdmin Role = "COLLEGE_ADMIN"
	RoleSuperAdmin   Role = "SUPER_ADMIN"
)

// ValidRole reports whether s is one of the five known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleStudent, RoleAlumni, RoleFaculty, RoleCollegeAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User is a directory account. CollegeID is nil only for SUPER_ADMIN accounts.
// Username doubles as the roll number for students and is unique per college;
// email is globally unique when set. RefreshToken holds the single active
// refresh token (one session per user).
type User struct {
	ID        string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CollegeID *string `gorm:"column:college_id;type:uuid;uniqueIndex:uq_users_college_username,priority:1" json:"collegeId"`
	Email     *string `gorm:"column:email;type:text;uniqueIndex" json:"email,omitempty"`
	Username  string  `gorm:"column:username;type:text;not null;uniqueIndex:uq_users_college_username,priority:2" json:"username"`
	Role      Role    `gorm:"column:role;type:text;not null" json:"role"`

	DOB          *datatypes.Date `gorm:"column:dob" json:"dob,omitempty"`
	PasswordHash string          `gorm:"column:password_hash;type:text;not null" json:"-"`
	RefreshToken *string         `gorm:"column:refresh_token;type:text" json:"-"`

	College     *College      `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	Profile     *Profile      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"profile,omitempty"`
	Experiences []Experience  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"experiences,omitempty"`
	Skills      []Skill       `gorm:"many2many:user_skills" json:"skills,omitempty"`
	Portfolios  []Portfolio   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"portfolios,omitempty"`
	Posts       []Post        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Likes       []Like        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Comments    []Comment     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TicketNotes []TicketComment `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
