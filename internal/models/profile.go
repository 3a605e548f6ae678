package models

import "time"

// Profile is the one-to-one extension of a user with the fields the directory
// actually searches on. Resume and picture URLs point into the upload store.
type Profile struct {
	UserID            string `gorm:"column:user_id;type:uuid;primaryKey" json:"userId"`
	FullName          string `gorm:"column:full_name;type:text;not null" json:"fullName"`
	Bio               string `gorm:"column:bio;type:text" json:"bio,omitempty"`
	Headline          string `gorm:"column:headline;type:text" json:"headline,omitempty"`
	Department        string `gorm:"column:department;type:text" json:"department,omitempty"`
	Section           string `gorm:"column:section;type:text" json:"section,omitempty"`
	GraduationYear    *int   `gorm:"column:graduation_year" json:"graduationYear,omitempty"`
	ProfilePictureURL string `gorm:"column:profile_picture_url;type:text" json:"profilePictureUrl,omitempty"`
	ResumeURL         string `gorm:"column:resume_url;type:text" json:"resumeUrl,omitempty"`
	City              string `gorm:"column:city;type:text" json:"city,omitempty"`
	Country           string `gorm:"column:country;type:text" json:"country,omitempty"`
	Locality          string `gorm:"column:locality;type:text" json:"locality,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Profile) TableName() string { return "profiles" }
