package models

import "time"

type MediaType string

const (
	MediaImage MediaType = "IMAGE"
	MediaVideo MediaType = "VIDEO"
	MediaNone  MediaType = "NONE"
)

type PostCategory string

const (
	CategoryGeneral      PostCategory = "GENERAL"
	CategoryEvent        PostCategory = "EVENT"
	CategoryAlumniUpdate PostCategory = "ALUMNI_UPDATE"
	CategoryAnnouncement PostCategory = "ANNOUNCEMENT"
	CategoryAchievement  PostCategory = "ACHIEVEMENT"
	CategoryCareerUpdate PostCategory = "CAREER_UPDATE"
)

type PostScope string

const (
	ScopeCollege PostScope = "COLLEGE"
	ScopePublic  PostScope = "PUBLIC"
)

// Post is a feed entry scoped to the author's college. LikesCount and
// CommentsCount are denormalized; they are only ever updated in the same
// transaction as the Like/Comment row they count.
type Post struct {
	ID        uint         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    string       `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	CollegeID *string      `gorm:"column:college_id;type:uuid;index" json:"collegeId"`
	Content   string       `gorm:"column:content;type:text" json:"content,omitempty"`
	MediaURL  string       `gorm:"column:media_url;type:text" json:"mediaUrl,omitempty"`
	MediaType MediaType    `gorm:"column:media_type;type:text;default:NONE" json:"mediaType"`
	Category  PostCategory `gorm:"column:category;type:text;default:GENERAL" json:"category"`
	Scope     PostScope    `gorm:"column:scope;type:text;default:COLLEGE" json:"scope"`

	LikesCount    int `gorm:"column:likes_count;default:0" json:"likesCount"`
	CommentsCount int `gorm:"column:comments_count;default:0" json:"commentsCount"`

	EventStartDate     *time.Time `gorm:"column:event_start_date" json:"eventStartDate,omitempty"`
	EventEndDate       *time.Time `gorm:"column:event_end_date" json:"eventEndDate,omitempty"`
	AchievementType    string     `gorm:"column:achievement_type;type:text" json:"achievementType,omitempty"`
	GamificationPoints int        `gorm:"column:gamification_points;default:0" json:"gamificationPoints"`
	CareerType         string     `gorm:"column:career_type;type:text" json:"careerType,omitempty"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LikeRows []Like    `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Replies  []Comment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Post) TableName() string { return "posts" }

// Like records one user liking one post; at most one row per (user, post).
type Like struct {
	ID     uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_likes_user_post,priority:1" json:"userId"`
	PostID uint   `gorm:"column:post_id;not null;uniqueIndex:uq_likes_user_post,priority:2" json:"postId"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Like) TableName() string { return "likes" }

type Comment struct {
	ID      uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID  string `gorm:"column:user_id;type:uuid;not null;index" json:"userId"`
	PostID  uint   `gorm:"column:post_id;not null;index" json:"postId"`
	Content string `gorm:"column:content;type:text;not null" json:"content"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Comment) TableName() string { return "comments" }
