package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

// Caller is the acting account, as services see it.
type Caller struct {
	UserID    string
	Role      models.Role
	CollegeID *string
}

// CreatePostRequest is the feed post payload.
type CreatePostRequest struct {
	Content            string     `json:"content"`
	MediaURL           string     `json:"mediaUrl"`
	MediaType          string     `json:"mediaType"`
	Category           string     `json:"category"`
	EventStartDate     *time.Time `json:"eventStartDate"`
	EventEndDate       *time.Time `json:"eventEndDate"`
	AchievementType    string     `json:"achievementType"`
	GamificationPoints int        `json:"gamificationPoints"`
	CareerType         string     `json:"careerType"`
}

// FeedPost is a post plus whether the caller has liked it.
type FeedPost struct {
	models.Post
	IsLiked bool `json:"isLiked"`
}

// LikeResult is the body of a like toggle.
type LikeResult struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}

type PostService interface {
	Feed(ctx context.Context, caller Caller, category string, page utils.PageParams) ([]FeedPost, error)
	Get(ctx context.Context, caller Caller, id uint) (*FeedPost, error)
	Create(ctx context.Context, caller Caller, req CreatePostRequest) (*models.Post, error)
	// Delete is allowed for the author, a college admin of the post's college,
	// or a super admin.
	Delete(ctx context.Context, caller Caller, id uint) error
	ToggleLike(ctx context.Context, caller Caller, id uint) (*LikeResult, error)
	ListComments(ctx context.Context, caller Caller, id uint) ([]models.Comment, error)
	AddComment(ctx context.Context, caller Caller, id uint, content string) (*models.Comment, error)
}

type postService struct {
	posts pgrepo.PostRepository
}

func NewPostService(posts pgrepo.PostRepository) PostService {
	return &postService{posts: posts}
}

func validCategory(c string) bool {
	switch models.PostCategory(c) {
	case models.CategoryGeneral, models.CategoryEvent, models.CategoryAlumniUpdate,
		models.CategoryAnnouncement, models.CategoryAchievement, models.CategoryCareerUpdate:
		return true
	}
	return false
}

func (s *postService) Feed(ctx context.Context, caller Caller, category string, page utils.PageParams) ([]FeedPost, error) {
	const op = "PostService.Feed"

	if category == "ALL" {
		category = ""
	}
	p := pgrepo.FeedParams{
		Category: category,
		Offset:   page.Offset(),
		Limit:    page.Limit,
	}
	if caller.Role != models.RoleSuperAdmin {
		p.CollegeID = caller.CollegeID
	}

	posts, err := s.posts.Feed(ctx, p)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load feed", err)
	}

	ids := make([]uint, len(posts))
	for i, post := range posts {
		ids[i] = post.ID
	}
	liked, err := s.posts.LikedPostIDs(ctx, caller.UserID, ids)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load likes", err)
	}

	out := make([]FeedPost, len(posts))
	for i, post := range posts {
		out[i] = FeedPost{Post: post, IsLiked: liked[post.ID]}
	}
	return out, nil
}

func (s *postService) Get(ctx context.Context, caller Caller, id uint) (*FeedPost, error) {
	const op = "PostService.Get"

	post, err := s.getVisible(ctx, op, caller, id, true)
	if err != nil {
		return nil, err
	}

	isLiked, err := s.posts.HasLiked(ctx, caller.UserID, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load like state", err)
	}
	return &FeedPost{Post: *post, IsLiked: isLiked}, nil
}

func (s *postService) Create(ctx context.Context, caller Caller, req CreatePostRequest) (*models.Post, error) {
	const op = "PostService.Create"

	if strings.TrimSpace(req.Content) == "" && req.MediaURL == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "post needs content or media", nil)
	}

	category := req.Category
	if category == "" {
		category = string(models.CategoryGeneral)
	}
	if !validCategory(category) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "unknown category "+req.Category, nil)
	}

	mediaType := models.MediaNone
	if req.MediaURL != "" {
		mediaType = models.MediaImage
		if req.MediaType != "" {
			mediaType = models.MediaType(req.MediaType)
		}
	}

	post := &models.Post{
		UserID:             caller.UserID,
		CollegeID:          caller.CollegeID,
		Content:            req.Content,
		MediaURL:           req.MediaURL,
		MediaType:          mediaType,
		Category:           models.PostCategory(category),
		Scope:              models.ScopeCollege,
		EventStartDate:     req.EventStartDate,
		EventEndDate:       req.EventEndDate,
		AchievementType:    req.AchievementType,
		GamificationPoints: req.GamificationPoints,
		CareerType:         req.CareerType,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create post", err)
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, caller Caller, id uint) error {
	const op = "PostService.Delete"

	post, err := s.getVisible(ctx, op, caller, id, false)
	if err != nil {
		return err
	}

	owner := post.UserID == caller.UserID
	admin := caller.Role == models.RoleSuperAdmin || caller.Role == models.RoleCollegeAdmin
	if !owner && !admin {
		return utils.E(utils.CodeUnauthorized, op, "You are not allowed to delete this post.", nil)
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to delete post", err)
	}
	return nil
}

func (s *postService) ToggleLike(ctx context.Context, caller Caller, id uint) (*LikeResult, error) {
	const op = "PostService.ToggleLike"

	if _, err := s.getVisible(ctx, op, caller, id, false); err != nil {
		return nil, err
	}

	liked, count, err := s.posts.ToggleLike(ctx, caller.UserID, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to toggle like", err)
	}
	return &LikeResult{IsLiked: liked, LikesCount: count}, nil
}

func (s *postService) ListComments(ctx context.Context, caller Caller, id uint) ([]models.Comment, error) {
	const op = "PostService.ListComments"

	if _, err := s.getVisible(ctx, op, caller, id, false); err != nil {
		return nil, err
	}

	out, err := s.posts.ListComments(ctx, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load comments", err)
	}
	return out, nil
}

func (s *postService) AddComment(ctx context.Context, caller Caller, id uint, content string) (*models.Comment, error) {
	const op = "PostService.AddComment"

	if strings.TrimSpace(content) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "comment content is required", nil)
	}

	if _, err := s.getVisible(ctx, op, caller, id, false); err != nil {
		return nil, err
	}

	comment := &models.Comment{UserID: caller.UserID, PostID: id, Content: content}
	if err := s.posts.AddComment(ctx, comment); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to add comment", err)
	}

	full, err := s.posts.GetComment(ctx, comment.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to reload comment", err)
	}
	return full, nil
}

// getVisible loads the post and applies the tenant rule.
func (s *postService) getVisible(ctx context.Context, op string, caller Caller, id uint, withAuthor bool) (*models.Post, error) {
	var post *models.Post
	var err error
	if withAuthor {
		post, err = s.posts.GetByIDWithAuthor(ctx, id)
	} else {
		post, err = s.posts.GetByID(ctx, id)
	}
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "Post not found.", nil)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load post", err)
	}
	if !utils.CanAccessTenant(caller.Role, caller.CollegeID, post.CollegeID) {
		return nil, utils.E(utils.CodeForbidden, op, "Access denied.", nil)
	}
	return post, nil
}
