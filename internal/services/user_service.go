package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/storage"
	"github.com/collegeconnect/backend/internal/utils"
)

// ProfileUpdate is the editable subset of a profile. Zero values overwrite.
type ProfileUpdate struct {
	FullName          string `json:"fullName"`
	Bio               string `json:"bio"`
	Headline          string `json:"headline"`
	Department        string `json:"department"`
	Section           string `json:"section"`
	GraduationYear    *int   `json:"graduationYear"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// CareerExperienceInput is one experience entry as submitted by the client.
// EndDate accepts "", "Present" or a YYYY-MM-DD date.
type CareerExperienceInput struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type CareerLocationInput struct {
	City     string `json:"city"`
	Country  string `json:"country"`
	Locality string `json:"locality"`
}

// CareerUpdate replaces the user's experiences and skills wholesale.
type CareerUpdate struct {
	Experiences []CareerExperienceInput `json:"experiences"`
	Skills      []string                `json:"skills"`
	Location    *CareerLocationInput    `json:"location"`
}

type UserService interface {
	// Search scopes the directory query to the caller's college unless the
	// caller is a super admin.
	Search(ctx context.Context, callerRole models.Role, callerCollegeID *string, p pgrepo.SearchParams) (utils.Paged, error)
	GetMe(ctx context.Context, userID string) (*models.User, error)
	GetByUsername(ctx context.Context, callerRole models.Role, callerCollegeID *string, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.Profile, error)
	ReplaceCareer(ctx context.Context, userID string, upd CareerUpdate) (*models.User, error)
	UploadResume(ctx context.Context, userID, contentType string, data []byte) (string, error)
}

type userService struct {
	users    pgrepo.UserRepository
	uploader storage.Uploader
}

func NewUserService(users pgrepo.UserRepository, uploader storage.Uploader) UserService {
	return &userService{users: users, uploader: uploader}
}

func (s *userService) Search(ctx context.Context, callerRole models.Role, callerCollegeID *string, p pgrepo.SearchParams) (utils.Paged, error) {
	const op = "UserService.Search"

	if callerRole != models.RoleSuperAdmin {
		p.CollegeID = callerCollegeID
	}

	users, total, err := s.users.Search(ctx, p)
	if err != nil {
		return utils.Paged{}, utils.E(utils.CodeInternal, op, "search failed", err)
	}
	pp := utils.PageParams{Page: 1, Limit: p.Limit}
	if p.Limit > 0 {
		pp.Page = p.Offset/p.Limit + 1
	}
	return utils.NewPaged(total, pp, users), nil
}

func (s *userService) GetMe(ctx context.Context, userID string) (*models.User, error) {
	const op = "UserService.GetMe"

	user, err := s.users.GetWithCareer(ctx, userID, true)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "User not found.", nil)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load account", err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, callerRole models.Role, callerCollegeID *string, username string) (*models.User, error) {
	const op = "UserService.GetByUsername"

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "User not found.", nil)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	if !utils.CanAccessTenant(callerRole, callerCollegeID, user.CollegeID) {
		return nil, utils.E(utils.CodeForbidden, op, "Access denied.", nil)
	}

	full, err := s.users.GetWithCareer(ctx, user.ID, true)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
	}
	return full, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*models.Profile, error) {
	const op = "UserService.UpdateProfile"

	if strings.TrimSpace(upd.FullName) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "fullName is required", nil)
	}

	p := &models.Profile{
		UserID:            userID,
		FullName:          upd.FullName,
		Bio:               upd.Bio,
		Headline:          upd.Headline,
		Department:        upd.Department,
		Section:           upd.Section,
		GraduationYear:    upd.GraduationYear,
		ProfilePictureURL: upd.ProfilePictureURL,
	}
	if err := s.users.UpsertProfile(ctx, p); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save profile", err)
	}
	return p, nil
}

func parseCareerDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

func (s *userService) ReplaceCareer(ctx context.Context, userID string, upd CareerUpdate) (*models.User, error) {
	const op = "UserService.ReplaceCareer"

	exps := make([]pgrepo.CareerExperience, 0, len(upd.Experiences))
	for i, in := range upd.Experiences {
		start, err := parseCareerDate(in.StartDate)
		if err != nil {
			return nil, utils.E(utils.CodeInvalidArgument, op,
				fmt.Sprintf("experience %d: invalid startDate %q", i, in.StartDate), err)
		}

		var end *time.Time
		raw := strings.TrimSpace(in.EndDate)
		if raw != "" && !strings.EqualFold(raw, "present") {
			t, err := parseCareerDate(raw)
			if err != nil {
				return nil, utils.E(utils.CodeInvalidArgument, op,
					fmt.Sprintf("experience %d: invalid endDate %q", i, in.EndDate), err)
			}
			end = &t
		}

		exps = append(exps, pgrepo.CareerExperience{
			CompanyName: in.Company,
			Title:       in.Title,
			StartDate:   start,
			EndDate:     end,
			Description: in.Description,
		})
	}

	var loc *pgrepo.CareerLocation
	if upd.Location != nil {
		loc = &pgrepo.CareerLocation{
			City:     upd.Location.City,
			Country:  upd.Location.Country,
			Locality: upd.Location.Locality,
		}
	}

	if err := s.users.ReplaceCareer(ctx, userID, exps, upd.Skills, loc); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "failed to update career", err)
	}

	user, err := s.users.GetWithCareer(ctx, userID, false)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to reload career", err)
	}
	return user, nil
}

func (s *userService) UploadResume(ctx context.Context, userID, contentType string, data []byte) (string, error) {
	const op = "UserService.UploadResume"

	if s.uploader == nil {
		return "", utils.E(utils.CodeUnavailable, op, "file storage is not configured", nil)
	}
	if len(data) == 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "resume file is empty", nil)
	}

	objectName := path.Join("resumes", userID+"-"+uuid.NewString()+".pdf")
	url, err := s.uploader.Upload(ctx, objectName, contentType, bytes.NewReader(data))
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to store resume", err)
	}
	if err := s.users.SetResumeURL(ctx, userID, url); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to save resume url", err)
	}
	return url, nil
}
