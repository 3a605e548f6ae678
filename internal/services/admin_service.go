package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

// RosterRow is one account from an uploaded roster CSV.
type RosterRow struct {
	Name           string
	RollNumber     string
	Email          string
	Department     string
	Section        string
	GraduationYear *int
	Role           string
	DOB            string
}

// SyncResult reports a roster import row by row.
type SyncResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

type AdminService interface {
	ListUsers(ctx context.Context, collegeID string, search, role string, page utils.PageParams) (utils.Paged, error)
	ParseRosterCSV(r io.Reader) ([]RosterRow, error)
	// ImportRoster creates or updates one account per row. Bad rows are
	// reported in the result; good rows still land.
	ImportRoster(ctx context.Context, collegeID string, rows []RosterRow) (*SyncResult, error)
	BulkUpdateRole(ctx context.Context, collegeID string, userIDs []string, role string) (int64, error)
}

type adminService struct {
	users pgrepo.UserRepository
}

func NewAdminService(users pgrepo.UserRepository) AdminService {
	return &adminService{users: users}
}

func (s *adminService) ListUsers(ctx context.Context, collegeID string, search, role string, page utils.PageParams) (utils.Paged, error) {
	const op = "AdminService.ListUsers"

	p := pgrepo.AdminListParams{
		Search: search,
		Offset: page.Offset(),
		Limit:  page.Limit,
	}
	if role != "" {
		if !models.ValidRole(role) {
			return utils.Paged{}, utils.E(utils.CodeInvalidArgument, op, "unknown role "+role, nil)
		}
		r := models.Role(role)
		p.Role = &r
	}

	users, total, err := s.users.ListByCollege(ctx, collegeID, p)
	if err != nil {
		return utils.Paged{}, utils.E(utils.CodeInternal, op, "failed to list users", err)
	}
	return utils.NewPaged(total, page, users), nil
}

// rosterHeader maps the accepted CSV column names to row fields.
var rosterHeader = map[string]int{
	"name": 0, "fullname": 0, "full_name": 0,
	"rollnumber": 1, "roll_number": 1, "roll": 1,
	"email":      2,
	"department": 3, "branch": 3,
	"section":        4,
	"graduationyear": 5, "graduation_year": 5, "batch": 5,
	"role": 6,
	"dob":  7, "dateofbirth": 7, "date_of_birth": 7,
}

func (s *adminService) ParseRosterCSV(r io.Reader) ([]RosterRow, error) {
	const op = "AdminService.ParseRosterCSV"

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "empty or unreadable CSV", err)
	}

	// position of each known field in this file's column order
	fields := make(map[int]int, len(header))
	for col, name := range header {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
		if idx, ok := rosterHeader[key]; ok {
			fields[idx] = col
		}
	}
	if _, ok := fields[0]; !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, "CSV is missing a name column", nil)
	}
	if _, ok := fields[1]; !ok {
		return nil, utils.E(utils.CodeInvalidArgument, op, "CSV is missing a rollNumber column", nil)
	}

	get := func(record []string, idx int) string {
		col, ok := fields[idx]
		if !ok || col >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[col])
	}

	var rows []RosterRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, utils.E(utils.CodeInvalidArgument, op, "malformed CSV", err)
		}

		row := RosterRow{
			Name:       get(record, 0),
			RollNumber: get(record, 1),
			Email:      get(record, 2),
			Department: get(record, 3),
			Section:    get(record, 4),
			Role:       strings.ToUpper(get(record, 6)),
			DOB:        get(record, 7),
		}
		if y := get(record, 5); y != "" {
			if n, err := strconv.Atoi(y); err == nil {
				row.GraduationYear = &n
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// importableRole checks roles an admin may assign through the roster.
func importableRole(role string) bool {
	switch models.Role(role) {
	case models.RoleStudent, models.RoleAlumni, models.RoleFaculty:
		return true
	}
	return false
}

func (s *adminService) ImportRoster(ctx context.Context, collegeID string, rows []RosterRow) (*SyncResult, error) {
	const op = "AdminService.ImportRoster"

	if len(rows) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "roster is empty", nil)
	}

	res := &SyncResult{Errors: []string{}}
	for i, row := range rows {
		if err := s.importRow(ctx, collegeID, row); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d (%s): %v", i+1, row.RollNumber, err))
			continue
		}
		res.Success++
	}
	return res, nil
}

func (s *adminService) importRow(ctx context.Context, collegeID string, row RosterRow) error {
	if row.Name == "" || row.RollNumber == "" {
		return errors.New("name and rollNumber are required")
	}

	role := row.Role
	if role == "" {
		role = string(models.RoleStudent)
	}
	if !importableRole(role) {
		return fmt.Errorf("role %q cannot be assigned through the roster", role)
	}

	var dob *datatypes.Date
	if row.DOB != "" {
		t, err := time.Parse("2006-01-02", row.DOB)
		if err != nil {
			return fmt.Errorf("invalid dob %q", row.DOB)
		}
		d := datatypes.Date(t)
		dob = &d
	}

	user, err := s.users.FindByUsernameAndCollege(ctx, row.RollNumber, collegeID)
	switch {
	case errors.Is(err, utils.ErrNotFound):
		hash, err := utils.HashPassword(utils.RosterPassword(row.Name, row.RollNumber))
		if err != nil {
			return err
		}
		email := row.Email
		if email == "" {
			email = strings.ToLower(row.RollNumber) + "@" + collegeID + ".edu"
		}
		user = &models.User{
			CollegeID:    &collegeID,
			Email:        &email,
			Username:     row.RollNumber,
			Role:         models.Role(role),
			PasswordHash: hash,
			DOB:          dob,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if utils.IsDuplicate(err) {
				return fmt.Errorf("email %s is already in use", email)
			}
			return err
		}
	case err != nil:
		return err
	default:
		// existing accounts keep their credentials; only the role moves
		if user.Role != models.Role(role) {
			if err := s.users.UpdateRole(ctx, user.ID, models.Role(role)); err != nil {
				return err
			}
		}
	}

	p := &models.Profile{
		UserID:         user.ID,
		FullName:       row.Name,
		Department:     row.Department,
		Section:        row.Section,
		GraduationYear: row.GraduationYear,
	}
	// re-imports keep whatever the user has filled in themselves
	if existing, err := s.users.GetProfile(ctx, user.ID); err == nil {
		p.Bio = existing.Bio
		p.Headline = existing.Headline
		p.ProfilePictureURL = existing.ProfilePictureURL
	}
	return s.users.UpsertProfile(ctx, p)
}

func (s *adminService) BulkUpdateRole(ctx context.Context, collegeID string, userIDs []string, role string) (int64, error) {
	const op = "AdminService.BulkUpdateRole"

	if len(userIDs) == 0 {
		return 0, utils.E(utils.CodeInvalidArgument, op, "userIds is required", nil)
	}
	if !importableRole(role) {
		return 0, utils.E(utils.CodeInvalidArgument, op, "role must be STUDENT, ALUMNI or FACULTY", nil)
	}

	n, err := s.users.BulkUpdateRole(ctx, collegeID, userIDs, models.Role(role))
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to update roles", err)
	}
	if n == 0 {
		return 0, utils.E(utils.CodeNotFound, op, "No matching users found.", nil)
	}
	return n, nil
}
