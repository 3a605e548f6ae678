package services

import (
	"net/http"
	"testing"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
)

type supportFixture struct {
	svc     SupportService
	student Caller
	peer    Caller
	admin   Caller
	foreign Caller
	super   Caller
}

func newSupportFixture(t *testing.T) supportFixture {
	t.Helper()

	db := newTestDB(t)
	collegeA := seedCollege(t, db, "College A", "aaa")
	collegeB := seedCollege(t, db, "College B", "bbb")

	student := seedUser(t, db, &collegeA.ID, "student", "pw", models.RoleStudent)
	peer := seedUser(t, db, &collegeA.ID, "peer", "pw", models.RoleStudent)
	admin := seedUser(t, db, &collegeA.ID, "admin", "pw", models.RoleCollegeAdmin)
	foreign := seedUser(t, db, &collegeB.ID, "foreign", "pw", models.RoleCollegeAdmin)
	super := seedUser(t, db, nil, "root", "pw", models.RoleSuperAdmin)

	asCaller := func(u *models.User) Caller {
		return Caller{UserID: u.ID, Role: u.Role, CollegeID: u.CollegeID}
	}
	return supportFixture{
		svc:     NewSupportService(pgrepo.NewSupportRepo(db)),
		student: asCaller(student),
		peer:    asCaller(peer),
		admin:   asCaller(admin),
		foreign: asCaller(foreign),
		super:   asCaller(super),
	}
}

func TestTicketVisibilityWidensWithRole(t *testing.T) {
	f := newSupportFixture(t)

	ticket, err := f.svc.Create(testCtx(), f.student, CreateTicketRequest{
		Title: "Feed is empty", Description: "No posts load on mobile.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// reporter sees it
	if _, err := f.svc.Get(testCtx(), f.student, ticket.ID); err != nil {
		t.Fatalf("reporter get: %v", err)
	}
	// another student does not
	_, err = f.svc.Get(testCtx(), f.peer, ticket.ID)
	wantStatus(t, err, http.StatusForbidden)
	// the college admin does
	if _, err := f.svc.Get(testCtx(), f.admin, ticket.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}
	// an admin of another college does not
	_, err = f.svc.Get(testCtx(), f.foreign, ticket.ID)
	wantStatus(t, err, http.StatusForbidden)
	// the super admin does
	if _, err := f.svc.Get(testCtx(), f.super, ticket.ID); err != nil {
		t.Fatalf("super get: %v", err)
	}

	mine, err := f.svc.List(testCtx(), f.peer, "", "")
	if err != nil {
		t.Fatalf("peer list: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("peer sees %d tickets, want 0", len(mine))
	}
}

func TestTicketStatusUpdate(t *testing.T) {
	f := newSupportFixture(t)

	ticket, err := f.svc.Create(testCtx(), f.student, CreateTicketRequest{
		Title: "Broken login", Description: "500 on submit.", Type: "BUG", Priority: "HIGH",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ticket.Status != models.TicketOpen {
		t.Fatalf("status = %s, want OPEN", ticket.Status)
	}

	// the reporter cannot move the status
	_, err = f.svc.UpdateStatus(testCtx(), f.student, ticket.ID, "RESOLVED")
	wantStatus(t, err, http.StatusForbidden)

	// an admin of another college cannot either
	_, err = f.svc.UpdateStatus(testCtx(), f.foreign, ticket.ID, "RESOLVED")
	wantStatus(t, err, http.StatusForbidden)

	got, err := f.svc.UpdateStatus(testCtx(), f.admin, ticket.ID, "IN_PROGRESS")
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if got.Status != models.TicketInProgress {
		t.Fatalf("status = %s, want IN_PROGRESS", got.Status)
	}

	_, err = f.svc.UpdateStatus(testCtx(), f.admin, ticket.ID, "NOT_A_STATUS")
	wantStatus(t, err, http.StatusBadRequest)
}

func TestTicketCommentThread(t *testing.T) {
	f := newSupportFixture(t)

	ticket, err := f.svc.Create(testCtx(), f.student, CreateTicketRequest{
		Title: "Dark mode", Description: "Please add it.", Type: "FEATURE_REQUEST",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.AddComment(testCtx(), f.admin, ticket.ID, "On the roadmap."); err != nil {
		t.Fatalf("admin comment: %v", err)
	}
	if _, err := f.svc.AddComment(testCtx(), f.student, ticket.ID, "Thanks!"); err != nil {
		t.Fatalf("reporter comment: %v", err)
	}

	// outsiders cannot join the thread
	_, err = f.svc.AddComment(testCtx(), f.peer, ticket.ID, "me too")
	wantStatus(t, err, http.StatusForbidden)

	comments, err := f.svc.ListComments(testCtx(), f.student, ticket.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(comments) != 2 || comments[0].Content != "On the roadmap." {
		t.Fatalf("comments = %+v", comments)
	}
}
