package services

import (
	"net/http"
	"testing"

	"github.com/collegeconnect/backend/internal/models"
	pgrepo "github.com/collegeconnect/backend/internal/repositories/postgres"
	"github.com/collegeconnect/backend/internal/utils"
)

func newPostFixture(t *testing.T) (PostService, *models.College, *models.User, Caller) {
	t.Helper()

	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")
	user := seedUser(t, db, &college.ID, "stu1", "pw", models.RoleStudent)
	seedProfile(t, db, user.ID, "Student One")
	svc := NewPostService(pgrepo.NewPostRepo(db))
	caller := Caller{UserID: user.ID, Role: user.Role, CollegeID: user.CollegeID}
	return svc, college, user, caller
}

func TestToggleLikeRoundTrip(t *testing.T) {
	svc, _, _, caller := newPostFixture(t)

	post, err := svc.Create(testCtx(), caller, CreatePostRequest{Content: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	res, err := svc.ToggleLike(testCtx(), caller, post.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !res.IsLiked || res.LikesCount != 1 {
		t.Fatalf("first toggle = {%v %d}, want {true 1}", res.IsLiked, res.LikesCount)
	}

	res, err = svc.ToggleLike(testCtx(), caller, post.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if res.IsLiked || res.LikesCount != 0 {
		t.Fatalf("second toggle = {%v %d}, want {false 0}", res.IsLiked, res.LikesCount)
	}
}

func TestFeedMarksLikedPosts(t *testing.T) {
	svc, _, _, caller := newPostFixture(t)

	liked, err := svc.Create(testCtx(), caller, CreatePostRequest{Content: "liked"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(testCtx(), caller, CreatePostRequest{Content: "not liked"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ToggleLike(testCtx(), caller, liked.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	feed, err := svc.Feed(testCtx(), caller, "", utils.PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("feed length = %d, want 2", len(feed))
	}
	for _, p := range feed {
		want := p.ID == liked.ID
		if p.IsLiked != want {
			t.Fatalf("post %d isLiked = %v, want %v", p.ID, p.IsLiked, want)
		}
	}
}

func TestCreatePostRequiresContentOrMedia(t *testing.T) {
	svc, _, _, caller := newPostFixture(t)

	_, err := svc.Create(testCtx(), caller, CreatePostRequest{Content: "   "})
	wantStatus(t, err, http.StatusBadRequest)
}

func TestCommentBumpsCounter(t *testing.T) {
	svc, _, _, caller := newPostFixture(t)

	post, err := svc.Create(testCtx(), caller, CreatePostRequest{Content: "discuss"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AddComment(testCtx(), caller, post.ID, "first!"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	got, err := svc.Get(testCtx(), caller, post.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CommentsCount != 1 {
		t.Fatalf("commentsCount = %d, want 1", got.CommentsCount)
	}

	comments, err := svc.ListComments(testCtx(), caller, post.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 || comments[0].Content != "first!" {
		t.Fatalf("comments = %+v", comments)
	}
}

func TestDeletePostAuthorization(t *testing.T) {
	db := newTestDB(t)
	college := seedCollege(t, db, "Test Institute", "testinst")
	author := seedUser(t, db, &college.ID, "author", "pw", models.RoleStudent)
	other := seedUser(t, db, &college.ID, "other", "pw", models.RoleAlumni)
	admin := seedUser(t, db, &college.ID, "admin", "pw", models.RoleCollegeAdmin)
	svc := NewPostService(pgrepo.NewPostRepo(db))

	authorCaller := Caller{UserID: author.ID, Role: author.Role, CollegeID: author.CollegeID}
	otherCaller := Caller{UserID: other.ID, Role: other.Role, CollegeID: other.CollegeID}
	adminCaller := Caller{UserID: admin.ID, Role: admin.Role, CollegeID: admin.CollegeID}

	post, err := svc.Create(testCtx(), authorCaller, CreatePostRequest{Content: "mine"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.Delete(testCtx(), otherCaller, post.ID)
	wantStatus(t, err, http.StatusUnauthorized)

	if err := svc.Delete(testCtx(), adminCaller, post.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	_, err = svc.Get(testCtx(), authorCaller, post.ID)
	wantStatus(t, err, http.StatusNotFound)
}

func TestFeedIsTenantScoped(t *testing.T) {
	db := newTestDB(t)
	collegeA := seedCollege(t, db, "College A", "aaa")
	collegeB := seedCollege(t, db, "College B", "bbb")
	userA := seedUser(t, db, &collegeA.ID, "ua", "pw", models.RoleStudent)
	userB := seedUser(t, db, &collegeB.ID, "ub", "pw", models.RoleStudent)
	svc := NewPostService(pgrepo.NewPostRepo(db))

	callerA := Caller{UserID: userA.ID, Role: userA.Role, CollegeID: userA.CollegeID}
	callerB := Caller{UserID: userB.ID, Role: userB.Role, CollegeID: userB.CollegeID}

	postA, err := svc.Create(testCtx(), callerA, CreatePostRequest{Content: "a-only"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	feedB, err := svc.Feed(testCtx(), callerB, "", utils.PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feedB) != 0 {
		t.Fatalf("cross-college feed length = %d, want 0", len(feedB))
	}

	_, err = svc.Get(testCtx(), callerB, postA.ID)
	wantStatus(t, err, http.StatusForbidden)
}
