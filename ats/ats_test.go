package ats_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-talent-client/apiclient"
	"github.com/jrsteele09/go-talent-client/ats"
	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	fakesessionstore "github.com/jrsteele09/go-talent-client/sessions/repofakes"
	"github.com/jrsteele09/go-talent-client/token"
	"github.com/jrsteele09/go-talent-client/token/jwt/jwttest"
	"github.com/stretchr/testify/require"
)

const (
	testUserID   = 7
	testUsername = "hr.jane"
	testPassword = "password123"
)

// recorded is what the fake API saw for one call
type recorded struct {
	Method      string
	Path        string
	Query       string
	ContentType string
	Auth        string
	Body        string
}

type testFixture struct {
	store  *fakesessionstore.FakeSessionStore
	client *ats.Client

	lock  sync.Mutex
	calls []recorded
}

func setupTestFixture(t *testing.T, opts ...ats.Option) *testFixture {
	t.Helper()
	f := &testFixture{store: fakesessionstore.NewFakeSessionStore()}

	server := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(server.Close)

	api, err := apiclient.New(server.URL+"/api", f.store)
	require.NoError(t, err)
	f.client = ats.NewFromAPI(api, opts...)
	return f
}

func (f *testFixture) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.lock.Lock()
	f.calls = append(f.calls, recorded{
		Method:      r.Method,
		Path:        strings.TrimPrefix(r.URL.Path, "/api"),
		Query:       r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
		Auth:        r.Header.Get("Authorization"),
		Body:        string(body),
	})
	f.lock.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch path := strings.TrimPrefix(r.URL.Path, "/api"); {
	case path == "/token/refresh/":
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Token is invalid or expired"}`)
	case path == "/token/", path == "/auth/jwt/create/":
		var req token.LoginRequest
		_ = json.Unmarshal(body, &req)
		if req.Username != testUsername || req.Password != testPassword {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"No active account found with the given credentials"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(token.Pair{Access: jwttest.ExpiringIn(testUserID, time.Hour), Refresh: "R1"})
	case path == "/profile/":
		_, _ = io.WriteString(w, `{"id":7,"username":"hr.jane","email":"jane@example.com","profile":{"role":"hr"}}`)
	case path == "/jobs/" && r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `[{"id":1,"title":"Go Engineer","description":"d","requirements":"r","location":"Remote"}]`)
	case path == "/jobs/99/":
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Not found."}`)
	case path == "/applications/" && r.Method == http.MethodPost:
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":11,"job":1,"status":"received"}`)
	case path == "/applications/11/resume/":
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-bytes"))
	case path == "/all-applications/", path == "/dashboard/hr/", path == "/dashboard/candidate/":
		_, _ = io.WriteString(w, `[{"id":11,"status":"under_review","ats_score":81.5,"applicant_name":"Sam"}]`)
	case path == "/dashboard/mission-control/":
		_, _ = io.WriteString(w, `{"key_metrics":{"open_positions":3,"new_applicants_today":2,"under_review":5},"recent_activity":[{"id":11,"status":"received"}]}`)
	case path == "/screening/session/abc-123/":
		_, _ = io.WriteString(w, `{"id":"abc-123","status":"pending","questions":["Why Go?","Tell us about a bug."]}`)
	case path == "/tasks/" && r.Method == http.MethodPost:
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":4,"title":"Call Sam","due_date":"2025-07-01","is_completed":false}`)
	case strings.HasPrefix(path, "/tasks/4/"):
		_, _ = io.WriteString(w, `{"id":4,"title":"Call Sam","is_completed":true}`)
	case path == "/improve-text/":
		_, _ = io.WriteString(w, `{"improved_text":"Led the migration to Go."}`)
	case path == "/scan-resume/":
		_, _ = io.WriteString(w, `{"ats_score":72,"matching_keywords":["go"],"missing_keywords":["k8s"],"feedback_points":["add metrics"]}`)
	case path == "/generate-outreach-email/":
		_, _ = io.WriteString(w, `{"subject":"Interview","body":"Hi Sam"}`)
	case path == "/generate-interview-questions/":
		_, _ = io.WriteString(w, `{"questions":["Q1","Q2"]}`)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (f *testFixture) lastCall(t *testing.T) recorded {
	t.Helper()
	f.lock.Lock()
	defer f.lock.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func (f *testFixture) callCount() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.calls)
}

func (f *testFixture) login(t *testing.T) {
	t.Helper()
	_, err := f.client.Accounts.Login(context.Background(), testUsername, testPassword)
	require.NoError(t, err)
}

func TestLogin_PersistsPairAndMatchesProfile(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)

	identity, err := f.client.Accounts.Login(ctx, testUsername, testPassword)
	require.NoError(t, err)
	require.True(t, f.client.Accounts.SignedIn(ctx))

	stored, err := f.store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "R1", stored.Refresh)
	require.Empty(t, f.lastCall(t).Auth, "login is sent unauthenticated")

	user, err := f.client.Accounts.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, identity.Subject, user.ID.String())
	require.Equal(t, ats.RoleHR, user.Profile.Role)
	require.Equal(t, "Bearer "+stored.Access, f.lastCall(t).Auth)
}

func TestLogin_BadCredentials(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)

	_, err := f.client.Accounts.Login(ctx, testUsername, "wrong")

	require.True(t, apiclient.IsUnauthorized(err))
	require.False(t, f.client.Accounts.SignedIn(ctx))
}

func TestLogoutAndIdentity(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)

	_, err := f.client.Accounts.Identity(ctx)
	require.ErrorIs(t, err, apperrors.ErrNoCredential)

	f.login(t)
	identity, err := f.client.Accounts.Identity(ctx)
	require.NoError(t, err)
	require.Equal(t, "7", identity.Subject)

	require.NoError(t, f.client.Accounts.Logout(ctx))
	require.False(t, f.client.Accounts.SignedIn(ctx))

	_, err = f.client.Jobs.List(ctx)
	require.NoError(t, err)
	require.Empty(t, f.lastCall(t).Auth)
}

func TestRegister_IsUnauthenticated(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	err := f.client.Accounts.Register(context.Background(), ats.RegisterRequest{Username: "sam", Email: "sam@example.com", Password: "pw"})

	require.NoError(t, err)
	call := f.lastCall(t)
	require.Equal(t, "/register/", call.Path)
	require.Empty(t, call.Auth)
	require.JSONEq(t, `{"username":"sam","email":"sam@example.com","password":"pw"}`, call.Body)
}

func TestJobs(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)

	jobs, err := f.client.Jobs.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, "Go Engineer", jobs[0].Title)

	_, err = f.client.Jobs.Get(ctx, 99)
	require.True(t, apiclient.IsNotFound(err))
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.client.Jobs.Get(ctx, 0)
	require.ErrorIs(t, err, apperrors.ErrInvalidID)

	f.login(t)
	require.NoError(t, f.client.Jobs.Delete(ctx, 5))
	call := f.lastCall(t)
	require.Equal(t, http.MethodDelete, call.Method)
	require.Equal(t, "/jobs/5/", call.Path)
}

func TestApply_Multipart(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	app, err := f.client.Applications.Apply(context.Background(), ats.ApplyRequest{
		Job:            1,
		ResumeFilename: "cv.pdf",
		Resume:         strings.NewReader("RESUME"),
		GithubURL:      "https://github.com/sam",
	})

	require.NoError(t, err)
	require.Equal(t, 11, app.ID)
	require.Equal(t, ats.StatusReceived, app.Status)
	call := f.lastCall(t)
	require.True(t, strings.HasPrefix(call.ContentType, "multipart/form-data"))
	require.Contains(t, call.Body, `name="github_url"`)
	require.Contains(t, call.Body, "RESUME")
}

func TestApply_MissingResume(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)
	before := f.callCount()

	_, err := f.client.Applications.Apply(context.Background(), ats.ApplyRequest{Job: 1, ResumeFilename: "cv.pdf"})

	require.ErrorIs(t, err, apperrors.ErrUnsupported)
	require.Equal(t, before, f.callCount(), "nothing is sent without a resume")
}

func TestResumeScan_MissingFile(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	_, err := f.client.Resume.Scan(context.Background(), "cv.pdf", nil, "Go engineer")

	require.ErrorIs(t, err, apperrors.ErrUnsupported)
}

func TestJobs_PublicReadsIgnoreDeadSession(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	dead := token.Pair{Access: jwttest.ExpiringIn(testUserID, -time.Minute), Refresh: "R_dead"}
	require.NoError(t, f.store.Set(ctx, dead))

	jobs, err := f.client.Jobs.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Empty(t, f.lastCall(t).Auth)
	require.Equal(t, "/jobs/", f.lastCall(t).Path, "no refresh attempted")

	stored, err := f.store.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, &dead, stored, "session left untouched")
}

func TestLogin_CustomLoginPath(t *testing.T) {
	f := setupTestFixture(t, ats.WithLoginPath("/auth/jwt/create/"))

	_, err := f.client.Accounts.Login(context.Background(), testUsername, testPassword)

	require.NoError(t, err)
	require.Equal(t, "/auth/jwt/create/", f.lastCall(t).Path)
	require.True(t, f.client.Accounts.SignedIn(context.Background()))
}

func TestApplications_ResumeIsBinary(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	data, contentType, err := f.client.Applications.Resume(context.Background(), 11)

	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-bytes"), data)
	require.Equal(t, "application/pdf", contentType)
}

func TestApplications_ListFilters(t *testing.T) {
	f := setupTestFixture(t)
	f.login(t)

	apps, err := f.client.Applications.List(context.Background(), ats.ApplicationFilter{
		Status:   ats.StatusUnderReview,
		Job:      1,
		Ordering: "-potential_score",
	})

	require.NoError(t, err)
	require.Len(t, apps, 1)
	require.InDelta(t, 81.5, *apps[0].ATSScore, 0.001)
	require.Equal(t, "job=1&ordering=-potential_score&status=under_review", f.lastCall(t).Query)
}

func TestApplications_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.login(t)

	require.NoError(t, f.client.Applications.UpdateStatus(ctx, 11, ats.StatusInterview))
	call := f.lastCall(t)
	require.Equal(t, http.MethodPatch, call.Method)
	require.Equal(t, "/applications/11/status/", call.Path)
	require.JSONEq(t, `{"status":"interview"}`, call.Body)

	require.ErrorIs(t, f.client.Applications.UpdateStatus(ctx, 11, "ghosted"), apperrors.ErrUnsupported)
}

func TestDashboards(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.login(t)

	mc, err := f.client.Dashboards.MissionControl(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, mc.KeyMetrics.OpenPositions)
	require.Len(t, mc.RecentActivity, 1)

	_, err = f.client.Dashboards.HR(ctx, ats.ApplicationFilter{Search: "sam"})
	require.NoError(t, err)
	require.Equal(t, "search=sam", f.lastCall(t).Query)

	apps, err := f.client.Dashboards.Candidate(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
}

func TestScreening(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.login(t)

	require.NoError(t, f.client.Screening.Initiate(ctx, 11))
	require.JSONEq(t, `{"application_id":11}`, f.lastCall(t).Body)
	require.NotEmpty(t, f.lastCall(t).Auth)

	session, err := f.client.Screening.Session(ctx, "abc-123")
	require.NoError(t, err)
	require.Equal(t, ats.ScreeningPending, session.Status)
	require.Empty(t, f.lastCall(t).Auth, "screening links are public")

	transcript := ats.Transcript(session.Questions, []string{"Concurrency"})
	require.NoError(t, f.client.Screening.Submit(ctx, "abc-123", transcript))
	require.JSONEq(t,
		`{"transcript":[{"question":"Why Go?","answer":"Concurrency"},{"question":"Tell us about a bug.","answer":""}]}`,
		f.lastCall(t).Body)

	_, err = f.client.Screening.Session(ctx, " ")
	require.ErrorIs(t, err, apperrors.ErrInvalidID)
}

func TestTasks(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.login(t)

	due := time.Date(2025, 7, 1, 15, 0, 0, 0, time.UTC)
	task, err := f.client.Tasks.Create(ctx, "Call Sam", &due)
	require.NoError(t, err)
	require.Equal(t, 4, task.ID)
	require.JSONEq(t, `{"title":"Call Sam","due_date":"2025-07-01"}`, f.lastCall(t).Body)

	task, err = f.client.Tasks.Complete(ctx, 4, true)
	require.NoError(t, err)
	require.True(t, task.IsCompleted)
	require.JSONEq(t, `{"is_completed":true}`, f.lastCall(t).Body)
}

func TestAutomationAndNotes(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.login(t)

	require.NoError(t, f.client.Automation.SetActive(ctx, 3, false))
	require.Equal(t, "/automation-rules/3/", f.lastCall(t).Path)
	require.JSONEq(t, `{"is_active":false}`, f.lastCall(t).Body)

	_, err := f.client.Notes.Add(ctx, 11, "Strong systems background")
	require.NoError(t, err)
	require.JSONEq(t, `{"application":11,"text":"Strong systems background"}`, f.lastCall(t).Body)
}

func TestResumeAndAssistant(t *testing.T) {
	ctx := context.Background()
	f := setupTestFixture(t)
	f.login(t)

	improved, err := f.client.Resume.ImproveText(ctx, "did go stuff")
	require.NoError(t, err)
	require.Equal(t, "Led the migration to Go.", improved)

	scan, err := f.client.Resume.Scan(ctx, "cv.pdf", strings.NewReader("RESUME"), "Go engineer")
	require.NoError(t, err)
	require.Equal(t, []string{"k8s"}, scan.MissingKeywords)

	email, err := f.client.Assistant.OutreachEmail(ctx, 11, ats.EmailInterview)
	require.NoError(t, err)
	require.Equal(t, "Interview", email.Subject)
	require.JSONEq(t, `{"application_id":11,"email_type":"interview"}`, f.lastCall(t).Body)

	questions, err := f.client.Assistant.InterviewQuestions(ctx, 11)
	require.NoError(t, err)
	require.Equal(t, []string{"Q1", "Q2"}, questions)

	require.NoError(t, f.client.Assistant.SendEmail(ctx, "sam@example.com", *email))
	require.JSONEq(t, `{"recipient_email":"sam@example.com","subject":"Interview","body":"Hi Sam"}`, f.lastCall(t).Body)
}
