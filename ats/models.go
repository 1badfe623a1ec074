package ats

import "encoding/json"

// ApplicationStatus is the hiring pipeline stage of an application
type ApplicationStatus string

const (
	StatusReceived    ApplicationStatus = "received"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusInterview   ApplicationStatus = "interview"
	StatusHired       ApplicationStatus = "hired"
	StatusRejected    ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the known pipeline stages
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusUnderReview, StatusInterview, StatusHired, StatusRejected:
		return true
	}
	return false
}

// RoleType is the profile role carried by a user
type RoleType string

const (
	RoleCandidate RoleType = "candidate"
	RoleHR        RoleType = "hr"
)

type Profile struct {
	Role RoleType `json:"role"`
}

// User is the signed-in account as returned by the profile endpoint
type User struct {
	ID       json.Number `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email,omitempty"`
	Profile  *Profile    `json:"profile,omitempty"`
}

type Job struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type JobInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location,omitempty"`
}

type Note struct {
	ID          int    `json:"id,omitempty"`
	Application int    `json:"application"`
	Text        string `json:"text"`
	Author      string `json:"author,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type Application struct {
	ID                  int               `json:"id"`
	Job                 int               `json:"job,omitempty"`
	JobTitle            string            `json:"job_title,omitempty"`
	ApplicantName       string            `json:"applicant_name,omitempty"`
	ApplicantEmail      string            `json:"applicant_email,omitempty"`
	Status              ApplicationStatus `json:"status"`
	AppliedAt           string            `json:"applied_at,omitempty"`
	ATSScore            *float64          `json:"ats_score,omitempty"`
	PotentialScore      *float64          `json:"potential_score,omitempty"`
	GithubURL           string            `json:"github_url,omitempty"`
	GithubScore         *float64          `json:"github_score,omitempty"`
	GithubAnalysis      json.RawMessage   `json:"github_analysis,omitempty"`
	TechnicalScore      *float64          `json:"technical_score,omitempty"`
	ProblemSolvingScore *float64          `json:"problem_solving_score,omitempty"`
	InternshipScore     *float64          `json:"internship_score,omitempty"`
	AnalysisStatus      string            `json:"analysis_status,omitempty"`
	Notes               []Note            `json:"notes,omitempty"`
	ScreeningSession    *ScreeningSession `json:"screening_session,omitempty"`
}

// ApplicationFilter narrows application listings; zero fields are omitted
type ApplicationFilter struct {
	Search   string
	Status   ApplicationStatus
	Job      int
	Ordering string // e.g. "-potential_score", "ats_score", "-applied_at"
}

type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	DueDate     string `json:"due_date,omitempty"` // YYYY-MM-DD
	IsCompleted bool   `json:"is_completed"`
	Priority    string `json:"priority,omitempty"`
}

// TaskUpdate is a partial update; nil fields are left untouched
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

type AutomationRule struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	IsActive     bool     `json:"is_active"`
	ATSThreshold *float64 `json:"ats_threshold,omitempty"`
}

// ScreeningStatus values reported by the API while a screening runs
const (
	ScreeningGeneratingQuestions = "generating_questions"
	ScreeningPending             = "pending"
	ScreeningCompleted           = "completed"
)

type ScreeningSession struct {
	ID        string   `json:"id"`
	Status    string   `json:"status"`
	Questions []string `json:"questions,omitempty"`
}

type TranscriptEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type KeyMetrics struct {
	OpenPositions      int `json:"open_positions"`
	NewApplicantsToday int `json:"new_applicants_today"`
	UnderReview        int `json:"under_review"`
}

type MissionControl struct {
	KeyMetrics     KeyMetrics    `json:"key_metrics"`
	RecentActivity []Application `json:"recent_activity"`
}

type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type Experience struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Description string `json:"description,omitempty"`
}

type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// Resume is the structured resume kept by the resume builder
type Resume struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	Summary      string       `json:"summary,omitempty"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       []string     `json:"skills"`
}

type ResumeScan struct {
	ATSScore         float64  `json:"ats_score"`
	MatchingKeywords []string `json:"matching_keywords"`
	MissingKeywords  []string `json:"missing_keywords"`
	FeedbackPoints   []string `json:"feedback_points"`
}

type GeneratedDescription struct {
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
