package ats

import "context"

// EmailType selects the outreach template the API writes
type EmailType string

const (
	EmailInterview EmailType = "interview"
	EmailRejection EmailType = "rejection"
)

// AssistantService fronts the API's text generation endpoints
type AssistantService struct {
	service
}

type applicationRef struct {
	ApplicationID int `json:"application_id"`
}

func (s *AssistantService) InterviewQuestions(ctx context.Context, applicationID int) ([]string, error) {
	var out struct {
		Questions []string `json:"questions"`
	}
	if err := s.post(ctx, "/generate-interview-questions/", applicationRef{applicationID}, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

func (s *AssistantService) ResumeFeedback(ctx context.Context, applicationID int) ([]string, error) {
	var out struct {
		Feedback []string `json:"feedback"`
	}
	if err := s.post(ctx, "/generate-resume-feedback/", applicationRef{applicationID}, &out); err != nil {
		return nil, err
	}
	return out.Feedback, nil
}

func (s *AssistantService) ResumeSummary(ctx context.Context, applicationID int) ([]string, error) {
	var out struct {
		Summary []string `json:"summary"`
	}
	if err := s.post(ctx, "/generate-resume-summary/", applicationRef{applicationID}, &out); err != nil {
		return nil, err
	}
	return out.Summary, nil
}

func (s *AssistantService) OutreachEmail(ctx context.Context, applicationID int, emailType EmailType) (*Email, error) {
	req := struct {
		ApplicationID int       `json:"application_id"`
		EmailType     EmailType `json:"email_type"`
	}{applicationID, emailType}

	var email Email
	if err := s.post(ctx, "/generate-outreach-email/", req, &email); err != nil {
		return nil, err
	}
	return &email, nil
}

// SendEmail has the API deliver an email to a candidate
func (s *AssistantService) SendEmail(ctx context.Context, recipient string, email Email) error {
	req := struct {
		RecipientEmail string `json:"recipient_email"`
		Subject        string `json:"subject"`
		Body           string `json:"body"`
	}{recipient, email.Subject, email.Body}
	return s.post(ctx, "/send-email/", req, nil)
}
