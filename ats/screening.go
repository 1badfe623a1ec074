package ats

import (
	"context"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-talent-client/apiclient"
	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
)

// ScreeningService drives the async candidate screening. Sessions are read
// and answered through a link, so those calls are sent unauthenticated.
type ScreeningService struct {
	service
}

// Initiate asks the API to prepare screening questions for an application
func (s *ScreeningService) Initiate(ctx context.Context, applicationID int) error {
	if err := checkID(applicationID); err != nil {
		return err
	}
	return s.post(ctx, "/screening/initiate/", map[string]int{"application_id": applicationID}, nil)
}

func (s *ScreeningService) Session(ctx context.Context, sessionID string) (*ScreeningSession, error) {
	path, err := sessionPath(sessionID)
	if err != nil {
		return nil, err
	}
	var session ScreeningSession
	if err := s.get(ctx, path, &session, apiclient.Unauthenticated()); err != nil {
		return nil, err
	}
	return &session, nil
}

// Submit sends the candidate's answers, paired with their questions
func (s *ScreeningService) Submit(ctx context.Context, sessionID string, transcript []TranscriptEntry) error {
	path, err := sessionPath(sessionID)
	if err != nil {
		return err
	}
	return s.patch(ctx, path, map[string][]TranscriptEntry{"transcript": transcript}, nil, apiclient.Unauthenticated())
}

// Transcript pairs questions with answers; missing answers are left empty
func Transcript(questions, answers []string) []TranscriptEntry {
	entries := make([]TranscriptEntry, len(questions))
	for i, q := range questions {
		entries[i].Question = q
		if i < len(answers) {
			entries[i].Answer = answers[i]
		}
	}
	return entries
}

func sessionPath(sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", apperrors.Wrapf(apperrors.ErrInvalidID, "empty screening session id")
	}
	return "/screening/session/" + url.PathEscape(sessionID) + "/", nil
}
