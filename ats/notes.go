package ats

import "context"

type NoteService struct {
	service
}

// Add attaches a reviewer note to an application
func (s *NoteService) Add(ctx context.Context, applicationID int, text string) (*Note, error) {
	if err := checkID(applicationID); err != nil {
		return nil, err
	}
	var note Note
	if err := s.post(ctx, "/notes/", Note{Application: applicationID, Text: text}, &note); err != nil {
		return nil, err
	}
	return &note, nil
}
