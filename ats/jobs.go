package ats

import (
	"context"

	"github.com/jrsteele09/go-talent-client/apiclient"
)

// JobService manages job listings. Listing and reading are public and never
// touch the stored session.
type JobService struct {
	service
}

func (s *JobService) List(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := s.get(ctx, "/jobs/", &jobs, apiclient.Unauthenticated()); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id int) (*Job, error) {
	path, err := idPath("/jobs/%d/", id)
	if err != nil {
		return nil, err
	}
	var job Job
	if err := s.get(ctx, path, &job, apiclient.Unauthenticated()); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) Create(ctx context.Context, in JobInput) (*Job, error) {
	var job Job
	if err := s.post(ctx, "/jobs/", in, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) Delete(ctx context.Context, id int) error {
	path, err := idPath("/jobs/%d/", id)
	if err != nil {
		return err
	}
	return s.delete(ctx, path)
}

// GenerateDescription asks the API to draft a description and requirements
func (s *JobService) GenerateDescription(ctx context.Context, title, keywords string) (*GeneratedDescription, error) {
	var out GeneratedDescription
	req := map[string]string{"title": title, "keywords": keywords}
	if err := s.post(ctx, "/generate-description/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

