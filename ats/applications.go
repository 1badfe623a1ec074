package ats

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-talent-client/apiclient"
	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
)

// ApplicationService covers candidate applications and their review
type ApplicationService struct {
	service
}

// ApplyRequest is a candidate's application to a job
type ApplyRequest struct {
	Job            int
	ResumeFilename string
	Resume         io.Reader
	GithubURL      string // optional
}

// Apply submits an application with its resume as a multipart upload
func (s *ApplicationService) Apply(ctx context.Context, req ApplyRequest) (*Application, error) {
	if req.Job <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidID, "job %d", req.Job)
	}
	fields := map[string]string{"job": strconv.Itoa(req.Job)}
	if req.GithubURL != "" {
		fields["github_url"] = req.GithubURL
	}
	body := apiclient.Multipart(fields, apiclient.File{Field: "resume", Filename: req.ResumeFilename, Content: req.Resume})

	var app Application
	if err := s.do(ctx, http.MethodPost, "/applications/", body, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) Get(ctx context.Context, id int) (*Application, error) {
	path, err := idPath("/applications/%d/", id)
	if err != nil {
		return nil, err
	}
	var app Application
	if err := s.get(ctx, path, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// List returns every application visible to the HR user
func (s *ApplicationService) List(ctx context.Context, filter ApplicationFilter) ([]Application, error) {
	var apps []Application
	if err := s.get(ctx, "/all-applications/", &apps, apiclient.WithQuery(filter.values())); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *ApplicationService) UpdateStatus(ctx context.Context, id int, status ApplicationStatus) error {
	if !status.Valid() {
		return apperrors.Wrapf(apperrors.ErrUnsupported, "status %q", status)
	}
	path, err := idPath("/applications/%d/status/", id)
	if err != nil {
		return err
	}
	return s.patch(ctx, path, map[string]ApplicationStatus{"status": status}, nil)
}

// Resume downloads the uploaded resume document as raw bytes
func (s *ApplicationService) Resume(ctx context.Context, id int) ([]byte, string, error) {
	path, err := idPath("/applications/%d/resume/", id)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.api.Request(ctx, http.MethodGet, path, nil, apiclient.ExpectBinary())
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.ContentType(), nil
}

// RunAnalysis starts the server-side GitHub analysis; poll Get for the result
func (s *ApplicationService) RunAnalysis(ctx context.Context, id int) error {
	path, err := idPath("/applications/%d/run-analysis/", id)
	if err != nil {
		return err
	}
	return s.post(ctx, path, nil, nil)
}

func (f ApplicationFilter) values() url.Values {
	v := url.Values{}
	v.Set("search", f.Search)
	v.Set("status", string(f.Status))
	if f.Job > 0 {
		v.Set("job", strconv.Itoa(f.Job))
	}
	v.Set("ordering", f.Ordering)
	return v
}
