package ats

import (
	"context"
	"io"
	"net/http"

	"github.com/jrsteele09/go-talent-client/apiclient"
)

// ResumeService covers the candidate's own resume and the resume scanner
type ResumeService struct {
	service
}

func (s *ResumeService) Get(ctx context.Context) (*Resume, error) {
	var resume Resume
	if err := s.get(ctx, "/my-resume/", &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

func (s *ResumeService) Save(ctx context.Context, resume Resume) error {
	return s.put(ctx, "/my-resume/", resume, nil)
}

// ImproveText rewrites a resume passage
func (s *ResumeService) ImproveText(ctx context.Context, text string) (string, error) {
	var out struct {
		ImprovedText string `json:"improved_text"`
	}
	if err := s.post(ctx, "/improve-text/", map[string]string{"text": text}, &out); err != nil {
		return "", err
	}
	return out.ImprovedText, nil
}

// Scan scores a resume file against a job description
func (s *ResumeService) Scan(ctx context.Context, filename string, resume io.Reader, jobDescription string) (*ResumeScan, error) {
	body := apiclient.Multipart(
		map[string]string{"job_description": jobDescription},
		apiclient.File{Field: "resume", Filename: filename, Content: resume},
	)
	var scan ResumeScan
	if err := s.do(ctx, http.MethodPost, "/scan-resume/", body, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}
