// Package ats is the typed endpoint catalogue of the recruitment API.
// Every call goes through the authenticated client, so callers never deal
// with bearer tokens or their renewal.
package ats

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-talent-client/apiclient"
	apperrors "github.com/jrsteele09/go-talent-client/internal/errors"
	"github.com/jrsteele09/go-talent-client/sessions"
)

// Requester is the subset of *apiclient.Client the services need
type Requester interface {
	Request(ctx context.Context, method, path string, body apiclient.Body, opts ...apiclient.RequestOption) (*apiclient.Response, error)
}

// Client groups the API services
type Client struct {
	Accounts     *AccountService
	Jobs         *JobService
	Applications *ApplicationService
	Notes        *NoteService
	Tasks        *TaskService
	Automation   *AutomationService
	Dashboards   *DashboardService
	Screening    *ScreeningService
	Resume       *ResumeService
	Assistant    *AssistantService
}

type service struct {
	api Requester
}

// Option customises a Client built by New
type Option func(*Client)

// WithLoginPath overrides DefaultLoginPath
func WithLoginPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.Accounts.loginPath = path
		}
	}
}

// New wires every service onto api. store is where Login persists the issued
// credential pair; it must be the store api reads from.
func New(api Requester, store sessions.Store, opts ...Option) *Client {
	s := service{api: api}
	c := &Client{
		Accounts:     &AccountService{service: s, store: store, loginPath: DefaultLoginPath},
		Jobs:         &JobService{service: s},
		Applications: &ApplicationService{service: s},
		Notes:        &NoteService{service: s},
		Tasks:        &TaskService{service: s},
		Automation:   &AutomationService{service: s},
		Dashboards:   &DashboardService{service: s},
		Screening:    &ScreeningService{service: s},
		Resume:       &ResumeService{service: s},
		Assistant:    &AssistantService{service: s},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromAPI is New using the client's own session store
func NewFromAPI(api *apiclient.Client, opts ...Option) *Client {
	return New(api, api.Store(), opts...)
}

func (s service) do(ctx context.Context, method, path string, body apiclient.Body, out any, opts ...apiclient.RequestOption) error {
	resp, err := s.api.Request(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

func (s service) get(ctx context.Context, path string, out any, opts ...apiclient.RequestOption) error {
	return s.do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (s service) post(ctx context.Context, path string, in, out any, opts ...apiclient.RequestOption) error {
	var body apiclient.Body
	if in != nil {
		body = apiclient.JSON(in)
	}
	return s.do(ctx, http.MethodPost, path, body, out, opts...)
}

func (s service) patch(ctx context.Context, path string, in, out any, opts ...apiclient.RequestOption) error {
	return s.do(ctx, http.MethodPatch, path, apiclient.JSON(in), out, opts...)
}

func (s service) put(ctx context.Context, path string, in, out any) error {
	return s.do(ctx, http.MethodPut, path, apiclient.JSON(in), out)
}

func (s service) delete(ctx context.Context, path string) error {
	return s.do(ctx, http.MethodDelete, path, nil, nil)
}

func checkID(id int) error {
	if id <= 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidID, "%d", id)
	}
	return nil
}

func idPath(format string, id int) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}
	return fmt.Sprintf(format, id), nil
}
