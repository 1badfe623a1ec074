package ats

import (
	"context"

	"github.com/jrsteele09/go-talent-client/apiclient"
)

type DashboardService struct {
	service
}

// Candidate returns the signed-in candidate's own applications
func (s *DashboardService) Candidate(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := s.get(ctx, "/dashboard/candidate/", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *DashboardService) HR(ctx context.Context, filter ApplicationFilter) ([]Application, error) {
	var apps []Application
	if err := s.get(ctx, "/dashboard/hr/", &apps, apiclient.WithQuery(filter.values())); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *DashboardService) MissionControl(ctx context.Context) (*MissionControl, error) {
	var mc MissionControl
	if err := s.get(ctx, "/dashboard/mission-control/", &mc); err != nil {
		return nil, err
	}
	return &mc, nil
}
