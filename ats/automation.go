package ats

import "context"

// AutomationService manages automation rules. Rules are matched server-side;
// this only lists and toggles them.
type AutomationService struct {
	service
}

func (s *AutomationService) List(ctx context.Context) ([]AutomationRule, error) {
	var rules []AutomationRule
	if err := s.get(ctx, "/automation-rules/", &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// CreateFromText lets the API turn a plain-language command into a rule
func (s *AutomationService) CreateFromText(ctx context.Context, command string) (*AutomationRule, error) {
	var rule AutomationRule
	if err := s.post(ctx, "/automation-rules/create-from-text/", map[string]string{"text_command": command}, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (s *AutomationService) SetActive(ctx context.Context, id int, active bool) error {
	path, err := idPath("/automation-rules/%d/", id)
	if err != nil {
		return err
	}
	return s.patch(ctx, path, map[string]bool{"is_active": active}, nil)
}

func (s *AutomationService) Delete(ctx context.Context, id int) error {
	path, err := idPath("/automation-rules/%d/", id)
	if err != nil {
		return err
	}
	return s.delete(ctx, path)
}
