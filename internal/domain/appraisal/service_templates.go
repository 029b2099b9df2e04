package appraisal

import "context"

func validateTemplate(t *Template) error {
	if t.Name == "" {
		return validationf("template name is required")
	}
	if t.RatingScale.Max <= t.RatingScale.Min {
		return validationf("rating scale max must exceed min")
	}
	seen := make(map[string]bool, len(t.Criteria))
	for _, c := range t.Criteria {
		if c.Key == "" {
			return validationf("criterion key is required")
		}
		if seen[c.Key] {
			return validationf("duplicate criterion key %q", c.Key)
		}
		seen[c.Key] = true
		if c.Weight < 0 || c.Weight > 100 {
			return validationf("criterion %q weight must be between 0 and 100", c.Key)
		}
	}
	return nil
}

func (s *Service) CreateTemplate(ctx context.Context, caller Caller, t *Template) (*Template, error) {
	if !caller.isHR() {
		return nil, forbiddenf("only HR can manage appraisal templates")
	}
	if err := validateTemplate(t); err != nil {
		return nil, err
	}
	t.IsActive = true
	id, err := s.store.CreateTemplate(ctx, t)
	if err != nil {
		return nil, err
	}
	return s.store.GetTemplate(ctx, id)
}

func (s *Service) UpdateTemplate(ctx context.Context, caller Caller, t *Template) (*Template, error) {
	if !caller.isHR() {
		return nil, forbiddenf("only HR can manage appraisal templates")
	}
	if err := validateTemplate(t); err != nil {
		return nil, err
	}
	ok, err := s.store.UpdateTemplate(ctx, t)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundf("template %s", t.ID)
	}
	return s.store.GetTemplate(ctx, t.ID)
}

func (s *Service) GetTemplate(ctx context.Context, id string) (*Template, error) {
	t, err := s.store.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, notFoundf("template %s", id)
	}
	return t, nil
}

func (s *Service) ListTemplates(ctx context.Context, activeOnly bool) ([]Template, error) {
	return s.store.ListTemplates(ctx, activeOnly)
}

// DeleteTemplate physically removes a template. There is deliberately no
// cascade check against assignments here; callers own that risk.
func (s *Service) DeleteTemplate(ctx context.Context, caller Caller, id string) error {
	if !caller.isHR() {
		return forbiddenf("only HR can manage appraisal templates")
	}
	ok, err := s.store.DeleteTemplate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFoundf("template %s", id)
	}
	return nil
}
