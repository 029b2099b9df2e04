package appraisal

import "context"

func validateCycle(c *Cycle) error {
	if c.Name == "" {
		return validationf("cycle name is required")
	}
	if c.EndDate.Before(c.StartDate) {
		return validationf("cycle start date must not be after end date")
	}
	for _, ta := range c.TemplateAssignments {
		if ta.TemplateID == "" {
			return validationf("template assignment requires a template id")
		}
	}
	return nil
}

func (s *Service) CreateCycle(ctx context.Context, caller Caller, c *Cycle) (*Cycle, error) {
	if !caller.isHR() {
		return nil, forbiddenf("only HR can manage appraisal cycles")
	}
	if err := validateCycle(c); err != nil {
		return nil, err
	}
	id, err := s.store.CreateCycle(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.store.GetCycle(ctx, id)
}

func (s *Service) UpdateCycle(ctx context.Context, caller Caller, c *Cycle) (*Cycle, error) {
	if !caller.isHR() {
		return nil, forbiddenf("only HR can manage appraisal cycles")
	}
	if err := validateCycle(c); err != nil {
		return nil, err
	}
	ok, err := s.store.UpdateCycle(ctx, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundf("cycle %s", c.ID)
	}
	return s.store.GetCycle(ctx, c.ID)
}

func (s *Service) GetCycle(ctx context.Context, id string) (*Cycle, error) {
	c, err := s.store.GetCycle(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFoundf("cycle %s", id)
	}
	return c, nil
}

func (s *Service) ListCycles(ctx context.Context) ([]Cycle, error) {
	return s.store.ListCycles(ctx)
}

// DeleteCycle blocks rather than cascades: appraisal history hangs off the
// cycle, so deletion is refused while any assignment references it.
func (s *Service) DeleteCycle(ctx context.Context, caller Caller, id string) error {
	if !caller.isHR() {
		return forbiddenf("only HR can manage appraisal cycles")
	}
	count, err := s.store.CountAssignmentsByCycle(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return conflictf("cycle has %d assignments and cannot be deleted", count)
	}
	ok, err := s.store.DeleteCycle(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFoundf("cycle %s", id)
	}
	return nil
}
