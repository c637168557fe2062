package index

import "context"

type ShowService struct {
	store Store
}

func NewShowService(store Store) *ShowService {
	return &ShowService{store: store}
}

// Show returns what the last export left in the store. HasRun is false when
// nothing has been exported yet.
func (s *ShowService) Show(ctx context.Context) (Snapshot, error) {
	if s.store == nil {
		return Snapshot{}, ErrMissingDependencies
	}
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	run, ok, err := s.store.LatestRun(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	records, err := s.store.ListVersions(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Run: run, HasRun: ok, Records: records}, nil
}
