package checkpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/shared"
)

// PathService manages stations and the ordered paths between them.
// Structural changes to a path are refused while any open journey is
// bound to it, and no two paths may carry the same station sequence.
type PathService struct {
	txScope TransactionScope
}

// NewPathService creates a new PathService
func NewPathService(txScope TransactionScope) *PathService {
	return &PathService{txScope: txScope}
}

// CreateStation registers a checkpoint station and its weighbridge machine
func (s *PathService) CreateStation(ctx context.Context, req CreateStationRequest) (*StationResponse, error) {
	var result *StationResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.StationRepo().FindByName(ctx, req.Name); err == nil {
			return shared.NewDomainError("DUPLICATE_STATION", "A station with this name already exists")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if _, err := repos.StationRepo().FindByMachineNumber(ctx, req.MachineNumber); err == nil {
			return shared.NewDomainError("DUPLICATE_MACHINE", "This machine number is already assigned")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		station, err := checkpoint.NewStation(req.Name, req.MachineNumber)
		if err != nil {
			return err
		}
		station.SetLocation(req.Woreda, req.Kebele)
		if err := repos.StationRepo().Save(ctx, station); err != nil {
			return err
		}

		resp := ToStationResponse(station)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListStations lists all stations
func (s *PathService) ListStations(ctx context.Context, filter shared.Filter) ([]StationResponse, error) {
	var result []StationResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		stations, err := repos.StationRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		result = make([]StationResponse, 0, len(stations))
		for i := range stations {
			result = append(result, ToStationResponse(&stations[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreatePath creates a path from an ordered list of stations. An empty
// list is legal; stations can be appended later.
func (s *PathService) CreatePath(ctx context.Context, req CreatePathRequest) (*PathResponse, error) {
	var result *PathResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		path, err := checkpoint.NewPath(req.Name)
		if err != nil {
			return err
		}
		for _, stationID := range req.StationIDs {
			if _, err := repos.StationRepo().FindByID(ctx, stationID); err != nil {
				return referenceError(err, "STATION_NOT_FOUND", "Station does not exist")
			}
			if err := path.AppendStation(stationID); err != nil {
				return err
			}
		}

		if err := s.guardDuplicateSequence(ctx, repos, path); err != nil {
			return err
		}
		if err := repos.PathRepo().Save(ctx, path); err != nil {
			return err
		}

		resp := ToPathResponse(path)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetPath returns a path with its ordered stations
func (s *PathService) GetPath(ctx context.Context, pathID uuid.UUID) (*PathResponse, error) {
	var result *PathResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		path, err := repos.PathRepo().FindByID(ctx, pathID)
		if err != nil {
			return err
		}
		resp := ToPathResponse(path)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListPaths lists all paths with their stations
func (s *PathService) ListPaths(ctx context.Context, filter shared.Filter) ([]PathResponse, error) {
	var result []PathResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		paths, err := repos.PathRepo().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		result = make([]PathResponse, 0, len(paths))
		for i := range paths {
			result = append(result, ToPathResponse(&paths[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AppendStation adds a station at the end of the path
func (s *PathService) AppendStation(ctx context.Context, pathID, stationID uuid.UUID) (*PathResponse, error) {
	return s.mutatePath(ctx, pathID, func(repos TransactionalRepositories, path *checkpoint.Path) error {
		if _, err := repos.StationRepo().FindByID(ctx, stationID); err != nil {
			return referenceError(err, "STATION_NOT_FOUND", "Station does not exist")
		}
		return path.AppendStation(stationID)
	})
}

// RemoveStation removes a station from the path. Remaining order values
// keep their gaps.
func (s *PathService) RemoveStation(ctx context.Context, pathID, stationID uuid.UUID) (*PathResponse, error) {
	return s.mutatePath(ctx, pathID, func(_ TransactionalRepositories, path *checkpoint.Path) error {
		return path.RemoveStation(stationID)
	})
}

// ReorderStations replaces the path's sequence with the given order
func (s *PathService) ReorderStations(ctx context.Context, pathID uuid.UUID, stationIDs []uuid.UUID) (*PathResponse, error) {
	return s.mutatePath(ctx, pathID, func(_ TransactionalRepositories, path *checkpoint.Path) error {
		return path.Reorder(stationIDs)
	})
}

// DeletePath deletes a path no open journey is bound to
func (s *PathService) DeletePath(ctx context.Context, pathID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.PathRepo().FindByID(ctx, pathID); err != nil {
			return err
		}
		busy, err := repos.PathRepo().HasOpenJourneys(ctx, pathID)
		if err != nil {
			return err
		}
		if busy {
			return shared.ErrPathInUse
		}
		return repos.PathRepo().Delete(ctx, pathID)
	})
}

// mutatePath applies a structural change under the open-journey and
// duplicate-sequence guards
func (s *PathService) mutatePath(ctx context.Context, pathID uuid.UUID, mutate func(TransactionalRepositories, *checkpoint.Path) error) (*PathResponse, error) {
	var result *PathResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		path, err := repos.PathRepo().FindByID(ctx, pathID)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		busy, err := repos.PathRepo().HasOpenJourneys(ctx, pathID)
		if err != nil {
			return err
		}
		if busy {
			return shared.ErrPathInUse
		}

		if err := mutate(repos, path); err != nil {
			return err
		}
		if err := s.guardDuplicateSequence(ctx, repos, path); err != nil {
			return err
		}
		if err := repos.PathRepo().Save(ctx, path); err != nil {
			return err
		}

		resp := ToPathResponse(path)
		result = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// guardDuplicateSequence rejects a path whose station sequence already
// exists under another path
func (s *PathService) guardDuplicateSequence(ctx context.Context, repos TransactionalRepositories, path *checkpoint.Path) error {
	if len(path.Stations) == 0 {
		return nil
	}
	existing, err := repos.PathRepo().FindBySequenceKey(ctx, path.SequenceKey)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != path.ID {
		return shared.ErrDuplicateSequence
	}
	return nil
}
