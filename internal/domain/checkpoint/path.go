package checkpoint

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/shared"
)

// PathStation is one ordered stop within a path.
// (PathID, StationID) and (PathID, Order) are both unique.
type PathStation struct {
	shared.BaseEntity
	PathID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_path_station,priority:1;uniqueIndex:idx_path_order,priority:1"`
	StationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_path_station,priority:2"`
	Order     int64     `gorm:"not null;uniqueIndex:idx_path_order,priority:2"`
}

// TableName returns the table name for GORM
func (PathStation) TableName() string {
	return "path_stations"
}

// Path is an ordered sequence of checkpoint stations a journey must
// traverse. It is the aggregate root for sequencing integrity: stations
// never repeat within a path and order values never collide.
type Path struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(100);not null"`
	// SequenceKey is the comma-joined ordered station IDs, maintained on
	// every structural change. A partial unique index on it makes the
	// no-duplicate-sequence rule hold under concurrent writers; empty
	// paths are exempt. A path whose key is a prefix of another's is
	// allowed.
	SequenceKey string        `gorm:"type:text;not null;default:'';uniqueIndex:idx_paths_sequence_key,where:sequence_key <> ''"`
	Stations    []PathStation `gorm:"foreignKey:PathID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Path) TableName() string {
	return "paths"
}

// NewPath creates a new empty path
func NewPath(name string) (*Path, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Path name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Path name cannot exceed 100 characters")
	}

	return &Path{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Stations:          []PathStation{},
	}, nil
}

// AppendStation adds a station at the end of the path (order = max+1).
// Order values are assigned monotonically and never renumbered except
// by an explicit Reorder.
func (p *Path) AppendStation(stationID uuid.UUID) error {
	if stationID == uuid.Nil {
		return shared.NewDomainError("INVALID_STATION", "Station is required")
	}
	if p.ContainsStation(stationID) {
		return shared.NewDomainError("DUPLICATE_STATION", "Station already belongs to this path")
	}

	p.Stations = append(p.Stations, PathStation{
		BaseEntity: shared.NewBaseEntity(),
		PathID:     p.ID,
		StationID:  stationID,
		Order:      p.maxOrder() + 1,
	})
	p.refreshSequenceKey()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RemoveStation removes a station from the path. Remaining order values
// are left untouched; gaps are legal.
func (p *Path) RemoveStation(stationID uuid.UUID) error {
	for i, ps := range p.Stations {
		if ps.StationID == stationID {
			p.Stations = append(p.Stations[:i], p.Stations[i+1:]...)
			p.refreshSequenceKey()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("STATION_NOT_IN_PATH", "Station does not belong to this path")
}

// Reorder replaces the path's station sequence with the given one.
// Every current station must appear exactly once; orders are renumbered 1..n.
func (p *Path) Reorder(stationIDs []uuid.UUID) error {
	if len(stationIDs) != len(p.Stations) {
		return shared.NewDomainError("INVALID_REORDER", "Reorder must include every station exactly once")
	}

	seen := make(map[uuid.UUID]bool, len(stationIDs))
	for _, id := range stationIDs {
		if seen[id] {
			return shared.NewDomainError("INVALID_REORDER", "Reorder contains a duplicate station")
		}
		if !p.ContainsStation(id) {
			return shared.NewDomainError("INVALID_REORDER", "Reorder references a station not in this path")
		}
		seen[id] = true
	}

	byStation := make(map[uuid.UUID]PathStation, len(p.Stations))
	for _, ps := range p.Stations {
		byStation[ps.StationID] = ps
	}

	reordered := make([]PathStation, 0, len(stationIDs))
	for i, id := range stationIDs {
		ps := byStation[id]
		ps.Order = int64(i + 1)
		reordered = append(reordered, ps)
	}
	p.Stations = reordered
	p.refreshSequenceKey()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ContainsStation reports whether the station belongs to this path
func (p *Path) ContainsStation(stationID uuid.UUID) bool {
	_, ok := p.OrderOf(stationID)
	return ok
}

// OrderOf returns the order value of a station within the path
func (p *Path) OrderOf(stationID uuid.UUID) (int64, bool) {
	for _, ps := range p.Stations {
		if ps.StationID == stationID {
			return ps.Order, true
		}
	}
	return 0, false
}

// OrderedStations returns the path's stations sorted by order
func (p *Path) OrderedStations() []PathStation {
	out := make([]PathStation, len(p.Stations))
	copy(out, p.Stations)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// TerminalOrder returns the maximum order value in the path.
// Returns 0 for an empty path.
func (p *Path) TerminalOrder() int64 {
	return p.maxOrder()
}

// IsTerminal reports whether the station is the path's last stop
func (p *Path) IsTerminal(stationID uuid.UUID) bool {
	order, ok := p.OrderOf(stationID)
	return ok && len(p.Stations) > 0 && order == p.maxOrder()
}

// FirstSkippedBetween returns the lowest-order station strictly between
// the two order values, if any. Used to report the first skipped stop.
func (p *Path) FirstSkippedBetween(fromOrder, toOrder int64) (uuid.UUID, bool) {
	var (
		found     bool
		bestOrder int64
		bestID    uuid.UUID
	)
	for _, ps := range p.Stations {
		if ps.Order > fromOrder && ps.Order < toOrder {
			if !found || ps.Order < bestOrder {
				found = true
				bestOrder = ps.Order
				bestID = ps.StationID
			}
		}
	}
	return bestID, found
}

// refreshSequenceKey recomputes the canonical sequence key from the
// current station order. Called by every structural mutator.
func (p *Path) refreshSequenceKey() {
	ordered := p.OrderedStations()
	ids := make([]string, len(ordered))
	for i, ps := range ordered {
		ids[i] = ps.StationID.String()
	}
	p.SequenceKey = strings.Join(ids, ",")
}

// Rename updates the path's name
func (p *Path) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Path name cannot be empty")
	}

	p.Name = name
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

func (p *Path) maxOrder() int64 {
	var max int64
	for _, ps := range p.Stations {
		if ps.Order > max {
			max = ps.Order
		}
	}
	return max
}
