package checkpoint

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/orc/backend/internal/domain/checkpoint"
	"github.com/orc/backend/internal/domain/registry"
	"github.com/orc/backend/internal/domain/shared"
	"github.com/orc/backend/internal/domain/tariff"
)

// fixture wires the in-memory repositories behind a NoOpTransactionScope
// so the services run through the same TransactionalRepositories surface
// they use in production.
type fixture struct {
	scope *NoOpTransactionScope

	stations       *memStationRepo
	paths          *memPathRepo
	truckJourneys  *memTruckJourneyRepo
	walkInJourneys *memWalkInJourneyRepo
	checkins       *memCheckinRepo
	trucks         *memTruckRepo
	exporters      *memExporterRepo
	commodities    *memCommodityRepo
	taxes          *memTaxRepo
	truckChanges   *memTruckChangeRepo
	manualPayments *memManualPaymentRepo
}

func newFixture() *fixture {
	f := &fixture{
		stations:       &memStationRepo{},
		paths:          &memPathRepo{},
		truckJourneys:  &memTruckJourneyRepo{},
		walkInJourneys: &memWalkInJourneyRepo{},
		checkins:       &memCheckinRepo{},
		trucks:         &memTruckRepo{},
		exporters:      &memExporterRepo{},
		commodities:    &memCommodityRepo{},
		taxes:          &memTaxRepo{},
		truckChanges:   &memTruckChangeRepo{},
		manualPayments: &memManualPaymentRepo{},
	}
	f.scope = &NoOpTransactionScope{
		TruckJourneys:  f.truckJourneys,
		WalkInJourneys: f.walkInJourneys,
		Checkins:       f.checkins,
		Paths:          f.paths,
		Stations:       f.stations,
		TruckChanges:   f.truckChanges,
		ManualPayments: f.manualPayments,
		Trucks:         f.trucks,
		Exporters:      f.exporters,
		Commodities:    f.commodities,
		Taxes:          f.taxes,
	}
	return f
}

type memStationRepo struct{ items []*checkpoint.Station }

func (r *memStationRepo) FindByID(_ context.Context, id uuid.UUID) (*checkpoint.Station, error) {
	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memStationRepo) FindByMachineNumber(_ context.Context, machineNumber string) (*checkpoint.Station, error) {
	for _, s := range r.items {
		if s.MachineNumber == machineNumber {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memStationRepo) FindByName(_ context.Context, name string) (*checkpoint.Station, error) {
	for _, s := range r.items {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memStationRepo) FindAll(context.Context, shared.Filter) ([]checkpoint.Station, error) {
	out := make([]checkpoint.Station, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memStationRepo) Save(_ context.Context, station *checkpoint.Station) error {
	for i, s := range r.items {
		if s.ID == station.ID {
			r.items[i] = station
			return nil
		}
	}
	r.items = append(r.items, station)
	return nil
}

func (r *memStationRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, s := range r.items {
		if s.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memStationRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type memPathRepo struct {
	items        []*checkpoint.Path
	openJourneys map[uuid.UUID]bool
}

func (r *memPathRepo) FindByID(_ context.Context, id uuid.UUID) (*checkpoint.Path, error) {
	for _, p := range r.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPathRepo) FindAll(context.Context, shared.Filter) ([]checkpoint.Path, error) {
	out := make([]checkpoint.Path, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memPathRepo) FindBySequenceKey(_ context.Context, key string) (*checkpoint.Path, error) {
	for _, p := range r.items {
		if p.SequenceKey == key {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPathRepo) HasOpenJourneys(_ context.Context, pathID uuid.UUID) (bool, error) {
	return r.openJourneys[pathID], nil
}

func (r *memPathRepo) Save(_ context.Context, path *checkpoint.Path) error {
	for i, p := range r.items {
		if p.ID == path.ID {
			r.items[i] = path
			return nil
		}
	}
	r.items = append(r.items, path)
	return nil
}

func (r *memPathRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range r.items {
		if p.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memPathRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type memTruckJourneyRepo struct{ items []*checkpoint.TruckJourney }

func (r *memTruckJourneyRepo) FindByID(_ context.Context, id uuid.UUID) (*checkpoint.TruckJourney, error) {
	for _, j := range r.items {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTruckJourneyRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*checkpoint.TruckJourney, error) {
	return r.FindByID(ctx, id)
}

func (r *memTruckJourneyRepo) FindByDeclarationNumber(_ context.Context, number string) (*checkpoint.TruckJourney, error) {
	for _, j := range r.items {
		if j.DeclarationNumber == number {
			return j, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTruckJourneyRepo) FindLatestByTruck(_ context.Context, truckID uuid.UUID) (*checkpoint.TruckJourney, error) {
	var latest *checkpoint.TruckJourney
	for _, j := range r.items {
		if j.TruckID != truckID {
			continue
		}
		if latest == nil || !j.CreatedAt.Before(latest.CreatedAt) {
			latest = j
		}
	}
	if latest == nil {
		return nil, shared.ErrNotFound
	}
	return latest, nil
}

func (r *memTruckJourneyRepo) FindOpenByTruck(_ context.Context, truckID uuid.UUID) (*checkpoint.TruckJourney, error) {
	for _, j := range r.items {
		if j.TruckID == truckID && j.IsOpen() {
			return j, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTruckJourneyRepo) FindByStatus(_ context.Context, status checkpoint.JourneyStatus, _ shared.Filter) ([]checkpoint.TruckJourney, error) {
	var out []checkpoint.TruckJourney
	for _, j := range r.items {
		if j.Status == status {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *memTruckJourneyRepo) FindAll(context.Context, shared.Filter) ([]checkpoint.TruckJourney, error) {
	out := make([]checkpoint.TruckJourney, 0, len(r.items))
	for _, j := range r.items {
		out = append(out, *j)
	}
	return out, nil
}

func (r *memTruckJourneyRepo) Save(_ context.Context, journey *checkpoint.TruckJourney) error {
	for i, j := range r.items {
		if j.ID == journey.ID {
			r.items[i] = journey
			return nil
		}
	}
	r.items = append(r.items, journey)
	return nil
}

func (r *memTruckJourneyRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type memWalkInJourneyRepo struct{ items []*checkpoint.WalkInJourney }

func (r *memWalkInJourneyRepo) FindByID(_ context.Context, id uuid.UUID) (*checkpoint.WalkInJourney, error) {
	for _, j := range r.items {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memWalkInJourneyRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*checkpoint.WalkInJourney, error) {
	return r.FindByID(ctx, id)
}

func (r *memWalkInJourneyRepo) FindByNumber(_ context.Context, number string) (*checkpoint.WalkInJourney, error) {
	for _, j := range r.items {
		if j.Number == number {
			return j, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memWalkInJourneyRepo) FindLatestByExporter(_ context.Context, exporterID uuid.UUID) (*checkpoint.WalkInJourney, error) {
	var latest *checkpoint.WalkInJourney
	for _, j := range r.items {
		if j.ExporterID != exporterID {
			continue
		}
		if latest == nil || !j.CreatedAt.Before(latest.CreatedAt) {
			latest = j
		}
	}
	if latest == nil {
		return nil, shared.ErrNotFound
	}
	return latest, nil
}

func (r *memWalkInJourneyRepo) FindOpenByExporter(_ context.Context, exporterID uuid.UUID) (*checkpoint.WalkInJourney, error) {
	for _, j := range r.items {
		if j.ExporterID == exporterID && j.IsOpen() {
			return j, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memWalkInJourneyRepo) FindByStatus(_ context.Context, status checkpoint.JourneyStatus, _ shared.Filter) ([]checkpoint.WalkInJourney, error) {
	var out []checkpoint.WalkInJourney
	for _, j := range r.items {
		if j.Status == status {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *memWalkInJourneyRepo) FindAll(context.Context, shared.Filter) ([]checkpoint.WalkInJourney, error) {
	out := make([]checkpoint.WalkInJourney, 0, len(r.items))
	for _, j := range r.items {
		out = append(out, *j)
	}
	return out, nil
}

func (r *memWalkInJourneyRepo) Save(_ context.Context, journey *checkpoint.WalkInJourney) error {
	for i, j := range r.items {
		if j.ID == journey.ID {
			r.items[i] = journey
			return nil
		}
	}
	r.items = append(r.items, journey)
	return nil
}

func (r *memWalkInJourneyRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type memCheckinRepo struct{ items []*checkpoint.Checkin }

func (r *memCheckinRepo) FindByID(_ context.Context, id uuid.UUID) (*checkpoint.Checkin, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func journeyMatches(c *checkpoint.Checkin, journeyID uuid.UUID, kind checkpoint.JourneyKind) bool {
	switch kind {
	case checkpoint.JourneyKindTruck:
		return c.TruckJourneyID != nil && *c.TruckJourneyID == journeyID
	case checkpoint.JourneyKindWalkIn:
		return c.WalkInJourneyID != nil && *c.WalkInJourneyID == journeyID
	}
	return false
}

func (r *memCheckinRepo) FindByJourney(_ context.Context, journeyID uuid.UUID, kind checkpoint.JourneyKind) ([]checkpoint.Checkin, error) {
	var out []checkpoint.Checkin
	for _, c := range r.items {
		if journeyMatches(c, journeyID, kind) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCheckinRepo) FindByJourneyAndStation(_ context.Context, journeyID uuid.UUID, kind checkpoint.JourneyKind, stationID uuid.UUID) (*checkpoint.Checkin, error) {
	for _, c := range r.items {
		if journeyMatches(c, journeyID, kind) && c.StationID == stationID {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCheckinRepo) FindByReceiptNumber(_ context.Context, receiptNumber string) (*checkpoint.Checkin, error) {
	for _, c := range r.items {
		if c.ReceiptNumber == receiptNumber {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCheckinRepo) FindUnsettledByStation(_ context.Context, stationID uuid.UUID, _ shared.Filter) ([]checkpoint.Checkin, error) {
	var out []checkpoint.Checkin
	for _, c := range r.items {
		if c.StationID == stationID && !c.IsSettled() {
			out = append(out, *c)
		}
	}
	return out, nil
}

// Save mimics the unique (journey, station) constraint the database
// enforces in production.
func (r *memCheckinRepo) Save(_ context.Context, checkin *checkpoint.Checkin) error {
	for i, c := range r.items {
		if c.ID == checkin.ID {
			r.items[i] = checkin
			return nil
		}
	}
	for _, c := range r.items {
		if c.StationID != checkin.StationID {
			continue
		}
		if checkin.TruckJourneyID != nil && c.TruckJourneyID != nil && *c.TruckJourneyID == *checkin.TruckJourneyID {
			return shared.ErrAlreadyExists
		}
		if checkin.WalkInJourneyID != nil && c.WalkInJourneyID != nil && *c.WalkInJourneyID == *checkin.WalkInJourneyID {
			return shared.ErrAlreadyExists
		}
	}
	r.items = append(r.items, checkin)
	return nil
}

func (r *memCheckinRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type memTruckRepo struct{ items []*registry.Truck }

func (r *memTruckRepo) FindByID(_ context.Context, id uuid.UUID) (*registry.Truck, error) {
	for _, t := range r.items {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTruckRepo) FindByPlateNumber(_ context.Context, plateNumber string) (*registry.Truck, error) {
	for _, t := range r.items {
		if t.PlateNumber == plateNumber {
			return t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTruckRepo) FindAll(context.Context, shared.Filter) ([]registry.Truck, error) {
	out := make([]registry.Truck, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, *t)
	}
	return out, nil
}

func (r *memTruckRepo) Save(_ context.Context, truck *registry.Truck) error {
	for i, t := range r.items {
		if t.ID == truck.ID {
			r.items[i] = truck
			return nil
		}
	}
	r.items = append(r.items, truck)
	return nil
}

func (r *memTruckRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range r.items {
		if t.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memTruckRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *memTruckRepo) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	_, err := r.FindByPlateNumber(ctx, plateNumber)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type memExporterRepo struct{ items []*registry.Exporter }

func (r *memExporterRepo) FindByID(_ context.Context, id uuid.UUID) (*registry.Exporter, error) {
	for _, e := range r.items {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memExporterRepo) FindByUniqueID(_ context.Context, uniqueID string) (*registry.Exporter, error) {
	for _, e := range r.items {
		if e.UniqueID == uniqueID {
			return e, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memExporterRepo) FindByTIN(_ context.Context, tin string) (*registry.Exporter, error) {
	for _, e := range r.items {
		if e.TIN == tin {
			return e, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memExporterRepo) FindAll(context.Context, shared.Filter) ([]registry.Exporter, error) {
	out := make([]registry.Exporter, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, *e)
	}
	return out, nil
}

func (r *memExporterRepo) Save(_ context.Context, exporter *registry.Exporter) error {
	for i, e := range r.items {
		if e.ID == exporter.ID {
			r.items[i] = exporter
			return nil
		}
	}
	r.items = append(r.items, exporter)
	return nil
}

func (r *memExporterRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, e := range r.items {
		if e.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memExporterRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type memCommodityRepo struct{ items []*registry.Commodity }

func (r *memCommodityRepo) FindByID(_ context.Context, id uuid.UUID) (*registry.Commodity, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCommodityRepo) FindByName(_ context.Context, name string) (*registry.Commodity, error) {
	for _, c := range r.items {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCommodityRepo) FindAll(context.Context, shared.Filter) ([]registry.Commodity, error) {
	out := make([]registry.Commodity, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCommodityRepo) Save(_ context.Context, commodity *registry.Commodity) error {
	for i, c := range r.items {
		if c.ID == commodity.ID {
			r.items[i] = commodity
			return nil
		}
	}
	r.items = append(r.items, commodity)
	return nil
}

func (r *memCommodityRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range r.items {
		if c.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memCommodityRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *memCommodityRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := r.FindByName(ctx, name)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type memTaxRepo struct{ items []*tariff.Tax }

func (r *memTaxRepo) FindByID(_ context.Context, id uuid.UUID) (*tariff.Tax, error) {
	for _, t := range r.items {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTaxRepo) FindApplicable(_ context.Context, stationID, taxPayerTypeID, commodityID uuid.UUID) (*tariff.Tax, error) {
	for _, t := range r.items {
		if t.StationID == stationID && t.TaxPayerTypeID == taxPayerTypeID && t.CommodityID == commodityID {
			return t, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTaxRepo) FindByStation(_ context.Context, stationID uuid.UUID, _ shared.Filter) ([]tariff.Tax, error) {
	var out []tariff.Tax
	for _, t := range r.items {
		if t.StationID == stationID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTaxRepo) FindAll(context.Context, shared.Filter) ([]tariff.Tax, error) {
	out := make([]tariff.Tax, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, *t)
	}
	return out, nil
}

func (r *memTaxRepo) Save(_ context.Context, tax *tariff.Tax) error {
	for i, t := range r.items {
		if t.ID == tax.ID {
			r.items[i] = tax
			return nil
		}
	}
	r.items = append(r.items, tax)
	return nil
}

func (r *memTaxRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range r.items {
		if t.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memTaxRepo) Count(context.Context, shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

type memTruckChangeRepo struct{ items []*checkpoint.TruckChange }

func (r *memTruckChangeRepo) FindByJourney(_ context.Context, journeyID uuid.UUID) ([]checkpoint.TruckChange, error) {
	var out []checkpoint.TruckChange
	for _, c := range r.items {
		if c.JourneyID == journeyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memTruckChangeRepo) FindAll(context.Context, shared.Filter) ([]checkpoint.TruckChange, error) {
	out := make([]checkpoint.TruckChange, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memTruckChangeRepo) Save(_ context.Context, change *checkpoint.TruckChange) error {
	r.items = append(r.items, change)
	return nil
}

type memManualPaymentRepo struct{ items []*checkpoint.ManualPayment }

func (r *memManualPaymentRepo) FindByCheckin(_ context.Context, checkinID uuid.UUID) (*checkpoint.ManualPayment, error) {
	for _, p := range r.items {
		if p.CheckinID == checkinID {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memManualPaymentRepo) Save(_ context.Context, payment *checkpoint.ManualPayment) error {
	r.items = append(r.items, payment)
	return nil
}

// memIdempotencyStore is a map-backed shared.IdempotencyStore
type memIdempotencyStore struct{ seen map[string]bool }

func newMemIdempotencyStore() *memIdempotencyStore {
	return &memIdempotencyStore{seen: make(map[string]bool)}
}

func (s *memIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *memIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	return s.seen[key], nil
}

func (s *memIdempotencyStore) Close() error { return nil }
