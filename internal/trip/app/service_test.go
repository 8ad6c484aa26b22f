package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"realgo/internal/shared/apperrors"
	"realgo/internal/shared/util"
	"realgo/internal/trip/domain"
)

const (
	routeID     = "aaaaaaaa-0000-0000-0000-000000000001"
	otherRoute  = "aaaaaaaa-0000-0000-0000-000000000002"
	stopA       = "bbbbbbbb-0000-0000-0000-000000000001"
	stopB       = "bbbbbbbb-0000-0000-0000-000000000002"
	foreignStop = "bbbbbbbb-0000-0000-0000-000000000009"
	shiftID     = "cccccccc-0000-0000-0000-000000000001"
	passengerID = "11111111-1111-1111-1111-111111111111"
	driverID    = "22222222-2222-2222-2222-222222222222"
	otherDriver = "22222222-2222-2222-2222-222222222229"
	strangerID  = "99999999-9999-9999-9999-999999999999"
)

type fakeShift struct {
	id        string
	driverID  string
	routeID   string
	status    string
	total     int
	available int
	createdAt time.Time
}

type fakeRepo struct {
	mu          sync.Mutex
	routes      map[string]domain.BookingRoute
	stops       map[string]string // stop id -> route id
	shifts      map[string]*fakeShift
	trips       map[string]*domain.Trip
	driverTrips map[string]int
	messages    []domain.Message
	clock       time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		routes: map[string]domain.BookingRoute{
			routeID: {ID: routeID, BasePriceCents: 600, Currency: "PEN"},
		},
		stops: map[string]string{
			stopA:       routeID,
			stopB:       routeID,
			foreignStop: otherRoute,
		},
		shifts: map[string]*fakeShift{
			shiftID: {id: shiftID, driverID: driverID, routeID: routeID, status: "open", total: 4, available: 4, createdAt: time.Unix(1000, 0)},
		},
		trips:       map[string]*domain.Trip{},
		driverTrips: map[string]int{},
		clock:       time.Unix(2000, 0),
	}
}

func (f *fakeRepo) GetBookingRoute(ctx context.Context, id string) (*domain.BookingRoute, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rt, ok := f.routes[id]
	if !ok {
		return nil, apperrors.NotFound("route")
	}
	return &rt, nil
}

func (f *fakeRepo) StopBelongsToRoute(ctx context.Context, stopID, rID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops[stopID] == rID, nil
}

func (f *fakeRepo) CreateTrip(ctx context.Context, trip domain.Trip) (*domain.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	candidates := []*fakeShift{}
	for _, s := range f.shifts {
		if s.routeID == trip.RouteID && s.status == "open" && s.available >= trip.SeatsRequested {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, apperrors.Conflict("no units available")
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].createdAt.Equal(candidates[j].createdAt) {
			return candidates[i].createdAt.Before(candidates[j].createdAt)
		}
		return candidates[i].id < candidates[j].id
	})

	chosen := candidates[0]
	chosen.available -= trip.SeatsRequested

	f.clock = f.clock.Add(time.Second)
	sid := chosen.id
	trip.ShiftID = &sid
	trip.Status = domain.StatusRequested
	trip.CreatedAt = f.clock
	trip.UpdatedAt = f.clock
	stored := trip
	f.trips[trip.ID] = &stored

	out := stored
	return &out, nil
}

func (f *fakeRepo) GetTripByID(ctx context.Context, tripID string) (*domain.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trips[tripID]
	if !ok {
		return nil, apperrors.NotFound("trip")
	}
	out := *t
	return &out, nil
}

func (f *fakeRepo) ShiftOwner(ctx context.Context, sID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.shifts[sID]
	if !ok {
		return "", apperrors.NotFound("shift")
	}
	return s.driverID, nil
}

func (f *fakeRepo) ApplyTransition(ctx context.Context, update domain.TransitionUpdate) (*domain.Trip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.trips[update.TripID]
	if !ok {
		return nil, apperrors.NotFound("trip")
	}
	if t.Status != update.FromStatus {
		return nil, apperrors.InvalidTransition(t.Status, string(update.Action))
	}

	t.Status = update.ToStatus
	if update.SetDriverID != "" {
		d := update.SetDriverID
		t.DriverID = &d
	}
	f.clock = f.clock.Add(time.Second)
	t.UpdatedAt = f.clock

	if update.ReleaseSeats {
		if s, ok := f.shifts[update.ShiftID]; ok {
			s.available += update.Seats
			if s.available > s.total {
				s.available = s.total
			}
		}
	}
	if update.IncrementDriverTrips {
		f.driverTrips[update.DriverID]++
	}

	out := *t
	return &out, nil
}

func (f *fakeRepo) CreateMessage(ctx context.Context, msg domain.Message) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Second)
	msg.CreatedAt = f.clock
	f.messages = append(f.messages, msg)
	out := msg
	return &out, nil
}

func (f *fakeRepo) ListMessages(ctx context.Context, tripID string, since *time.Time) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Message{}
	for _, m := range f.messages {
		if m.TripID != tripID {
			continue
		}
		if since != nil && !m.CreatedAt.After(*since) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRepo) MarkMessagesRead(ctx context.Context, tripID, readerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.messages {
		m := &f.messages[i]
		if m.TripID == tripID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
	fail   bool
}

func (p *fakePublisher) Publish(ctx context.Context, exchange, routingKey string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.events = append(p.events, routingKey)
	return nil
}

func newService(repo *fakeRepo, pub *fakePublisher) *TripService {
	return NewTripService(repo, pub, util.New())
}

func validInput() domain.CreateTripInput {
	return domain.CreateTripInput{
		RouteID:        routeID,
		SeatsRequested: 2,
		PaymentMethod:  "cash",
	}
}

func TestCreateTripComputesPriceAndDecrementsSeats(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakePublisher{})

	trip, err := svc.CreateTrip(context.Background(), passengerID, validInput())
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	if trip.PriceCents != 1200 {
		t.Errorf("price_cents = %d, want 1200", trip.PriceCents)
	}
	if trip.Currency != "PEN" {
		t.Errorf("currency = %s, want PEN", trip.Currency)
	}
	if trip.Status != domain.StatusRequested {
		t.Errorf("status = %s, want requested", trip.Status)
	}
	if trip.ShiftID == nil || *trip.ShiftID != shiftID {
		t.Errorf("shift_id = %v, want %s", trip.ShiftID, shiftID)
	}
	if got := repo.shifts[shiftID].available; got != 2 {
		t.Errorf("available_seats = %d, want 2", got)
	}
}

func TestCreateTripPublishesRequestedEvent(t *testing.T) {
	pub := &fakePublisher{}
	svc := newService(newFakeRepo(), pub)

	if _, err := svc.CreateTrip(context.Background(), passengerID, validInput()); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0] != "trip.status.requested" {
		t.Errorf("events = %v, want [trip.status.requested]", pub.events)
	}
}

func TestCreateTripSurvivesBrokerFailure(t *testing.T) {
	svc := newService(newFakeRepo(), &fakePublisher{fail: true})

	if _, err := svc.CreateTrip(context.Background(), passengerID, validInput()); err != nil {
		t.Fatalf("CreateTrip must not fail on publish error, got %v", err)
	}
}

func TestCreateTripValidation(t *testing.T) {
	svc := newService(newFakeRepo(), &fakePublisher{})
	ctx := context.Background()

	stopACopy, foreignCopy := stopA, foreignStop

	cases := []struct {
		name string
		mod  func(*domain.CreateTripInput)
		want error
	}{
		{"bad payment method", func(in *domain.CreateTripInput) { in.PaymentMethod = "card" }, apperrors.ErrValidation},
		{"zero seats", func(in *domain.CreateTripInput) { in.SeatsRequested = 0 }, apperrors.ErrValidation},
		{"too many seats", func(in *domain.CreateTripInput) { in.SeatsRequested = 11 }, apperrors.ErrValidation},
		{"identical stops", func(in *domain.CreateTripInput) {
			in.PickupStopID, in.DropoffStopID = &stopACopy, &stopACopy
		}, apperrors.ErrValidation},
		{"foreign stop", func(in *domain.CreateTripInput) { in.PickupStopID = &foreignCopy }, apperrors.ErrValidation},
		{"missing route", func(in *domain.CreateTripInput) { in.RouteID = otherRoute }, apperrors.ErrNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			input := validInput()
			c.mod(&input)
			if _, err := svc.CreateTrip(ctx, passengerID, input); !errors.Is(err, c.want) {
				t.Errorf("want %v, got %v", c.want, err)
			}
		})
	}
}

func TestCreateTripConflictWhenNoCapacity(t *testing.T) {
	repo := newFakeRepo()
	repo.shifts[shiftID].available = 1
	svc := newService(repo, &fakePublisher{})

	_, err := svc.CreateTrip(context.Background(), passengerID, validInput())
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestCreateTripPrefersEarliestShift(t *testing.T) {
	repo := newFakeRepo()
	earlier := &fakeShift{
		id: "cccccccc-0000-0000-0000-000000000000", driverID: otherDriver,
		routeID: routeID, status: "open", total: 6, available: 6,
		createdAt: time.Unix(500, 0),
	}
	repo.shifts[earlier.id] = earlier
	svc := newService(repo, &fakePublisher{})

	trip, err := svc.CreateTrip(context.Background(), passengerID, validInput())
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if *trip.ShiftID != earlier.id {
		t.Errorf("allocated shift %s, want earliest-created %s", *trip.ShiftID, earlier.id)
	}
}

func createTrip(t *testing.T, svc *TripService) *domain.Trip {
	t.Helper()
	trip, err := svc.CreateTrip(context.Background(), passengerID, validInput())
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	return trip
}

func TestAcceptOnboardCompleteSequence(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakePublisher{})
	ctx := context.Background()
	trip := createTrip(t, svc)

	accepted, err := svc.Transition(ctx, trip.ID, driverID, "driver", domain.ActionAccept)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != domain.StatusAccepted || accepted.DriverID == nil || *accepted.DriverID != driverID {
		t.Fatalf("accept: got status %s driver %v", accepted.Status, accepted.DriverID)
	}

	onboard, err := svc.Transition(ctx, trip.ID, driverID, "driver", domain.ActionOnboard)
	if err != nil {
		t.Fatalf("onboard: %v", err)
	}
	if onboard.Status != domain.StatusOnboard {
		t.Fatalf("onboard: got status %s", onboard.Status)
	}

	completed, err := svc.Transition(ctx, trip.ID, driverID, "driver", domain.ActionComplete)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != domain.StatusCompleted {
		t.Fatalf("complete: got status %s", completed.Status)
	}
	if repo.driverTrips[driverID] != 1 {
		t.Errorf("driver total_trips = %d, want 1", repo.driverTrips[driverID])
	}
}

func TestOnboardBeforeAcceptFails(t *testing.T) {
	svc := newService(newFakeRepo(), &fakePublisher{})
	trip := createTrip(t, svc)

	_, err := svc.Transition(context.Background(), trip.ID, driverID, "driver", domain.ActionOnboard)
	if !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestAcceptByWrongDriverForbidden(t *testing.T) {
	svc := newService(newFakeRepo(), &fakePublisher{})
	trip := createTrip(t, svc)

	_, err := svc.Transition(context.Background(), trip.ID, otherDriver, "driver", domain.ActionAccept)
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestAcceptByPassengerForbidden(t *testing.T) {
	svc := newService(newFakeRepo(), &fakePublisher{})
	trip := createTrip(t, svc)

	_, err := svc.Transition(context.Background(), trip.ID, passengerID, "passenger", domain.ActionAccept)
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestCancelByStrangerForbidden(t *testing.T) {
	svc := newService(newFakeRepo(), &fakePublisher{})
	trip := createTrip(t, svc)

	_, err := svc.Transition(context.Background(), trip.ID, strangerID, "passenger", domain.ActionCancel)
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestRejectReleasesSeats(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakePublisher{})
	trip := createTrip(t, svc)

	if _, err := svc.Transition(context.Background(), trip.ID, driverID, "driver", domain.ActionReject); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got := repo.shifts[shiftID].available; got != 4 {
		t.Errorf("available_seats after reject = %d, want 4", got)
	}
}

func TestCancelFromRequestedReleasesSeats(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakePublisher{})
	trip := createTrip(t, svc)

	if _, err := svc.Transition(context.Background(), trip.ID, passengerID, "passenger", domain.ActionCancel); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := repo.shifts[shiftID].available; got != 4 {
		t.Errorf("available_seats after cancel = %d, want 4", got)
	}
}

func TestCancelFromAcceptedKeepsSeatsCommitted(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &fakePublisher{})
	ctx := context.Background()
	trip := createTrip(t, svc)

	if _, err := svc.Transition(ctx, trip.ID, driverID, "driver", domain.ActionAccept); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := svc.Transition(ctx, trip.ID, passengerID, "passenger", domain.ActionCancel); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := repo.shifts[shiftID].available; got != 2 {
		t.Errorf("available_seats after cancel-from-accepted = %d, want 2", got)
	}
}

func TestTerminalTripRejectsFurtherTransitions(t *testing.T) {
	svc := newService(newFakeRepo(), &fakePublisher{})
	ctx := context.Background()
	trip := createTrip(t, svc)

	if _, err := svc.Transition(ctx, trip.ID, driverID, "driver", domain.ActionReject); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if _, err := svc.Transition(ctx, trip.ID, driverID, "driver", domain.ActionAccept); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("accept after reject: want ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.Transition(ctx, trip.ID, passengerID, "passenger", domain.ActionCancel); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("cancel after reject: want ErrInvalidTransition, got %v", err)
	}
}

func TestGetTripHidesOtherUsersTrips(t *testing.T) {
	svc := newService(newFakeRepo(), &fakePublisher{})
	trip := createTrip(t, svc)

	if _, err := svc.GetTrip(context.Background(), trip.ID, strangerID, "passenger"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if _, err := svc.GetTrip(context.Background(), trip.ID, strangerID, "admin"); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}
