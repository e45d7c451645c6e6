//go:build unit || e2e

// Package fakeuow is an in-memory shared.UnitOfWork for use case tests.
// Transactions are serialized by one mutex and roll back on error.
package fakeuow

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/review"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/clock"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

	"github.com/google/uuid"
)

var errNotFound = errs.NewKind(errs.ErrNotFound, "row not found")

type pricingKey struct {
	lotID       uuid.UUID
	unit        booking.Unit
	vehicleType vehicle.Type
}

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

// Job is a notification job written through the outbox.
type Job struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

// RatingStats is the aggregate last written for a lot by RecalcLotStats.
type RatingStats struct {
	Total     int
	Average   float64
	Counts    [review.MaxRating]int
	UpdatedAt time.Time
}

type state struct {
	lots      map[uuid.UUID]*lot.Lot
	spots     map[uuid.UUID]*lot.Spot
	bookings  map[uuid.UUID]booking.Snapshot
	vehicles  map[uuid.UUID]*vehicle.Vehicle
	pricing   map[pricingKey]booking.PricingRule
	idem      map[idemKey]shared.IdempotencyRecord
	jobs      []Job
	lastLogin map[uuid.UUID]time.Time
	reviews   map[uuid.UUID]*review.Review
	stats     map[uuid.UUID]RatingStats
}

type Store struct {
	mu sync.Mutex
	st state

	// BeforeCommit, when set, runs at the end of every successful fn and may
	// fail the transaction.
	BeforeCommit func() error
	// Commits counts committed transactions.
	Commits int
	// Clock decides idempotency key expiry. Defaults to the real clock.
	Clock clock.Clock
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{Clock: clock.NewRealClock(), st: state{
		lots:      map[uuid.UUID]*lot.Lot{},
		spots:     map[uuid.UUID]*lot.Spot{},
		bookings:  map[uuid.UUID]booking.Snapshot{},
		vehicles:  map[uuid.UUID]*vehicle.Vehicle{},
		pricing:   map[pricingKey]booking.PricingRule{},
		idem:      map[idemKey]shared.IdempotencyRecord{},
		lastLogin: map[uuid.UUID]time.Time{},
		reviews:   map[uuid.UUID]*review.Review{},
		stats:     map[uuid.UUID]RatingStats{},
	}}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	saved := s.st.clone()
	err := fn(ctx, &tx{s: s})
	if err == nil && s.BeforeCommit != nil {
		err = s.BeforeCommit()
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.st = saved
		return err
	}
	s.Commits++
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return lockedReads{s: s}
}

func (st state) clone() state {
	out := state{
		lots:      make(map[uuid.UUID]*lot.Lot, len(st.lots)),
		spots:     make(map[uuid.UUID]*lot.Spot, len(st.spots)),
		bookings:  make(map[uuid.UUID]booking.Snapshot, len(st.bookings)),
		vehicles:  make(map[uuid.UUID]*vehicle.Vehicle, len(st.vehicles)),
		pricing:   make(map[pricingKey]booking.PricingRule, len(st.pricing)),
		idem:      make(map[idemKey]shared.IdempotencyRecord, len(st.idem)),
		jobs:      append([]Job(nil), st.jobs...),
		lastLogin: make(map[uuid.UUID]time.Time, len(st.lastLogin)),
		reviews:   make(map[uuid.UUID]*review.Review, len(st.reviews)),
		stats:     make(map[uuid.UUID]RatingStats, len(st.stats)),
	}
	for k, v := range st.lots {
		out.lots[k] = copyLot(v)
	}
	for k, v := range st.spots {
		out.spots[k] = copySpot(v)
	}
	for k, v := range st.bookings {
		out.bookings[k] = v
	}
	for k, v := range st.vehicles {
		out.vehicles[k] = v
	}
	for k, v := range st.pricing {
		out.pricing[k] = v
	}
	for k, v := range st.idem {
		out.idem[k] = v
	}
	for k, v := range st.lastLogin {
		out.lastLogin[k] = v
	}
	for k, v := range st.reviews {
		out.reviews[k] = copyReview(v)
	}
	for k, v := range st.stats {
		out.stats[k] = v
	}
	return out
}

func copyLot(l *lot.Lot) *lot.Lot {
	return lot.ReconstructLot(
		l.ID(), l.OwnerID(), l.Name(), l.Address(),
		l.Capacity(), l.FreeSlots(), l.Status(), l.Verification(),
		l.CancellationPolicy(), l.CreatedAt(), l.UpdatedAt(),
	)
}

func copySpot(sp *lot.Spot) *lot.Spot {
	return lot.ReconstructSpot(sp.ID(), sp.LotID(), sp.Number(), sp.Type(), sp.Status(), sp.CreatedAt(), sp.UpdatedAt())
}

func copyReview(r *review.Review) *review.Review {
	return review.ReconstructReview(
		r.ID(), r.UserID(), r.LotID(), r.Rating().Value(), r.Comment().String(),
		r.CreatedAt(), r.UpdatedAt(), r.DeletedAt(),
	)
}

// Seeding and inspection helpers. They take the store lock.

func (s *Store) PutLot(l *lot.Lot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.lots[l.ID()] = copyLot(l)
}

func (s *Store) PutSpot(sp *lot.Spot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.spots[sp.ID()] = copySpot(sp)
}

func (s *Store) PutVehicle(v *vehicle.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.vehicles[v.ID()] = v
}

func (s *Store) PutPricing(r booking.PricingRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.pricing[pricingKey{r.LotID, r.Unit, r.VehicleType}] = r
}

func (s *Store) PutBooking(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.bookings[b.ID()] = b.Snapshot()
}

func (s *Store) PutIdempotency(rec shared.IdempotencyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.idem[idemKey{rec.Key, rec.UserID}] = rec
}

func (s *Store) PutReview(r *review.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.reviews[r.ID()] = copyReview(r)
}

func (s *Store) Review(id uuid.UUID) *review.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.reviews[id]
	if !ok {
		return nil
	}
	return copyReview(r)
}

func (s *Store) RatingStats(lotID uuid.UUID) (RatingStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.st.stats[lotID]
	return st, ok
}

func (s *Store) Lot(id uuid.UUID) *lot.Lot {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.st.lots[id]
	if !ok {
		return nil
	}
	return copyLot(l)
}

func (s *Store) Spot(id uuid.UUID) *lot.Spot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.st.spots[id]
	if !ok {
		return nil
	}
	return copySpot(sp)
}

func (s *Store) Booking(id uuid.UUID) *booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.st.bookings[id]
	if !ok {
		return nil
	}
	return booking.Reconstruct(snap)
}

func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.bookings)
}

func (s *Store) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.st.idem[idemKey{key, userID}]
	return rec, ok
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Job(nil), s.st.jobs...)
}

func (s *Store) LastLogin(userID uuid.UUID) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.st.lastLogin[userID]
	return t, ok
}

// CheckInventory verifies that every lot has handed out exactly as many slots
// as it has bookings whose capacity is not released, and that in spot mode
// the held spots match.
func (s *Store) CheckInventory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, l := range s.st.lots {
		held := 0
		for _, b := range s.st.bookings {
			if b.LotID == id && !b.CapacityReleased {
				held++
			}
		}
		if held != l.HeldSlots() {
			return errs.Newf("lot %s: %d unreleased bookings but %d held slots", id, held, l.HeldSlots())
		}

		var spots []*lot.Spot
		for _, sp := range s.st.spots {
			if sp.LotID() == id {
				spots = append(spots, sp)
			}
		}
		if err := lot.CheckHeldSpots(l, spots); err != nil {
			return err
		}
	}
	return nil
}

type tx struct {
	s *Store
}

func (t *tx) Lots() shared.LotRepository                   { return lotRepo{t.s} }
func (t *tx) Spots() shared.SpotRepository                 { return spotRepo{t.s} }
func (t *tx) Bookings() shared.BookingRepository           { return bookingRepo{t.s} }
func (t *tx) Vehicles() shared.VehicleRepository           { return vehicleRepo{t.s} }
func (t *tx) Pricing() shared.PricingRepository            { return pricingRepo{t.s} }
func (t *tx) Idempotency() shared.IdempotencyRepository    { return idemRepo{t.s} }
func (t *tx) Notifications() shared.NotificationRepository { return notificationRepo{t.s} }
func (t *tx) Users() shared.UserRepository                 { return userRepo{t.s} }
func (t *tx) Reviews() shared.ReviewRepository             { return reviewRepo{t.s} }
func (t *tx) Reads() shared.CommandReads                   { return reads{t.s} }

type lotRepo struct{ s *Store }

func (r lotRepo) Create(_ context.Context, l *lot.Lot) error {
	r.s.st.lots[l.ID()] = copyLot(l)
	return nil
}

func (r lotRepo) Get(_ context.Context, id uuid.UUID) (*lot.Lot, error) {
	l, ok := r.s.st.lots[id]
	if !ok {
		return nil, errNotFound
	}
	return copyLot(l), nil
}

func (r lotRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*lot.Lot, error) {
	return r.Get(ctx, id)
}

func (r lotRepo) Update(_ context.Context, l *lot.Lot) error {
	if _, ok := r.s.st.lots[l.ID()]; !ok {
		return errNotFound
	}
	if l.FreeSlots() < 0 || l.FreeSlots() > l.Capacity() {
		return errs.WithKind(errs.New("free_slots check violated"), errs.ErrConsistencyFault)
	}
	r.s.st.lots[l.ID()] = copyLot(l)
	return nil
}

type spotRepo struct{ s *Store }

func (r spotRepo) Create(_ context.Context, sp *lot.Spot) error {
	for _, other := range r.s.st.spots {
		if other.LotID() == sp.LotID() && other.Number() == sp.Number() {
			return lot.ErrSpotNumberTaken
		}
	}
	r.s.st.spots[sp.ID()] = copySpot(sp)
	return nil
}

func (r spotRepo) GetForUpdate(_ context.Context, lotID, spotID uuid.UUID) (*lot.Spot, error) {
	sp, ok := r.s.st.spots[spotID]
	if !ok || sp.LotID() != lotID {
		return nil, errNotFound
	}
	return copySpot(sp), nil
}

func (r spotRepo) ListByLotForUpdate(_ context.Context, lotID uuid.UUID) ([]*lot.Spot, error) {
	var out []*lot.Spot
	for _, sp := range r.s.st.spots {
		if sp.LotID() == lotID {
			out = append(out, copySpot(sp))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out, nil
}

func (r spotRepo) CountByLot(_ context.Context, lotID uuid.UUID) (int, error) {
	n := 0
	for _, sp := range r.s.st.spots {
		if sp.LotID() == lotID {
			n++
		}
	}
	return n, nil
}

func (r spotRepo) UpdateStatus(_ context.Context, sp *lot.Spot) error {
	if _, ok := r.s.st.spots[sp.ID()]; !ok {
		return errNotFound
	}
	r.s.st.spots[sp.ID()] = copySpot(sp)
	return nil
}

type bookingRepo struct{ s *Store }

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	for _, other := range r.s.st.bookings {
		if other.Code == b.Code() {
			return booking.ErrCodeTaken
		}
	}
	r.s.st.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r bookingRepo) Get(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, ok := r.s.st.bookings[id]
	if !ok {
		return nil, errNotFound
	}
	return booking.Reconstruct(snap), nil
}

func (r bookingRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.Get(ctx, id)
}

func (r bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.s.st.bookings[b.ID()]; !ok {
		return errNotFound
	}
	r.s.st.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r bookingRepo) HasOverlap(_ context.Context, q shared.OverlapQuery) (bool, error) {
	for _, snap := range r.s.st.bookings {
		if !snap.Status.IsHolding() {
			continue
		}
		if q.SpotID != nil {
			if snap.SpotID == nil || *snap.SpotID != *q.SpotID {
				continue
			}
		} else if snap.LotID != q.LotID || snap.SpotID != nil {
			continue
		}
		w, err := booking.NewTimeWindow(snap.Start, snap.End)
		if err != nil {
			return false, err
		}
		if w.Overlaps(q.Window) {
			return true, nil
		}
	}
	return false, nil
}

type vehicleRepo struct{ s *Store }

func (r vehicleRepo) Create(_ context.Context, v *vehicle.Vehicle) error {
	for _, other := range r.s.st.vehicles {
		if other.Plate() == v.Plate() {
			return vehicle.ErrPlateTaken
		}
	}
	r.s.st.vehicles[v.ID()] = v
	return nil
}

func (r vehicleRepo) Get(_ context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	v, ok := r.s.st.vehicles[id]
	if !ok {
		return nil, errNotFound
	}
	return v, nil
}

type pricingRepo struct{ s *Store }

func (r pricingRepo) Upsert(_ context.Context, rule booking.PricingRule) (booking.PricingRule, error) {
	key := pricingKey{rule.LotID, rule.Unit, rule.VehicleType}
	if existing, ok := r.s.st.pricing[key]; ok {
		rule.ID = existing.ID
	}
	r.s.st.pricing[key] = rule
	return rule, nil
}

func (r pricingRepo) Find(_ context.Context, lotID uuid.UUID, unit booking.Unit, vehicleType vehicle.Type) (booking.PricingRule, error) {
	rule, ok := r.s.st.pricing[pricingKey{lotID, unit, vehicleType}]
	if !ok {
		return booking.PricingRule{}, errNotFound
	}
	return rule, nil
}

type idemRepo struct{ s *Store }

func (r idemRepo) TryInsert(_ context.Context, key, userID uuid.UUID, _ string, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key, userID}
	if _, ok := r.s.st.idem[k]; ok {
		return false, nil
	}
	r.s.st.idem[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r idemRepo) MarkCompleted(_ context.Context, key, userID, bookingID uuid.UUID) error {
	k := idemKey{key, userID}
	rec, ok := r.s.st.idem[k]
	if !ok {
		return errNotFound
	}
	rec.Status = shared.IdempotencyCompleted
	rec.ResultBookingID = &bookingID
	r.s.st.idem[k] = rec
	return nil
}

func (r idemRepo) Delete(_ context.Context, key, userID uuid.UUID) error {
	delete(r.s.st.idem, idemKey{key, userID})
	return nil
}

func (r idemRepo) ClaimExpired(_ context.Context, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey{key, userID}
	rec, ok := r.s.st.idem[k]
	if !ok || !rec.ExpiresAt.Before(r.s.Clock.Now()) {
		return false, nil
	}
	r.s.st.idem[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	r.s.st.jobs = append(r.s.st.jobs, Job{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID) error {
	r.s.st.lastLogin[userID] = r.s.Clock.Now()
	return nil
}

type reviewRepo struct{ s *Store }

func (r reviewRepo) Create(_ context.Context, rv *review.Review) error {
	for _, other := range r.s.st.reviews {
		if !other.IsDeleted() && other.UserID() == rv.UserID() && other.LotID() == rv.LotID() {
			return review.ErrAlreadyReviewed
		}
	}
	r.s.st.reviews[rv.ID()] = copyReview(rv)
	return nil
}

func (r reviewRepo) GetForUpdate(_ context.Context, id uuid.UUID) (*review.Review, error) {
	rv, ok := r.s.st.reviews[id]
	if !ok || rv.IsDeleted() {
		return nil, errNotFound
	}
	return copyReview(rv), nil
}

func (r reviewRepo) Update(_ context.Context, rv *review.Review) error {
	existing, ok := r.s.st.reviews[rv.ID()]
	if !ok || existing.IsDeleted() {
		return errNotFound
	}
	r.s.st.reviews[rv.ID()] = copyReview(rv)
	return nil
}

func (r reviewRepo) HasCompletedBooking(_ context.Context, userID, lotID uuid.UUID) (bool, error) {
	for _, snap := range r.s.st.bookings {
		if snap.UserID == userID && snap.LotID == lotID && snap.Status == booking.StatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (r reviewRepo) RecalcLotStats(_ context.Context, lotID uuid.UUID, now time.Time) error {
	st := RatingStats{UpdatedAt: now}
	sum := 0
	for _, rv := range r.s.st.reviews {
		if rv.IsDeleted() || rv.LotID() != lotID {
			continue
		}
		v := rv.Rating().Value()
		st.Total++
		st.Counts[v-1]++
		sum += v
	}
	if st.Total > 0 {
		st.Average = float64(sum) / float64(st.Total)
	}
	r.s.st.stats[lotID] = st
	return nil
}

// reads serve Tx.Reads inside a transaction, where the lock is already held.
type reads struct{ s *Store }

func (r reads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingRef, error) {
	snap, ok := r.s.st.bookings[id]
	if !ok {
		return nil, errNotFound
	}
	return &shared.BookingRef{
		ID:     snap.ID,
		UserID: snap.UserID,
		LotID:  snap.LotID,
		SpotID: snap.SpotID,
		Status: snap.Status,
	}, nil
}

func (r reads) UnreleasedBookings(_ context.Context, limit int) ([]shared.BookingRef, error) {
	var out []shared.BookingRef
	for _, snap := range r.s.st.bookings {
		if len(out) >= limit {
			break
		}
		if snap.Status.IsTerminal() && !snap.CapacityReleased {
			out = append(out, shared.BookingRef{
				ID:     snap.ID,
				UserID: snap.UserID,
				LotID:  snap.LotID,
				SpotID: snap.SpotID,
				Status: snap.Status,
			})
		}
	}
	return out, nil
}

func (r reads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.s.st.idem[idemKey{key, userID}]
	if !ok {
		return nil, errNotFound
	}
	return &rec, nil
}

// lockedReads serve UnitOfWork.CommandReads outside any transaction.
type lockedReads struct{ s *Store }

func (r lockedReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return reads(r).BookingByID(ctx, id)
}

func (r lockedReads) UnreleasedBookings(ctx context.Context, limit int) ([]shared.BookingRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return reads(r).UnreleasedBookings(ctx, limit)
}

func (r lockedReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return reads(r).IdempotencyByKey(ctx, key, userID)
}
