package services

import (
	"context"
	"sort"
	"time"

	. "girasol/internal/models"
	"girasol/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// ApartmentGroup is one column of the turnover board: an apartment together
// with its active reservations ordered by departure.
type ApartmentGroup struct {
	Apartment    Apartment     `json:"apartment"`
	Reservations []Reservation `json:"reservations"`
}

// WeeklyDigest summarizes the current week's guest movements.
type WeeklyDigest struct {
	WeekStart  time.Time     `json:"weekStart"`
	WeekEnd    time.Time     `json:"weekEnd"`
	Arrivals   []Reservation `json:"arrivals"`
	Departures []Reservation `json:"departures"`
}

// BoardService builds the read-side projections: the per-apartment turnover
// board and the weekly arrivals/departures digest. All grouping and window
// math is in pure helpers so tests never need a database.
type BoardService struct {
	reservationRepo repositories.ReservationRepository
	apartmentRepo   repositories.ApartmentRepository
	log             logger.Logger
}

func NewBoardService(
	reservationRepo repositories.ReservationRepository,
	apartmentRepo repositories.ApartmentRepository,
) *BoardService {
	return &BoardService{
		reservationRepo: reservationRepo,
		apartmentRepo:   apartmentRepo,
		log:             logger.New("BoardService"),
	}
}

// GroupByApartment assembles board columns. Every apartment appears, even
// with no reservations; an empty filter means all apartments. Reservations
// are attached to their apartment in departure order, active stays only.
func GroupByApartment(
	apartments []Apartment,
	reservations []Reservation,
	filter []uuid.UUID,
) []ApartmentGroup {
	selected := apartments
	if len(filter) > 0 {
		wanted := make(map[uuid.UUID]bool, len(filter))
		for _, id := range filter {
			wanted[id] = true
		}
		selected = make([]Apartment, 0, len(filter))
		for _, a := range apartments {
			if wanted[a.ID] {
				selected = append(selected, a)
			}
		}
	}

	byApartment := make(map[uuid.UUID][]Reservation)
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		byApartment[r.ApartmentID] = append(byApartment[r.ApartmentID], r)
	}

	groups := make([]ApartmentGroup, 0, len(selected))
	for _, apartment := range selected {
		group := byApartment[apartment.ID]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Departure.Before(group[j].Departure)
		})
		if group == nil {
			group = []Reservation{}
		}
		groups = append(groups, ApartmentGroup{Apartment: apartment, Reservations: group})
	}

	return groups
}

// WeekWindow returns the Monday-first week containing now: Monday 00:00:00
// through the last nanosecond of Sunday, in now's location. Sundays belong
// to the week that started six days earlier.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	daysBack := int(now.Weekday()) - int(time.Monday)
	if daysBack < 0 {
		daysBack = 6 // Sunday
	}

	year, month, day := now.AddDate(0, 0, -daysBack).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// visibleOnCalendar keeps a reservation on calendar views. Archived stays
// linger only while their departure is still in the future.
func visibleOnCalendar(r Reservation, now time.Time) bool {
	return r.IsActive() || r.Departure.After(now)
}

// BuildWeeklyDigest computes this week's arrivals and departures from the
// given reservations. Arrivals sort by arrival time, departures by
// departure time.
func BuildWeeklyDigest(
	reservations []Reservation,
	filter []uuid.UUID,
	now time.Time,
) WeeklyDigest {
	start, end := WeekWindow(now)

	wanted := make(map[uuid.UUID]bool, len(filter))
	for _, id := range filter {
		wanted[id] = true
	}

	digest := WeeklyDigest{
		WeekStart:  start,
		WeekEnd:    end,
		Arrivals:   []Reservation{},
		Departures: []Reservation{},
	}

	for _, r := range reservations {
		if len(filter) > 0 && !wanted[r.ApartmentID] {
			continue
		}
		if !visibleOnCalendar(r, now) {
			continue
		}
		if !r.Arrival.Before(start) && !r.Arrival.After(end) {
			digest.Arrivals = append(digest.Arrivals, r)
		}
		if !r.Departure.Before(start) && !r.Departure.After(end) {
			digest.Departures = append(digest.Departures, r)
		}
	}

	sort.SliceStable(digest.Arrivals, func(i, j int) bool {
		return digest.Arrivals[i].Arrival.Before(digest.Arrivals[j].Arrival)
	})
	sort.SliceStable(digest.Departures, func(i, j int) bool {
		return digest.Departures[i].Departure.Before(digest.Departures[j].Departure)
	})

	return digest
}

// GetBoard loads the data behind the turnover board.
func (s *BoardService) GetBoard(ctx context.Context, filter []uuid.UUID) ([]ApartmentGroup, error) {
	apartments, err := s.apartmentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	reservations, err := s.reservationRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	return GroupByApartment(apartments, reservations, filter), nil
}

// GetWeeklyDigest builds the digest for the week containing now.
func (s *BoardService) GetWeeklyDigest(
	ctx context.Context,
	filter []uuid.UUID,
	now time.Time,
) (WeeklyDigest, error) {
	reservations, err := s.reservationRepo.GetAll(ctx)
	if err != nil {
		return WeeklyDigest{}, err
	}

	return BuildWeeklyDigest(reservations, filter, now), nil
}
