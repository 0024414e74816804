// Package repository holds the in-memory snapshot every scheduling computation
// reads from.
//
// The snapshot is an explicit object passed by reference into scheduling
// calls, rehydrated from the remote store at defined refresh points. It is
// deliberately not a process-wide singleton.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shelfwise/circulation/core"
	"github.com/shelfwise/circulation/remotestore"
)

// ErrRehydratingSnapshotFailed wraps any fetch error during rehydration.
var ErrRehydratingSnapshotFailed = errors.New("rehydrating snapshot failed")

// Snapshot is the full client-held state at one refresh point.
//
// Availability and queue positions computed from a snapshot carry no version
// stamp against the remote store; two concurrent operators can both believe a
// copy is free. That race is documented as accepted risk, see DESIGN.md.
type Snapshot struct {
	Titles       []core.Title
	Members      []core.Member
	LoanEvents   []core.LoanEvent
	Reservations []core.Reservation
	Settings     core.Settings
	RefreshedAt  time.Time

	titlesByID  map[core.TitleIDString]core.Title
	membersByID map[core.MemberIDString]core.Member
}

// Rehydrate loads a fresh snapshot from the remote store.
func Rehydrate(ctx context.Context, reader remotestore.Reader, now time.Time) (*Snapshot, error) {
	titles, err := reader.FetchTitles(ctx)
	if err != nil {
		return nil, errors.Join(ErrRehydratingSnapshotFailed, err)
	}

	members, err := reader.FetchMembers(ctx)
	if err != nil {
		return nil, errors.Join(ErrRehydratingSnapshotFailed, err)
	}

	events, err := reader.FetchLoanEvents(ctx)
	if err != nil {
		return nil, errors.Join(ErrRehydratingSnapshotFailed, err)
	}

	reservations, err := reader.FetchReservations(ctx)
	if err != nil {
		return nil, errors.Join(ErrRehydratingSnapshotFailed, err)
	}

	settings, err := reader.FetchSettings(ctx)
	if err != nil {
		return nil, errors.Join(ErrRehydratingSnapshotFailed, err)
	}

	return Build(titles, members, events, reservations, settings, now), nil
}

// Build assembles a snapshot from already-loaded records. Tests and local
// caches use this directly.
func Build(
	titles []core.Title,
	members []core.Member,
	events []core.LoanEvent,
	reservations []core.Reservation,
	settings core.Settings,
	now time.Time,
) *Snapshot {

	snapshot := &Snapshot{
		Titles:       titles,
		Members:      members,
		LoanEvents:   events,
		Reservations: reservations,
		Settings:     settings,
		RefreshedAt:  now,
		titlesByID:   make(map[core.TitleIDString]core.Title, len(titles)),
		membersByID:  make(map[core.MemberIDString]core.Member, len(members)),
	}

	for _, title := range titles {
		snapshot.titlesByID[title.ID] = title
	}

	for _, member := range members {
		snapshot.membersByID[member.ID] = member
	}

	return snapshot
}

// Title looks up a title by id.
func (s *Snapshot) Title(id core.TitleIDString) (core.Title, bool) {
	title, ok := s.titlesByID[id]
	return title, ok
}

// Member looks up a member by id.
func (s *Snapshot) Member(id core.MemberIDString) (core.Member, bool) {
	member, ok := s.membersByID[id]
	return member, ok
}

// Reservation looks up a reservation by id.
func (s *Snapshot) Reservation(id core.ReservationIDString) (core.Reservation, bool) {
	for _, reservation := range s.Reservations {
		if reservation.ID == id {
			return reservation, true
		}
	}

	return core.Reservation{}, false
}

// ActiveReservationsForTitle returns the title's Active reservations.
func (s *Snapshot) ActiveReservationsForTitle(titleID core.TitleIDString) []core.Reservation {
	actives := make([]core.Reservation, 0)

	for _, reservation := range s.Reservations {
		if reservation.TitleID == titleID && reservation.IsActive() {
			actives = append(actives, reservation)
		}
	}

	return actives
}

// ActiveReservationForMemberAndTitle finds the member's Active reservation on
// a title, if any.
func (s *Snapshot) ActiveReservationForMemberAndTitle(memberID core.MemberIDString, titleID core.TitleIDString) (core.Reservation, bool) {
	for _, reservation := range s.Reservations {
		if reservation.MemberID == memberID && reservation.TitleID == titleID && reservation.IsActive() {
			return reservation, true
		}
	}

	return core.Reservation{}, false
}
