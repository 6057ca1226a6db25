package table

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"holdemtables-server/internal/util"
	"holdemtables-server/pkg/holdem"
)

// Status is the table lifecycle state
type Status string

// table statuses. A hand exists if and only if the status is playing or
// hand_complete
const (
	StatusWaiting      Status = "waiting"
	StatusPlaying      Status = "playing"
	StatusHandComplete Status = "hand_complete"
)

// Table seats players and runs one hand at a time. It is a plain
// aggregate with no locking of its own; the room layer serializes all
// access through a single per-table run loop.
type Table struct {
	UUID    string    `json:"uuid"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`

	opts        Options
	seats       []*Seat
	status      Status
	hand        *holdem.Hand
	dealerSeat  int
	handCounter int64
}

// NewTable returns a new table with every seat empty
func NewTable(opts Options) *Table {
	return &Table{
		UUID:       uuid.New().String(),
		Name:       util.GetRandomName(),
		Created:    time.Now(),
		opts:       opts,
		seats:      make([]*Seat, opts.Seats),
		status:     StatusWaiting,
		dealerSeat: -1,
	}
}

// Options returns the table configuration
func (t *Table) Options() Options {
	return t.opts
}

// Status returns the table lifecycle state
func (t *Table) Status() Status {
	return t.status
}

// Hand returns the current hand, or nil between hands
func (t *Table) Hand() *holdem.Hand {
	return t.hand
}

// Seats returns the seat array; empty chairs are nil
func (t *Table) Seats() []*Seat {
	return t.seats
}

// Seat returns the player's seat, or nil if they are not at the table
func (t *Table) Seat(playerID int64) *Seat {
	for _, seat := range t.seats {
		if seat != nil && seat.PlayerID == playerID {
			return seat
		}
	}

	return nil
}

// HasFreeSeat returns true if at least one chair is empty
func (t *Table) HasFreeSeat() bool {
	for _, seat := range t.seats {
		if seat == nil {
			return true
		}
	}

	return false
}

// ActivePlayerCount returns the number of seated players who can fund a hand
func (t *Table) ActivePlayerCount() int {
	count := 0
	for _, seat := range t.seats {
		if seat != nil && seat.Balance > 0 {
			count++
		}
	}

	return count
}

// AssignSeat puts the player in the lowest-indexed empty seat with the
// buy-in as their stack. Asking for a seat while already seated returns
// the existing seat
func (t *Table) AssignSeat(playerID int64, displayName string, now time.Time) (*Seat, error) {
	if seat := t.Seat(playerID); seat != nil {
		return seat, nil
	}

	for i, seat := range t.seats {
		if seat != nil {
			continue
		}

		seat = &Seat{
			Index:       i,
			PlayerID:    playerID,
			DisplayName: displayName,
			Balance:     t.opts.BuyIn,
			SeatedAt:    now,
		}
		t.seats[i] = seat

		logrus.WithFields(logrus.Fields{
			"table":  t.UUID,
			"player": playerID,
			"seat":   i,
		}).Debug("seat assigned")

		return seat, nil
	}

	return nil, ErrTableFull
}

// LeaveSeat removes the player from the table, folding them out of a
// running hand first. The cleared seat is returned so the caller can
// credit the remaining chips back to the account
func (t *Table) LeaveSeat(playerID int64, now time.Time) (*Seat, error) {
	seat := t.Seat(playerID)
	if seat == nil {
		return nil, ErrNotSeated
	}

	if t.hand != nil {
		if !t.hand.IsOver() {
			if err := t.hand.Withdraw(playerID, now); err != nil && err != holdem.ErrPlayerNotInHand {
				return nil, err
			}

			if t.hand.IsOver() {
				t.status = StatusHandComplete
			}
		}

		// chips already committed to the pot stay in it; once the hand
		// has resolved, the participant balance includes any winnings
		if p := t.hand.Participant(playerID); p != nil {
			seat.Balance = p.Balance()
		}
	}

	t.seats[seat.Index] = nil

	logrus.WithFields(logrus.Fields{
		"table":  t.UUID,
		"player": playerID,
		"seat":   seat.Index,
	}).Debug("seat cleared")

	return seat, nil
}

// nextDealerSeat rotates the button to the next active seat, wrapping
func (t *Table) nextDealerSeat() int {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		idx := (t.dealerSeat + i) % n
		if idx < 0 {
			idx += n
		}

		if seat := t.seats[idx]; seat != nil && seat.Balance > 0 {
			return idx
		}
	}

	panic("no active seat for the dealer button")
}

// StartHand deals a new hand if enough seated players can fund one.
// A seed of 0 shuffles randomly; tests pass a seed for a deterministic deal
func (t *Table) StartHand(seed int64, now time.Time) error {
	if t.hand != nil {
		return ErrHandInProgress
	}

	if t.ActivePlayerCount() < t.opts.MinPlayers {
		return ErrNotEnoughPlayers
	}

	t.dealerSeat = t.nextDealerSeat()

	players := make([]holdem.SeatedPlayer, 0, len(t.seats))
	for _, seat := range t.seats {
		if seat == nil || seat.Balance <= 0 {
			continue
		}

		players = append(players, holdem.SeatedPlayer{
			PlayerID:  seat.PlayerID,
			SeatIndex: seat.Index,
			Balance:   seat.Balance,
		})
	}

	t.handCounter++
	hand, err := holdem.Start(holdem.Options{
		SmallBlind: t.opts.SmallBlind,
		BigBlind:   t.opts.BigBlind,
	}, players, t.dealerSeat, t.handCounter, seed, now)
	if err != nil {
		return err
	}

	t.hand = hand
	t.status = StatusPlaying

	logrus.WithFields(logrus.Fields{
		"table": t.UUID,
		"hand":  t.handCounter,
	}).Debug("hand started")

	return nil
}

// Act forwards a player decision to the running hand
func (t *Table) Act(playerID int64, action holdem.Action, now time.Time) error {
	if t.hand == nil || t.status != StatusPlaying {
		return ErrNoHandInProgress
	}

	if t.Seat(playerID) == nil {
		return ErrNotSeated
	}

	if err := t.hand.Act(playerID, action, now); err != nil {
		return err
	}

	if t.hand.IsOver() {
		t.status = StatusHandComplete
	}

	return nil
}

// FinishHand applies the completed hand's payouts to the seats and clears
// the hand. Seats that can no longer cover the big blind are cleared and
// returned so the caller can settle the chips back into player accounts
func (t *Table) FinishHand() ([]*holdem.Winner, []*Seat, error) {
	if t.hand == nil || !t.hand.IsOver() {
		return nil, nil, ErrNoHandInProgress
	}

	winners := t.hand.Winners()

	for _, p := range t.hand.Participants() {
		if seat := t.Seat(p.PlayerID()); seat != nil {
			seat.Balance = p.Balance()
		}
	}

	var busted []*Seat
	for i, seat := range t.seats {
		if seat != nil && seat.Balance < t.opts.BigBlind {
			busted = append(busted, seat)
			t.seats[i] = nil
		}
	}

	t.hand = nil
	t.status = StatusWaiting

	return winners, busted, nil
}
