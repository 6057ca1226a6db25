package room

import (
	"time"

	"holdemtables-server/pkg/holdem"
	"holdemtables-server/pkg/table"
)

// TableState is one player's view of a table. Hole cards belonging to
// other players are never included
type TableState struct {
	UUID   string        `json:"uuid"`
	Name   string        `json:"name"`
	Status table.Status  `json:"status"`
	Seats  []*table.Seat `json:"seats"`
	Hand   *holdem.State `json:"hand,omitempty"`

	// TurnEndsAt is when the player on the clock will be folded
	// automatically; nil while no turn is open
	TurnEndsAt *time.Time `json:"turnEndsAt,omitempty"`
}

func tableState(t *table.Table, playerID int64, turnTimeout time.Duration) *TableState {
	state := &TableState{
		UUID:   t.UUID,
		Name:   t.Name,
		Status: t.Status(),
		Seats:  t.Seats(),
	}

	if hand := t.Hand(); hand != nil {
		state.Hand = hand.State(playerID)

		if !hand.IsOver() && hand.CurrentTurnID() != 0 {
			endsAt := hand.TurnStartedAt().Add(turnTimeout)
			state.TurnEndsAt = &endsAt
		}
	}

	return state
}
