package holdem

import (
	"time"

	"holdemtables-server/pkg/deck"
)

// SeatInfo is the public view of one participant
type SeatInfo struct {
	SeatIndex int   `json:"seatIndex"`
	PlayerID  int64 `json:"playerId"`
	Balance   int   `json:"balance"`
	Folded    bool  `json:"folded"`
	AllIn     bool  `json:"allIn"`
	RoundBet  int   `json:"roundBet"`
	TotalBet  int   `json:"totalBet"`
}

// State is the hand as seen by one querying player. Only that player's
// hole cards are included; everything else is public
type State struct {
	HandNumber    int64       `json:"handNumber"`
	Phase         Phase       `json:"phase"`
	Pot           int         `json:"pot"`
	CurrentBet    int         `json:"currentBet"`
	DealerSeat    int         `json:"dealerSeat"`
	Community     deck.Hand   `json:"community"`
	Seats         []*SeatInfo `json:"seats"`
	CurrentTurn   int64       `json:"currentTurn"`
	TurnStartedAt time.Time   `json:"turnStartedAt"`
	HoleCards     deck.Hand   `json:"holeCards,omitempty"`
	ValidActions  []Action    `json:"validActions,omitempty"`
	Winners       []*Winner   `json:"winners,omitempty"`
}

// State returns the hand from the perspective of the given player
func (h *Hand) State(playerID int64) *State {
	seats := make([]*SeatInfo, len(h.participants))
	for i, p := range h.participants {
		seats[i] = &SeatInfo{
			SeatIndex: p.seatIndex,
			PlayerID:  p.playerID,
			Balance:   p.balance,
			Folded:    p.folded,
			AllIn:     p.allIn,
			RoundBet:  p.roundBet,
			TotalBet:  p.totalBet,
		}
	}

	state := &State{
		HandNumber:    h.number,
		Phase:         h.phase,
		Pot:           h.pot,
		CurrentBet:    h.currentBet,
		DealerSeat:    h.DealerSeat(),
		Community:     h.community,
		Seats:         seats,
		CurrentTurn:   h.CurrentTurnID(),
		TurnStartedAt: h.turnStartedAt,
		ValidActions:  h.ValidActions(playerID),
		Winners:       h.winners,
	}

	if p := h.Participant(playerID); p != nil {
		state.HoleCards = p.cards
	}

	return state
}
