package holdem

import (
	"holdemtables-server/pkg/deck"
)

// SeatedPlayer is the input a hand needs about one active seat
type SeatedPlayer struct {
	PlayerID  int64
	SeatIndex int
	Balance   int
}

// Participant is a player in a single hand
type Participant struct {
	playerID  int64
	seatIndex int
	balance   int

	cards deck.Hand

	folded bool
	allIn  bool

	// roundBet is the amount bet in the current betting round,
	// totalBet is the cumulative amount bet this hand
	roundBet int
	totalBet int
}

func newParticipant(sp SeatedPlayer) *Participant {
	return &Participant{
		playerID:  sp.PlayerID,
		seatIndex: sp.SeatIndex,
		balance:   sp.Balance,
		cards:     make(deck.Hand, 0, 2),
	}
}

// PlayerID returns the player identity
func (p *Participant) PlayerID() int64 {
	return p.playerID
}

// SeatIndex returns the table seat the participant occupies
func (p *Participant) SeatIndex() int {
	return p.seatIndex
}

// Balance returns the chips the participant has left
func (p *Participant) Balance() int {
	return p.balance
}

// HoleCards returns the participant's two private cards
func (p *Participant) HoleCards() deck.Hand {
	return p.cards
}

// Folded returns true if the participant folded
func (p *Participant) Folded() bool {
	return p.folded
}

// AllIn returns true if the participant has committed their entire balance
func (p *Participant) AllIn() bool {
	return p.allIn
}

// RoundBet returns the amount bet in the current betting round
func (p *Participant) RoundBet() int {
	return p.roundBet
}

// TotalBet returns the cumulative amount bet this hand
func (p *Participant) TotalBet() int {
	return p.totalBet
}

// canAct returns true if the participant still takes turns
func (p *Participant) canAct() bool {
	return !p.folded && !p.allIn
}

// newRound resets the per-round bet
func (p *Participant) newRound() {
	p.roundBet = 0
}
