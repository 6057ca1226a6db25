package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdemtables-server/pkg/deck"
	"holdemtables-server/pkg/poker"
)

// riggedHand builds a hand at the river with known cards so showdown
// outcomes are deterministic
func riggedHand(pot int, community string, holeCards ...string) *Hand {
	h := &Hand{
		options:    DefaultOptions(),
		number:     1,
		phase:      PhaseRiver,
		pot:        pot,
		community:  deck.CardsFromString(community),
		seatLookup: make(map[int64]int),
		results:    make(map[int64]*poker.Result),
	}

	for i, cards := range holeCards {
		p := newParticipant(SeatedPlayer{
			PlayerID:  int64(i + 1),
			SeatIndex: i,
		})
		p.cards = deck.CardsFromString(cards)

		h.participants = append(h.participants, p)
		h.seatLookup[p.playerID] = i
	}

	return h
}

// three nines beat a pair of queens and take the whole pot
func TestHand_resolveShowdown(t *testing.T) {
	a := assert.New(t)

	h := riggedHand(40, "2h,7d,9c,11s,13h", "12c,12d", "9s,9h")
	h.resolveShowdown()

	a.True(h.IsOver())

	winners := h.Winners()
	a.Equal(1, len(winners))
	a.Equal(int64(2), winners[0].PlayerID)
	a.Equal(40, winners[0].Amount)
	a.Equal(poker.ThreeOfAKind, winners[0].Result.Category)

	a.Equal(40, h.Participant(2).Balance())
	a.Equal(0, h.Participant(1).Balance())

	// both live hands are revealed
	a.Equal(2, len(h.Results()))
	a.Equal(poker.OnePair, h.Results()[1].Category)
}

func TestHand_resolveShowdown_splitPot(t *testing.T) {
	a := assert.New(t)

	// both players play the board; the odd chip goes to the first winner
	// left of the dealer
	h := riggedHand(101, "10s,11s,12s,13s,14s", "2c,3d", "2d,3h")
	h.resolveShowdown()

	winners := h.Winners()
	a.Equal(2, len(winners))
	a.Equal(int64(2), winners[0].PlayerID) // seat after the dealer first
	a.Equal(51, winners[0].Amount)
	a.Equal(int64(1), winners[1].PlayerID)
	a.Equal(50, winners[1].Amount)
	a.Equal(poker.RoyalFlush, winners[0].Result.Category)
}

func TestHand_resolveShowdown_foldedExcluded(t *testing.T) {
	a := assert.New(t)

	// the strongest hole cards folded earlier and must not win
	h := riggedHand(60, "2h,7d,9c,11s,13h", "14c,14d", "5s,5h", "12c,12d")
	h.participants[0].folded = true
	h.resolveShowdown()

	winners := h.Winners()
	a.Equal(1, len(winners))
	a.Equal(int64(3), winners[0].PlayerID)
	a.Equal(60, winners[0].Amount)

	_, folded := h.Results()[1]
	a.False(folded)
	a.Equal(2, len(h.Results()))
}

func TestHand_resolveShowdown_lastPlayerStanding(t *testing.T) {
	a := assert.New(t)

	h := riggedHand(25, "2h,7d,9c,11s,13h", "14c,14d", "5s,5h")
	h.participants[0].folded = true
	h.resolveShowdown()

	winners := h.Winners()
	a.Equal(1, len(winners))
	a.Equal(int64(2), winners[0].PlayerID)
	a.Equal(25, winners[0].Amount)
	a.Nil(winners[0].Result)
	a.Empty(h.Results())
}
