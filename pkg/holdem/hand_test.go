package holdem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"holdemtables-server/pkg/deck"
)

var testTime = time.Date(2022, time.March, 5, 20, 0, 0, 0, time.UTC)

// startTestHand seats players with the given balances at seats 0..n-1 with
// player IDs 1..n
func startTestHand(t *testing.T, balances []int, dealerSeat int) *Hand {
	t.Helper()

	players := make([]SeatedPlayer, len(balances))
	for i, balance := range balances {
		players[i] = SeatedPlayer{
			PlayerID:  int64(i + 1),
			SeatIndex: i,
			Balance:   balance,
		}
	}

	h, err := Start(DefaultOptions(), players, dealerSeat, 1, 1, testTime)
	assert.NoError(t, err)
	assert.NotNil(t, h)

	return h
}

func TestStart_validation(t *testing.T) {
	a := assert.New(t)

	h, err := Start(DefaultOptions(), []SeatedPlayer{{PlayerID: 1, SeatIndex: 0, Balance: 100}}, 0, 1, 1, testTime)
	a.Nil(h)
	a.EqualError(err, "a hand requires at least two players")

	h, err = Start(Options{SmallBlind: 0, BigBlind: 2}, nil, 0, 1, 1, testTime)
	a.Nil(h)
	a.EqualError(err, "small blind must be > 0")

	h, err = Start(Options{SmallBlind: 2, BigBlind: 1}, nil, 0, 1, 1, testTime)
	a.Nil(h)
	a.EqualError(err, "big blind must be >= small blind")

	players := []SeatedPlayer{
		{PlayerID: 1, SeatIndex: 0, Balance: 100},
		{PlayerID: 2, SeatIndex: 1, Balance: 100},
	}

	h, err = Start(DefaultOptions(), players, 5, 1, 1, testTime)
	a.Nil(h)
	a.EqualError(err, "dealer seat is not active")
}

func TestStart_blindsAndDeal(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{100, 100}, 0)

	// dealer is seat 0, so seat 1 posts the small blind and seat 0 the big
	a.Equal(PhasePreFlop, h.Phase())
	a.Equal(3, h.Pot())
	a.Equal(2, h.CurrentBet())
	a.Equal(0, h.DealerSeat())
	a.Equal(int64(0), h.LastAggressorID())

	sb := h.Participant(2)
	bb := h.Participant(1)
	a.Equal(1, sb.RoundBet())
	a.Equal(99, sb.Balance())
	a.Equal(2, bb.RoundBet())
	a.Equal(98, bb.Balance())

	// everyone has two private cards, none of them shared
	for _, p := range h.Participants() {
		a.Equal(2, len(p.HoleCards()))
	}
	a.Empty(h.Community())

	// pre-flop action starts at the seat after the big blind
	a.Equal(int64(2), h.CurrentTurnID())
	a.Equal(testTime, h.TurnStartedAt())
}

// the small blind calls one more, the big blind checks, and the flop comes
func TestHand_headsUpToFlop(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{100, 100}, 0)

	a.NoError(h.Act(2, Call, testTime))
	a.Equal(4, h.Pot())

	a.NoError(h.Act(1, Check, testTime))

	a.Equal(PhaseFlop, h.Phase())
	a.Equal(3, len(h.Community()))
	a.Equal(0, h.CurrentBet())
	a.Equal(0, h.Participant(1).RoundBet())
	a.Equal(0, h.Participant(2).RoundBet())
	a.Equal(4, h.Pot())

	// post-flop action starts at the first live seat after the dealer
	a.Equal(int64(2), h.CurrentTurnID())
}

func TestHand_checksCloseRound(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{100, 100, 100}, 0)

	// seat 1 posts small, seat 2 posts big, seat 0 acts first
	a.Equal(int64(1), h.CurrentTurnID())
	a.NoError(h.Act(1, Call, testTime))
	a.NoError(h.Act(2, Call, testTime))
	a.NoError(h.Act(3, Check, testTime))

	a.Equal(PhaseFlop, h.Phase())
	a.Equal(6, h.Pot())
	a.Equal(int64(2), h.CurrentTurnID())

	// three checks with no bet close the round without a raise
	a.NoError(h.Act(2, Check, testTime))
	a.NoError(h.Act(3, Check, testTime))
	a.NoError(h.Act(1, Check, testTime))

	a.Equal(PhaseTurn, h.Phase())
	a.Equal(4, len(h.Community()))
}

// a raise must bring the action back around to everyone who already acted
func TestHand_raiseReopensAction(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{100, 100}, 0)
	a.NoError(h.Act(2, Call, testTime))
	a.NoError(h.Act(1, Check, testTime))
	a.Equal(PhaseFlop, h.Phase())

	// player 2 checks, player 1 raises; the round must not close until
	// player 2 responds
	a.NoError(h.Act(2, Check, testTime))
	a.NoError(h.Act(1, Raise(10), testTime))

	a.Equal(PhaseFlop, h.Phase())
	a.Equal(10, h.CurrentBet())
	a.Equal(int64(1), h.LastAggressorID())
	a.Equal(int64(2), h.CurrentTurnID())

	a.NoError(h.Act(2, Call, testTime))
	a.Equal(PhaseTurn, h.Phase())
	a.Equal(24, h.Pot())
	a.Equal(int64(0), h.LastAggressorID())
}

func TestHand_actionValidation(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{100, 100, 100}, 0)

	// out of turn
	a.Equal(ErrNotYourTurn, h.Act(2, Call, testTime))

	// unknown player
	a.Equal(ErrPlayerNotInHand, h.Act(99, Call, testTime))

	// cannot check facing a bet
	a.EqualError(h.Act(1, Check, testTime), "you cannot check with an active bet of ${2}")

	// a raise must exceed the current bet
	a.EqualError(h.Act(1, Raise(2), testTime), "your raise to ${2} must be greater than the current bet of ${2}")

	// rejected actions change nothing
	a.Equal(3, h.Pot())
	a.Equal(int64(1), h.CurrentTurnID())

	a.NoError(h.Act(1, Call, testTime))
	a.NoError(h.Act(2, Call, testTime))

	// the big blind cannot call its own bet
	a.EqualError(h.Act(3, Call, testTime), "you cannot call without an active bet")
	a.NoError(h.Act(3, Check, testTime))
	a.Equal(PhaseFlop, h.Phase())
}

func TestHand_foldEndsHandImmediately(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{100, 100}, 0)

	a.NoError(h.Act(2, Fold, testTime))

	a.True(h.IsOver())
	a.Equal(PhaseComplete, h.Phase())
	a.Empty(h.Community())
	a.Empty(h.Results())

	winners := h.Winners()
	a.Equal(1, len(winners))
	a.Equal(int64(1), winners[0].PlayerID)
	a.Equal(3, winners[0].Amount)
	a.Nil(winners[0].Result)

	// the winner's balance includes their own blind back
	a.Equal(101, h.Participant(1).Balance())
	a.Equal(99, h.Participant(2).Balance())

	a.Equal(ErrHandOver, h.Act(1, Check, testTime))
	a.Equal(int64(0), h.CurrentTurnID())
}

// a short stack facing a big bet only ever transfers what they have
func TestHand_callAllInForLess(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{100, 5}, 1)

	// dealer is seat 1, so player 1 posts the small blind and player 2
	// (the short stack) posts the big blind
	a.Equal(int64(1), h.CurrentTurnID())
	a.NoError(h.Act(1, Raise(20), testTime))
	a.Equal(20, h.CurrentBet())

	a.NoError(h.Act(2, Call, testTime))

	p2 := h.Participant(2)
	a.True(p2.AllIn())
	a.Equal(5, p2.TotalBet())
	a.Equal(0, p2.Balance())

	// nobody left to act: the board runs out and the hand resolves
	a.True(h.IsOver())
	a.Equal(5, len(h.Community()))
	a.Equal(25, h.Pot())

	paid := 0
	for _, w := range h.Winners() {
		paid += w.Amount
	}
	a.Equal(25, paid)
}

func TestHand_allInBlindsRunOut(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{2, 2}, 0)

	a.True(h.Participant(1).AllIn()) // big blind took the whole stack

	a.NoError(h.Act(2, Call, testTime))

	a.True(h.IsOver())
	a.Equal(5, len(h.Community()))
	a.Equal(4, h.Pot())

	total := 0
	for _, p := range h.Participants() {
		total += p.Balance()
	}
	a.Equal(4, total)
}

func TestHand_noDuplicateCards(t *testing.T) {
	a := assert.New(t)

	for seed := int64(1); seed <= 25; seed++ {
		players := []SeatedPlayer{
			{PlayerID: 1, SeatIndex: 0, Balance: 100},
			{PlayerID: 2, SeatIndex: 2, Balance: 100},
			{PlayerID: 3, SeatIndex: 5, Balance: 100},
			{PlayerID: 4, SeatIndex: 8, Balance: 100},
		}

		h, err := Start(DefaultOptions(), players, 2, 1, seed, testTime)
		a.NoError(err)

		// check around until the hand resolves
		for !h.IsOver() {
			id := h.CurrentTurnID()
			if h.Participant(id).RoundBet() == h.CurrentBet() {
				a.NoError(h.Act(id, Check, testTime))
			} else {
				a.NoError(h.Act(id, Call, testTime))
			}
		}

		seen := make(map[deck.Card]bool)
		for _, p := range h.Participants() {
			for _, card := range p.HoleCards() {
				a.False(seen[*card], "duplicate card %s (seed %d)", card, seed)
				seen[*card] = true
			}
		}
		for _, card := range h.Community() {
			a.False(seen[*card], "duplicate card %s (seed %d)", card, seed)
			seen[*card] = true
		}
		a.Equal(13, len(seen))

		// chips are conserved
		total := 0
		for _, p := range h.Participants() {
			total += p.Balance()
		}
		a.Equal(400, total)
	}
}

func TestHand_TurnExpired(t *testing.T) {
	a := assert.New(t)
	timeout := time.Second * 30

	h := startTestHand(t, []int{100, 100}, 0)

	a.False(h.TurnExpired(testTime, timeout))
	a.False(h.TurnExpired(testTime.Add(timeout-time.Nanosecond), timeout))
	a.True(h.TurnExpired(testTime.Add(timeout), timeout))

	// an expired turn is resolved by the caller as a fold
	a.NoError(h.Fold(h.CurrentTurnID(), testTime.Add(timeout)))
	a.True(h.IsOver())
	a.False(h.TurnExpired(testTime.Add(time.Hour), timeout))
}

func TestHand_ValidActions(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{100, 100}, 0)

	a.Nil(h.ValidActions(1)) // not their turn

	actions := h.ValidActions(2)
	a.Equal(3, len(actions))
	a.Equal(Fold, actions[0])
	a.Equal(Action{Type: ActionCall, Amount: 1}, actions[1])
	a.Equal(Raise(4), actions[2])

	a.NoError(h.Act(2, Call, testTime))

	actions = h.ValidActions(1)
	a.Equal(3, len(actions))
	a.Equal(Fold, actions[0])
	a.Equal(Check, actions[1])
	a.Equal(Raise(4), actions[2])
}

func TestHand_Withdraw(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{100, 100, 100}, 0)

	// player 3 is not on the clock but leaves the table
	a.NoError(h.Withdraw(3, testTime))
	a.True(h.Participant(3).Folded())
	a.Equal(int64(1), h.CurrentTurnID())

	a.NoError(h.Act(1, Call, testTime))
	a.Equal(int64(2), h.CurrentTurnID())
	a.NoError(h.Act(2, Call, testTime))

	// the betting round closed without the withdrawn player acting
	a.Equal(PhaseFlop, h.Phase())
	a.Equal(int64(2), h.CurrentTurnID())

	// withdrawing the player on the clock advances the turn
	a.NoError(h.Withdraw(2, testTime))
	a.True(h.IsOver())
	a.Equal(int64(1), h.Winners()[0].PlayerID)

	a.Equal(ErrPlayerNotInHand, startTestHand(t, []int{100, 100}, 0).Withdraw(99, testTime))
}

func TestHand_State(t *testing.T) {
	a := assert.New(t)

	h := startTestHand(t, []int{100, 100}, 0)

	state := h.State(2)
	a.Equal(int64(1), state.HandNumber)
	a.Equal(PhasePreFlop, state.Phase)
	a.Equal(3, state.Pot)
	a.Equal(2, state.CurrentBet)
	a.Equal(0, state.DealerSeat)
	a.Equal(int64(2), state.CurrentTurn)
	a.Equal(testTime, state.TurnStartedAt)
	a.Equal(2, len(state.HoleCards))
	a.Equal(3, len(state.ValidActions))
	a.Equal(2, len(state.Seats))
	a.Equal(1, state.Seats[1].RoundBet)

	// a spectator sees no hole cards and no actions
	spectator := h.State(99)
	a.Empty(spectator.HoleCards)
	a.Empty(spectator.ValidActions)
}
