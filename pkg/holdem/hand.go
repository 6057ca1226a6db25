package holdem

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"holdemtables-server/pkg/deck"
	"holdemtables-server/pkg/poker"
)

// Hand is a single hand of no-limit Texas Hold'em. It is a deterministic
// state machine: every accepted action fully applies or the hand is left
// untouched. The hand performs no timing of its own; the caller compares
// TurnStartedAt against its timeout and submits the fold itself.
//
// A Hand is not safe for concurrent use. The surrounding layer must
// guarantee at most one writer at a time.
type Hand struct {
	options   Options
	number    int64
	phase     Phase
	deck      *deck.Deck
	community deck.Hand

	pot        int
	currentBet int

	// participants are the active seats in ascending seat order.
	// seatLookup maps a player ID to their index in participants
	participants []*Participant
	seatLookup   map[int64]int

	// dealerPos, actionStartIndex and actionAtIndex are indexes into
	// participants. The betting round is over once actionAtIndex walks
	// past every participant; a raise restarts the walk at the raiser
	dealerPos        int
	actionStartIndex int
	actionAtIndex    int

	// lastAggressorID is 0 when nobody has bet or raised this round
	lastAggressorID int64

	turnStartedAt time.Time

	winners []*Winner
	results map[int64]*poker.Result
}

// Start begins a new hand: it shuffles a fresh deck, posts the blinds,
// deals two hole cards to every player, and puts the seat after the big
// blind on the clock.
//
// players must be the seats with a positive balance, in ascending seat
// order, and must include the dealer. A seed of 0 shuffles randomly;
// tests pass an explicit seed for a deterministic deal.
func Start(opts Options, players []SeatedPlayer, dealerSeat int, number int64, seed int64, now time.Time) (*Hand, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if len(players) < 2 {
		return nil, errors.New("a hand requires at least two players")
	}

	d := deck.New()
	d.Shuffle(seed)

	h := &Hand{
		options:      opts,
		number:       number,
		phase:        PhasePreFlop,
		deck:         d,
		community:    make(deck.Hand, 0, 5),
		participants: make([]*Participant, 0, len(players)),
		seatLookup:   make(map[int64]int, len(players)),
		dealerPos:    -1,
		results:      make(map[int64]*poker.Result),
	}

	for i, sp := range players {
		if sp.Balance <= 0 {
			return nil, fmt.Errorf("player %d has no balance", sp.PlayerID)
		}

		h.participants = append(h.participants, newParticipant(sp))
		h.seatLookup[sp.PlayerID] = i

		if sp.SeatIndex == dealerSeat {
			h.dealerPos = i
		}
	}

	if h.dealerPos < 0 {
		return nil, errors.New("dealer seat is not active")
	}

	n := len(h.participants)
	smallBlindPos := (h.dealerPos + 1) % n
	bigBlindPos := (smallBlindPos + 1) % n

	h.commit(h.participants[smallBlindPos], opts.SmallBlind)
	h.commit(h.participants[bigBlindPos], opts.BigBlind)
	h.currentBet = opts.BigBlind

	h.dealHoleCards()

	// pre-flop action starts at the seat after the big blind
	h.actionStartIndex = (bigBlindPos + 1) % n
	h.actionAtIndex = 0
	h.skipToActionable(now)

	logrus.WithFields(logrus.Fields{
		"hand":    number,
		"players": n,
		"pot":     h.pot,
	}).Debug("hand started")

	return h, nil
}

func (h *Hand) dealHoleCards() {
	for i := 0; i < 2; i++ {
		for j := range h.participants {
			p := h.participants[(h.dealerPos+1+j)%len(h.participants)]

			card, err := h.deck.Draw()
			if err != nil {
				// a fresh 52-card deck always covers 9×2 hole cards
				panic(err)
			}

			p.cards.AddCard(card)
		}
	}
}

// commit moves up to amount - roundBet chips from the participant into the
// pot, flagging an all-in when the balance runs out
func (h *Hand) commit(p *Participant, amount int) int {
	transfer := amount - p.roundBet
	if transfer >= p.balance {
		transfer = p.balance
		p.allIn = true
	}

	p.balance -= transfer
	p.roundBet += transfer
	p.totalBet += transfer
	h.pot += transfer

	return transfer
}

// Act applies one player decision. Actions are all-or-nothing: an error
// means no state changed.
func (h *Hand) Act(playerID int64, action Action, now time.Time) error {
	if !h.phase.IsBettingRound() {
		return ErrHandOver
	}

	idx, ok := h.seatLookup[playerID]
	if !ok {
		return ErrPlayerNotInHand
	}

	current := h.currentTurn()
	if current == nil || h.participants[idx] != current {
		return ErrNotYourTurn
	}

	p := current

	switch action.Type {
	case ActionFold:
		p.folded = true

		if h.livePlayerCount() == 1 {
			h.awardUncontested()
			return nil
		}

	case ActionCheck:
		if p.roundBet != h.currentBet {
			return newGameError("you cannot check with an active bet of ${%d}", h.currentBet)
		}

	case ActionCall:
		if h.currentBet <= p.roundBet {
			return GameError("you cannot call without an active bet")
		}

		h.commit(p, h.currentBet)

	case ActionRaise:
		if action.Amount <= h.currentBet {
			return newGameError("your raise to ${%d} must be greater than the current bet of ${%d}", action.Amount, h.currentBet)
		}

		h.commit(p, action.Amount)

		// a short all-in may not reach the target; only a bet that
		// exceeds the table bet reopens the action
		if p.roundBet > h.currentBet {
			h.currentBet = p.roundBet
			h.lastAggressorID = p.playerID
			h.actionStartIndex = idx
			h.actionAtIndex = 0
		}

	default:
		return fmt.Errorf("unknown action type: %d", int(action.Type))
	}

	h.completeTurn(now)
	return nil
}

// completeTurn advances to the next participant who can act, or closes the
// betting round when the action has walked all the way around
func (h *Hand) completeTurn(now time.Time) {
	for h.actionAtIndex++; h.actionAtIndex < len(h.participants); h.actionAtIndex++ {
		if h.participants[h.ringIndex()].canAct() {
			h.turnStartedAt = now
			return
		}
	}

	h.finishBettingRound(now)
}

// skipToActionable is used at round start to put the first participant who
// can act on the clock, closing the round immediately if nobody can
func (h *Hand) skipToActionable(now time.Time) {
	for ; h.actionAtIndex < len(h.participants); h.actionAtIndex++ {
		if h.participants[h.ringIndex()].canAct() {
			h.turnStartedAt = now
			return
		}
	}

	h.finishBettingRound(now)
}

// finishBettingRound reveals the next street, or resolves the showdown
// after the river. When one or zero players can still act, the remaining
// streets run out immediately.
func (h *Hand) finishBettingRound(now time.Time) {
	for {
		if h.phase == PhaseRiver {
			h.resolveShowdown()
			return
		}

		h.phase++

		n := 1
		if h.phase == PhaseFlop {
			n = 3
		}

		cards, err := h.deck.Deal(n)
		if err != nil {
			// 23 cards is the deepest a hand can go into a 52-card deck
			panic(err)
		}

		h.community = append(h.community, cards...)
		h.newRound(now)

		if h.canActCount() > 1 {
			return
		}
	}
}

// newRound zeroes the round bets and puts the first live seat after the
// dealer on the clock
func (h *Hand) newRound(now time.Time) {
	for _, p := range h.participants {
		p.newRound()
	}

	h.currentBet = 0
	h.lastAggressorID = 0
	h.actionAtIndex = 0
	h.turnStartedAt = now

	n := len(h.participants)
	h.actionStartIndex = (h.dealerPos + 1) % n
	for i := 0; i < n; i++ {
		idx := (h.dealerPos + 1 + i) % n
		if h.participants[idx].canAct() {
			h.actionStartIndex = idx
			return
		}
	}
}

func (h *Hand) ringIndex() int {
	return (h.actionStartIndex + h.actionAtIndex) % len(h.participants)
}

func (h *Hand) currentTurn() *Participant {
	if !h.phase.IsBettingRound() || h.actionAtIndex >= len(h.participants) {
		return nil
	}

	return h.participants[h.ringIndex()]
}

// CurrentTurnID returns the player whose turn it is, or 0 if betting is closed
func (h *Hand) CurrentTurnID() int64 {
	if p := h.currentTurn(); p != nil {
		return p.playerID
	}

	return 0
}

// TurnStartedAt returns when the current turn began
func (h *Hand) TurnStartedAt() time.Time {
	return h.turnStartedAt
}

// TurnExpired returns true if the player on the clock has run out of time.
// The hand keeps no timer of its own; the caller supplies now and the
// timeout, and applies the fold through Act
func (h *Hand) TurnExpired(now time.Time, timeout time.Duration) bool {
	if h.currentTurn() == nil {
		return false
	}

	return now.Sub(h.turnStartedAt) >= timeout
}

func (h *Hand) livePlayerCount() int {
	count := 0
	for _, p := range h.participants {
		if !p.folded {
			count++
		}
	}

	return count
}

func (h *Hand) canActCount() int {
	count := 0
	for _, p := range h.participants {
		if p.canAct() {
			count++
		}
	}

	return count
}

// ValidActions returns the actions the player may currently take, or nil
// if it is not their turn
func (h *Hand) ValidActions(playerID int64) []Action {
	p := h.currentTurn()
	if p == nil || p.playerID != playerID {
		return nil
	}

	actions := []Action{Fold}

	if p.roundBet == h.currentBet {
		actions = append(actions, Check)
	} else {
		callAmount := h.currentBet - p.roundBet
		if callAmount > p.balance {
			callAmount = p.balance
		}

		actions = append(actions, Action{Type: ActionCall, Amount: callAmount})
	}

	if p.balance > h.currentBet-p.roundBet {
		minRaise := h.currentBet + h.options.BigBlind
		if max := p.roundBet + p.balance; minRaise > max {
			minRaise = max
		}

		actions = append(actions, Raise(minRaise))
	}

	return actions
}

// Phase returns the current phase
func (h *Hand) Phase() Phase {
	return h.phase
}

// Pot returns the total amount wagered this hand
func (h *Hand) Pot() int {
	return h.pot
}

// CurrentBet returns the bet to match for the current round
func (h *Hand) CurrentBet() int {
	return h.currentBet
}

// Community returns the revealed community cards
func (h *Hand) Community() deck.Hand {
	return h.community
}

// Number returns the hand number
func (h *Hand) Number() int64 {
	return h.number
}

// DealerSeat returns the seat index of the dealer button
func (h *Hand) DealerSeat() int {
	return h.participants[h.dealerPos].seatIndex
}

// LastAggressorID returns who bet or raised last this round, or 0
func (h *Hand) LastAggressorID() int64 {
	return h.lastAggressorID
}

// IsOver returns true once the pot has been awarded
func (h *Hand) IsOver() bool {
	return h.phase == PhaseComplete
}

// Participants returns the players in the hand in seat order
func (h *Hand) Participants() []*Participant {
	return h.participants
}

// Participant returns the participant for the player, or nil
func (h *Hand) Participant(playerID int64) *Participant {
	if idx, ok := h.seatLookup[playerID]; ok {
		return h.participants[idx]
	}

	return nil
}

// Winners returns the hand's winners once it is over
func (h *Hand) Winners() []*Winner {
	return h.winners
}

// Fold submits a fold on behalf of the player currently on the clock.
// This is how the caller applies a turn timeout
func (h *Hand) Fold(playerID int64, now time.Time) error {
	return h.Act(playerID, Fold, now)
}

// Withdraw folds a player regardless of whose turn it is. Used when a
// player leaves the table mid-hand
func (h *Hand) Withdraw(playerID int64, now time.Time) error {
	if !h.phase.IsBettingRound() {
		return nil
	}

	p := h.Participant(playerID)
	if p == nil {
		return ErrPlayerNotInHand
	}

	if p.folded {
		return nil
	}

	wasTheirTurn := h.currentTurn() == p
	p.folded = true

	if h.livePlayerCount() == 1 {
		h.awardUncontested()
		return nil
	}

	if wasTheirTurn {
		h.completeTurn(now)
	}

	return nil
}
