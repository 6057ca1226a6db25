package holdem

import (
	"github.com/sirupsen/logrus"

	"holdemtables-server/pkg/poker"
)

// Winner is one player's share of the pot
type Winner struct {
	PlayerID int64         `json:"playerId"`
	Amount   int           `json:"amount"`
	Result   *poker.Result `json:"result,omitempty"`
}

// awardUncontested pays the whole pot to the last player standing with no
// evaluation and no further streets
func (h *Hand) awardUncontested() {
	for _, p := range h.participants {
		if p.folded {
			continue
		}

		p.balance += h.pot
		h.winners = []*Winner{{
			PlayerID: p.playerID,
			Amount:   h.pot,
		}}

		logrus.WithFields(logrus.Fields{
			"hand":   h.number,
			"player": p.playerID,
			"amount": h.pot,
		}).Debug("pot awarded uncontested")

		h.phase = PhaseComplete
		return
	}

	panic("no live player to award the pot to")
}

// resolveShowdown evaluates every live player's best hand and splits the
// pot evenly among those tied for best. All contributions sit in a single
// merged pot; multi-level side pots are deliberately not computed. Chips
// left over from an uneven split go one at a time to the winners closest
// to the dealer's left.
func (h *Hand) resolveShowdown() {
	h.phase = PhaseShowdown

	live := make([]*Participant, 0, len(h.participants))
	n := len(h.participants)
	for i := 0; i < n; i++ {
		p := h.participants[(h.dealerPos+1+i)%n]
		if !p.folded {
			live = append(live, p)
		}
	}

	if len(live) == 1 {
		h.awardUncontested()
		return
	}

	var best *poker.Result
	for _, p := range live {
		result, err := poker.Evaluate(append(p.cards.Clone(), h.community...))
		if err != nil {
			// two hole cards plus five community cards is always evaluable
			panic(err)
		}

		h.results[p.playerID] = result
		if best == nil || result.Compare(best) > 0 {
			best = result
		}
	}

	winners := make([]*Participant, 0, len(live))
	for _, p := range live {
		if h.results[p.playerID].Compare(best) == 0 {
			winners = append(winners, p)
		}
	}

	share := h.pot / len(winners)
	remainder := h.pot % len(winners)

	h.winners = make([]*Winner, 0, len(winners))
	for i, p := range winners {
		amount := share
		if i < remainder {
			amount++
		}

		p.balance += amount
		h.winners = append(h.winners, &Winner{
			PlayerID: p.playerID,
			Amount:   amount,
			Result:   h.results[p.playerID],
		})

		logrus.WithFields(logrus.Fields{
			"hand":   h.number,
			"player": p.playerID,
			"amount": amount,
			"result": h.results[p.playerID].String(),
		}).Debug("pot awarded at showdown")
	}

	h.phase = PhaseComplete
}

// Results returns the evaluated hands of the showdown participants,
// keyed by player ID. The map is empty when the pot went uncontested
func (h *Hand) Results() map[int64]*poker.Result {
	return h.results
}
