package poker

import (
	"fmt"

	"holdemtables-server/pkg/deck"
)

// Result is the best five-card hand that can be made from a set of cards.
// Cards holds the exact five cards with the category-defining cards first,
// i.e., a full house is trips, then the pair. Kickers holds the descending
// ranks of the cards that do not define the category.
type Result struct {
	Category Category  `json:"category"`
	Cards    deck.Hand `json:"cards"`

	Kickers []int `json:"kickers"`

	// ranks is the positional tie-break vector. It usually mirrors the
	// card ranks in Cards, except the wheel where the ace counts as 1
	ranks []int
}

func (r *Result) String() string {
	return fmt.Sprintf("%s (%s)", r.Category, r.Cards)
}

// Compare orders two results.
// Returns >0 if r beats o, <0 if o beats r, and 0 for an exact tie (split pot).
// A higher category always wins; within a category the tie-break ranks are
// compared positionally with the category-defining ranks first.
func (r *Result) Compare(o *Result) int {
	if r.Category != o.Category {
		return int(r.Category) - int(o.Category)
	}

	for i, rank := range r.ranks {
		if i >= len(o.ranks) {
			break
		}

		if rank != o.ranks[i] {
			return rank - o.ranks[i]
		}
	}

	return 0
}
