package poker

import "holdemtables-server/pkg/deck"

// byRankDesc sorts cards from the highest rank to the lowest.
// Suit breaks rank ties to keep the ordering stable for tests
type byRankDesc deck.Hand

func (b byRankDesc) Len() int {
	return len(b)
}

func (b byRankDesc) Less(i, j int) bool {
	if b[i].Rank != b[j].Rank {
		return b[i].Rank > b[j].Rank
	}

	return b[i].Suit < b[j].Suit
}

func (b byRankDesc) Swap(i, j int) {
	b[i], b[j] = b[j], b[i]
}
