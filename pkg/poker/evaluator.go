package poker

import (
	"errors"
	"sort"

	"holdemtables-server/pkg/deck"
)

// Evaluate computes the best five-card hand from five, six, or seven cards
// (two hole cards plus up to five community cards).
func Evaluate(cards []*deck.Card) (*Result, error) {
	if len(cards) < 5 {
		return nil, errors.New("evaluation requires at least five cards")
	}

	if len(cards) > 7 {
		return nil, errors.New("evaluation supports at most seven cards")
	}

	sorted := make(deck.Hand, len(cards))
	copy(sorted, cards)
	sort.Sort(byRankDesc(sorted))

	e := &evaluator{cards: sorted}
	e.analyze()

	return e.result(), nil
}

type evaluator struct {
	// cards are sorted by descending rank
	cards deck.Hand

	bySuit map[deck.Suit]deck.Hand
	byRank map[int]deck.Hand

	// group ranks in descending order
	quads []int
	trips []int
	pairs []int
}

func (e *evaluator) analyze() {
	e.bySuit = make(map[deck.Suit]deck.Hand)
	e.byRank = make(map[int]deck.Hand)

	for _, card := range e.cards {
		e.bySuit[card.Suit] = append(e.bySuit[card.Suit], card)
		e.byRank[card.Rank] = append(e.byRank[card.Rank], card)
	}

	for rank, cards := range e.byRank {
		switch len(cards) {
		case 4:
			e.quads = append(e.quads, rank)
		case 3:
			e.trips = append(e.trips, rank)
		case 2:
			e.pairs = append(e.pairs, rank)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(e.quads)))
	sort.Sort(sort.Reverse(sort.IntSlice(e.trips)))
	sort.Sort(sort.Reverse(sort.IntSlice(e.pairs)))
}

// result walks the categories in descending rarity and returns the first hit.
// highCard always hits, so result never returns nil.
func (e *evaluator) result() *Result {
	checks := []func() *Result{
		e.straightFlush,
		e.fourOfAKind,
		e.fullHouse,
		e.flush,
		e.straight,
		e.threeOfAKind,
		e.twoPair,
		e.onePair,
		e.highCard,
	}

	for _, check := range checks {
		if r := check(); r != nil {
			return r
		}
	}

	panic("no category matched")
}

// findStraight returns the highest five-card run within the given cards.
// The ace counts both high and low, so the wheel (A-2-3-4-5) is found as a
// five-high straight with a tie-break rank of 1 for the ace.
func findStraight(cards deck.Hand) (deck.Hand, []int, bool) {
	byRank := make(map[int]*deck.Card)
	for _, card := range cards {
		if _, ok := byRank[card.Rank]; !ok {
			byRank[card.Rank] = card
		}

		if card.Rank == deck.Ace {
			byRank[deck.LowAce] = card
		}
	}

	for high := deck.Ace; high >= 5; high-- {
		run := make(deck.Hand, 0, 5)
		ranks := make([]int, 0, 5)

		for rank := high; rank > high-5; rank-- {
			card, ok := byRank[rank]
			if !ok {
				run = nil
				break
			}

			run = append(run, card)
			ranks = append(ranks, rank)
		}

		if run != nil {
			return run, ranks, true
		}
	}

	return nil, nil, false
}

func (e *evaluator) straightFlush() *Result {
	for _, suit := range deck.Suits {
		suited := e.bySuit[suit]
		if len(suited) < 5 {
			continue
		}

		run, ranks, ok := findStraight(suited)
		if !ok {
			continue
		}

		category := StraightFlush
		if ranks[0] == deck.Ace {
			category = RoyalFlush
		}

		return &Result{
			Category: category,
			Cards:    run,
			ranks:    ranks,
		}
	}

	return nil
}

func (e *evaluator) fourOfAKind() *Result {
	if len(e.quads) == 0 {
		return nil
	}

	rank := e.quads[0]
	kickers := e.kickers(1, rank)

	return &Result{
		Category: FourOfAKind,
		Cards:    append(e.byRank[rank].Clone(), kickers...),
		Kickers:  ranksOf(kickers),
		ranks:    []int{rank, rank, rank, rank, kickers[0].Rank},
	}
}

func (e *evaluator) fullHouse() *Result {
	if len(e.trips) == 0 {
		return nil
	}

	over := e.trips[0]

	pair := 0
	if len(e.pairs) > 0 {
		pair = e.pairs[0]
	}
	// with seven cards there can be two sets of trips; the lower set makes
	// the better pair when it outranks any natural pair
	if len(e.trips) > 1 && e.trips[1] > pair {
		pair = e.trips[1]
	}

	if pair == 0 {
		return nil
	}

	cards := e.byRank[over][0:3].Clone()
	cards = append(cards, e.byRank[pair][0:2]...)

	return &Result{
		Category: FullHouse,
		Cards:    cards,
		ranks:    []int{over, over, over, pair, pair},
	}
}

func (e *evaluator) flush() *Result {
	for _, suit := range deck.Suits {
		suited := e.bySuit[suit]
		if len(suited) < 5 {
			continue
		}

		cards := suited[0:5].Clone()
		ranks := ranksOf(cards)

		return &Result{
			Category: Flush,
			Cards:    cards,
			Kickers:  ranks[1:],
			ranks:    ranks,
		}
	}

	return nil
}

func (e *evaluator) straight() *Result {
	run, ranks, ok := findStraight(e.cards)
	if !ok {
		return nil
	}

	return &Result{
		Category: Straight,
		Cards:    run,
		ranks:    ranks,
	}
}

func (e *evaluator) threeOfAKind() *Result {
	if len(e.trips) == 0 {
		return nil
	}

	rank := e.trips[0]
	kickers := e.kickers(2, rank)

	return &Result{
		Category: ThreeOfAKind,
		Cards:    append(e.byRank[rank].Clone(), kickers...),
		Kickers:  ranksOf(kickers),
		ranks:    append([]int{rank, rank, rank}, ranksOf(kickers)...),
	}
}

func (e *evaluator) twoPair() *Result {
	if len(e.pairs) < 2 {
		return nil
	}

	high, low := e.pairs[0], e.pairs[1]
	kickers := e.kickers(1, high, low)

	cards := e.byRank[high].Clone()
	cards = append(cards, e.byRank[low]...)
	cards = append(cards, kickers...)

	return &Result{
		Category: TwoPair,
		Cards:    cards,
		Kickers:  ranksOf(kickers),
		ranks:    []int{high, high, low, low, kickers[0].Rank},
	}
}

func (e *evaluator) onePair() *Result {
	if len(e.pairs) == 0 {
		return nil
	}

	rank := e.pairs[0]
	kickers := e.kickers(3, rank)

	return &Result{
		Category: OnePair,
		Cards:    append(e.byRank[rank].Clone(), kickers...),
		Kickers:  ranksOf(kickers),
		ranks:    append([]int{rank, rank}, ranksOf(kickers)...),
	}
}

func (e *evaluator) highCard() *Result {
	cards := e.cards[0:5].Clone()
	ranks := ranksOf(cards)

	return &Result{
		Category: HighCard,
		Cards:    cards,
		Kickers:  ranks[1:],
		ranks:    ranks,
	}
}

// kickers returns the best n cards whose ranks are not excluded
func (e *evaluator) kickers(n int, exclude ...int) deck.Hand {
	excluded := make(map[int]bool, len(exclude))
	for _, rank := range exclude {
		excluded[rank] = true
	}

	kickers := make(deck.Hand, 0, n)
	for _, card := range e.cards {
		if excluded[card.Rank] {
			continue
		}

		kickers = append(kickers, card)
		if len(kickers) == n {
			break
		}
	}

	return kickers
}

func ranksOf(cards deck.Hand) []int {
	ranks := make([]int, len(cards))
	for i, card := range cards {
		ranks[i] = card.Rank
	}

	return ranks
}
