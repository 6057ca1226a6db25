package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
)

// Suits lists the four suits in canonical deck order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Card is an individual playing card.
// Ranks run from 2 through Ace at 14; a straight evaluator may treat the
// ace as LowAce when it anchors a wheel
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// face cards
const (
	Jack   = 11
	Queen  = 12
	King   = 13
	Ace    = 14
	LowAce = 1
)

var rankSymbols = map[int]string{
	Jack:  "J",
	Queen: "Q",
	King:  "K",
	Ace:   "A",
}

var suitSymbols = map[Suit]string{
	Clubs:    "♣",
	Diamonds: "♢",
	Hearts:   "♡",
	Spades:   "♠",
}

func (c *Card) String() string {
	rank, ok := rankSymbols[c.Rank]
	if !ok {
		rank = strconv.Itoa(c.Rank)
	}

	suit, ok := suitSymbols[c.Suit]
	if !ok {
		panic("unknown suit")
	}

	return rank + suit
}

// Equal returns true if the cards match in both suit and rank
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

var cardRx = regexp.MustCompile(`(?i)^([0-9]|1[0-4])([cdhs])\z`)

var suitsByLetter = map[string]Suit{
	"c": Clubs,
	"d": Diamonds,
	"h": Hearts,
	"s": Spades,
}

// CardFromString returns a Card from a string like "14s".
// The format is <rank><suit> where rank is 2 through 14 and suit is one
// of [cdhs]. A malformed string panics; an empty string returns nil
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	suit, ok := suitsByLetter[strings.ToLower(match[2])]
	if !ok {
		// the regexp only admits [cdhs]
		panic("unknown suit")
	}

	return &Card{
		Rank: rank,
		Suit: suit,
	}
}

// CardsFromString returns a slice of cards from a comma-delimited string
// like "2c,3h,4s"
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	var letter string
	for l, suit := range suitsByLetter {
		if suit == card.Suit {
			letter = l
			break
		}
	}

	return fmt.Sprintf("%d%s", card.Rank, letter)
}

// CardsToString converts a slice of cards to a string like 2c,3h,4s
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
