package blackjack

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Card values. Jacks, queens, and kings all count 10 and are folded
// into Ten; aces are drawn as Ace and may later count as 11.
const (
	Ace int = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
)

// InfiniteDeck deals cards with replacement: each draw is independent
// and face cards are folded into the ten, so a ten is four times as
// likely as any other value.
type InfiniteDeck struct {
	dist distuv.Categorical
}

// NewInfiniteDeck returns a new infinite deck dealing from the given
// random source
func NewInfiniteDeck(source rand.Source) InfiniteDeck {
	weights := make([]float64, Ten)
	for i := range weights {
		weights[i] = 1.0
	}
	weights[Ten-1] = 4.0 // 10, J, Q, K

	return InfiniteDeck{distuv.NewCategorical(weights, source)}
}

// Draw deals a single card value in [Ace, Ten]
func (d InfiniteDeck) Draw() int {
	return int(d.dist.Rand()) + 1
}
