// Package blackjack implements the episodic blackjack environment of
// the classic Monte-Carlo prediction exercises.
//
// The game is played against a dealer with an infinite deck. The
// observation is the 3-vector [player sum, dealer showing card,
// usable-ace flag]. Player sums below 12 hold no decision (hitting
// cannot bust), so such hands are dealt extra cards during Reset
// before the first timestep is returned.
package blackjack

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/dgrieger/rlbook/environment"
	"github.com/dgrieger/rlbook/timestep"
)

// Actions available in every blackjack state
const (
	Stick int = iota
	Hit
)

const (
	minSum      int = 12 // smallest player sum with a decision
	maxSum      int = 21
	dealerStick int = 17 // dealer hits below this total

	// Rewards, all issued on the terminal step
	Loss float64 = -1.0
	Draw float64 = 0.0
	Win  float64 = 1.0
)

// Blackjack implements a game of blackjack as an environment. Each
// episode is a single hand. Rewards are Win, Draw, or Loss on the
// terminal step and 0 elsewhere; a player bust is an immediate Loss
// regardless of the dealer's cards.
//
// With exploring starts enabled, Reset places the player in a state
// drawn uniformly from all 200 (sum, showing, ace) combinations rather
// than dealing naturally, so that even states a policy would never
// reach are visited.
type Blackjack struct {
	deck            InfiniteDeck
	rng             *rand.Rand
	exploringStarts bool

	player        hand
	dealerShowing int
	dealerHole    int

	currentStep timestep.TimeStep
}

// New returns a new Blackjack environment dealing hands naturally,
// along with the first timestep of the first hand
func New(seed uint64) (*Blackjack, timestep.TimeStep) {
	return newBlackjack(false, seed)
}

// NewExploringStarts returns a new Blackjack environment that starts
// each hand from a uniformly random state
func NewExploringStarts(seed uint64) (*Blackjack, timestep.TimeStep) {
	return newBlackjack(true, seed)
}

func newBlackjack(exploringStarts bool, seed uint64) (*Blackjack,
	timestep.TimeStep) {
	source := rand.NewSource(seed)
	b := &Blackjack{
		deck:            NewInfiniteDeck(source),
		rng:             rand.New(source),
		exploringStarts: exploringStarts,
	}

	return b, b.Reset()
}

// Reset deals a new hand and returns its first timestep
func (b *Blackjack) Reset() timestep.TimeStep {
	if b.exploringStarts {
		b.dealUniform()
	} else {
		b.deal()
	}

	step := timestep.New(timestep.First, 0, 1.0, b.getObservation(), 0)
	b.currentStep = step
	return step
}

// deal plays out the forced part of a hand: two cards to the player,
// extra cards while the sum is below minSum, and the dealer's showing
// and hole cards
func (b *Blackjack) deal() {
	b.player = hand{}
	b.player.add(b.deck.Draw())
	b.player.add(b.deck.Draw())
	for b.player.sum() < minSum {
		b.player.add(b.deck.Draw())
	}

	b.dealerShowing = b.deck.Draw()
	b.dealerHole = b.deck.Draw()
}

// dealUniform constructs a uniformly random starting state instead of
// dealing naturally
func (b *Blackjack) dealUniform() {
	sum := minSum + b.rng.Intn(maxSum-minSum+1)
	usable := b.rng.Intn(2) == 1

	if usable {
		// One ace counted as 11 plus hard cards making up the rest
		b.player = hand{hard: sum - 10, aces: 1}
	} else {
		b.player = hand{hard: sum}
	}

	b.dealerShowing = Ace + b.rng.Intn(Ten)
	b.dealerHole = b.deck.Draw()
}

// Step advances the hand by one player decision. Hitting draws a card
// and busting loses immediately; sticking triggers the dealer playout
// and scores the hand.
func (b *Blackjack) Step(action mat.Vector) (timestep.TimeStep, bool) {
	if l := action.Len(); l != 1 {
		panic(fmt.Sprintf("step: action dimension - want 1, have %d", l))
	}

	number := b.currentStep.Number + 1
	var step timestep.TimeStep

	switch int(action.AtVec(0)) {
	case Hit:
		b.player.add(b.deck.Draw())
		if b.player.bust() {
			step = timestep.New(timestep.Last, Loss, 1.0,
				b.getObservation(), number)
		} else {
			step = timestep.New(timestep.Mid, 0, 1.0,
				b.getObservation(), number)
		}

	case Stick:
		reward := b.score(b.dealerPlayout())
		step = timestep.New(timestep.Last, reward, 1.0,
			b.getObservation(), number)

	default:
		panic(fmt.Sprintf("step: no such action %v", action.AtVec(0)))
	}

	b.currentStep = step
	return step, step.Last()
}

// dealerPlayout reveals the hole card and plays the dealer's fixed
// strategy: hit on any total below dealerStick, counting an ace as 11
// whenever that does not bust. Returns the dealer's final sum.
func (b *Blackjack) dealerPlayout() int {
	dealer := hand{}
	dealer.add(b.dealerShowing)
	dealer.add(b.dealerHole)

	for dealer.sum() < dealerStick {
		dealer.add(b.deck.Draw())
	}
	return dealer.sum()
}

// score compares the player's stuck hand against the dealer's final sum
func (b *Blackjack) score(dealerSum int) float64 {
	playerSum := b.player.sum()

	switch {
	case dealerSum > maxSum:
		return Win
	case playerSum > dealerSum:
		return Win
	case playerSum < dealerSum:
		return Loss
	default:
		return Draw
	}
}

// Start returns the first observation of a freshly dealt hand
func (b *Blackjack) Start() mat.Vector {
	return b.Reset().Observation
}

func (b *Blackjack) getObservation() *mat.VecDense {
	usable := 0.0
	if b.player.usableAce() {
		usable = 1.0
	}

	return mat.NewVecDense(3, []float64{
		float64(b.player.sum()),
		float64(b.dealerShowing),
		usable,
	})
}

// NumStates returns the number of distinct observable states: player
// sums 12-21 by dealer showing cards ace-10 by usable-ace flag
func (b *Blackjack) NumStates() int {
	return (maxSum - minSum + 1) * Ten * 2
}

// NumActions returns the number of actions available in each state
func (b *Blackjack) NumActions() int {
	return 2
}

// StateIndex converts an observation to a flat state index. The index
// is only defined for in-play states; bust observations map to -1.
func (b *Blackjack) StateIndex(obs mat.Vector) int {
	sum := int(obs.AtVec(0))
	showing := int(obs.AtVec(1))
	usable := int(obs.AtVec(2))

	if sum < minSum || sum > maxSum {
		return -1
	}
	return ((sum-minSum)*Ten+(showing-Ace))*2 + usable
}

// ObservationSpec returns the observation specification of the environment
func (b *Blackjack) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(3, nil)
	lowerBound := mat.NewVecDense(3, []float64{float64(minSum),
		float64(Ace), 0})
	upperBound := mat.NewVecDense(3, []float64{float64(maxSum),
		float64(Ten), 1})

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Discrete)
}

// ActionSpec returns the action specification of the environment
func (b *Blackjack) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{float64(Stick)})
	upperBound := mat.NewVecDense(1, []float64{float64(Hit)})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Discrete)
}

// RewardSpec returns the reward specification of the environment
func (b *Blackjack) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{Loss})
	upperBound := mat.NewVecDense(1, []float64{Win})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Discrete)
}

// DiscountSpec returns the discount specification of the environment.
// Blackjack hands are short episodes and are not discounted.
func (b *Blackjack) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{1.0})

	return environment.NewSpec(shape, environment.Discount, bound, bound,
		environment.Continuous)
}

func (b *Blackjack) String() string {
	return fmt.Sprintf("Blackjack | Player: %d  |  Dealer showing: %d  |  "+
		"Usable ace: %v", b.player.sum(), b.dealerShowing,
		b.player.usableAce())
}
