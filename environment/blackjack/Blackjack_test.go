package blackjack

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func action(a int) mat.Vector {
	return mat.NewVecDense(1, []float64{float64(a)})
}

func TestHandSums(t *testing.T) {
	tests := []struct {
		cards  []int
		sum    int
		usable bool
		bust   bool
	}{
		{[]int{Ten, Seven}, 17, false, false},
		{[]int{Ace, Six}, 17, true, false},
		{[]int{Ace, Ace}, 12, true, false},            // one ace high, one low
		{[]int{Ace, Six, Ten}, 17, false, false},      // ace forced low
		{[]int{Ace, Ace, Nine}, 21, true, false},
		{[]int{Ten, Nine, Three}, 22, false, true},
		{[]int{Ace, Ten, Five, Six}, 22, false, true}, // busts even with ace low
	}

	for _, test := range tests {
		h := hand{}
		for _, card := range test.cards {
			h.add(card)
		}

		if h.sum() != test.sum {
			t.Errorf("cards %v: sum = %d, want %d", test.cards, h.sum(),
				test.sum)
		}
		if h.usableAce() != test.usable {
			t.Errorf("cards %v: usableAce = %v, want %v", test.cards,
				h.usableAce(), test.usable)
		}
		if h.bust() != test.bust {
			t.Errorf("cards %v: bust = %v, want %v", test.cards, h.bust(),
				test.bust)
		}
	}
}

func TestBustIsImmediateLoss(t *testing.T) {
	b, _ := New(42)

	// Any card drawn on a hard 21 busts the hand
	b.player = hand{hard: 21}
	step, last := b.Step(action(Hit))

	if !last || !step.Last() {
		t.Error("busting hand did not end the episode")
	}
	if step.Reward != Loss {
		t.Errorf("bust reward = %v, want %v", step.Reward, Loss)
	}
}

func TestStickScoring(t *testing.T) {
	// The dealer holds 10 + 7 and stands immediately at 17, so the
	// outcome depends only on the player's sum.
	tests := []struct {
		player hand
		want   float64
	}{
		{hand{hard: 19}, Win},
		{hand{hard: 17}, Draw},
		{hand{hard: 16}, Loss},
		{hand{hard: 11, aces: 1}, Win}, // ace-high 21
	}

	for _, test := range tests {
		b, _ := New(42)
		b.player = test.player
		b.dealerShowing = Ten
		b.dealerHole = Seven

		step, last := b.Step(action(Stick))
		if !last {
			t.Fatal("sticking did not end the episode")
		}
		if step.Reward != test.want {
			t.Errorf("player %d vs dealer 17: reward = %v, want %v",
				test.player.sum(), step.Reward, test.want)
		}
	}
}

func TestDealerHitsBelowSeventeen(t *testing.T) {
	b, _ := New(42)
	b.dealerShowing = Two
	b.dealerHole = Three

	// The dealer starts at 5 and must draw until reaching 17 or more
	if sum := b.dealerPlayout(); sum < dealerStick {
		t.Errorf("dealer stopped at %d, below %d", sum, dealerStick)
	}
}

func TestDealerCountsAceHigh(t *testing.T) {
	b, _ := New(42)
	b.dealerShowing = Ace
	b.dealerHole = Seven

	// Ace + 7 is a soft 18; the dealer stands without drawing
	if sum := b.dealerPlayout(); sum != 18 {
		t.Errorf("dealer sum = %d, want 18", sum)
	}
}

func TestResetDealsDecisionStates(t *testing.T) {
	b, step := New(42)

	for i := 0; i < 1_000; i++ {
		if !step.First() {
			t.Fatal("Reset did not return a First timestep")
		}

		sum := int(step.Observation.AtVec(0))
		if sum < minSum || sum > maxSum {
			t.Fatalf("Reset dealt a sum of %d outside [%d, %d]", sum,
				minSum, maxSum)
		}

		showing := int(step.Observation.AtVec(1))
		if showing < Ace || showing > Ten {
			t.Fatalf("Reset dealt a showing card of %d", showing)
		}

		step = b.Reset()
	}
}

func TestStateIndex(t *testing.T) {
	b, _ := New(42)

	seen := make(map[int]bool)
	for sum := minSum; sum <= maxSum; sum++ {
		for showing := Ace; showing <= Ten; showing++ {
			for usable := 0; usable <= 1; usable++ {
				obs := mat.NewVecDense(3, []float64{float64(sum),
					float64(showing), float64(usable)})

				index := b.StateIndex(obs)
				if index < 0 || index >= b.NumStates() {
					t.Fatalf("state (%d, %d, %d) has index %d", sum,
						showing, usable, index)
				}
				if seen[index] {
					t.Fatalf("state (%d, %d, %d) collides at index %d",
						sum, showing, usable, index)
				}
				seen[index] = true
			}
		}
	}

	if len(seen) != b.NumStates() {
		t.Errorf("indexed %d states, want %d", len(seen), b.NumStates())
	}

	bustObs := mat.NewVecDense(3, []float64{25, float64(Ten), 0})
	if index := b.StateIndex(bustObs); index != -1 {
		t.Errorf("bust observation indexed to %d, want -1", index)
	}
}

func TestExploringStartsCoverage(t *testing.T) {
	b, step := NewExploringStarts(42)

	seen := make(map[int]bool)
	for i := 0; i < 20_000; i++ {
		seen[b.StateIndex(step.Observation)] = true
		step = b.Reset()
	}

	if len(seen) != b.NumStates() {
		t.Errorf("exploring starts visited %d of %d states", len(seen),
			b.NumStates())
	}
}

func TestInfiniteDeckWeights(t *testing.T) {
	b, _ := New(42)

	counts := make(map[int]int)
	draws := 130_000
	for i := 0; i < draws; i++ {
		counts[b.deck.Draw()]++
	}

	for card := Ace; card <= Ten; card++ {
		want := draws / 13
		if card == Ten {
			want = 4 * draws / 13
		}

		// Loose bound; far outside sampling noise at this many draws
		if counts[card] < want/2 || counts[card] > want*2 {
			t.Errorf("card %d drawn %d times, want about %d", card,
				counts[card], want)
		}
	}
}

func BenchmarkEpisode(b *testing.B) {
	env, _ := New(42)
	stick := action(Stick)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		env.Reset()
		env.Step(stick)
	}
}
