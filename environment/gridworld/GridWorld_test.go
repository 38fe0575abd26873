package gridworld

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func testDynamics(t *testing.T) *Dynamics {
	t.Helper()

	d, err := NewDynamics(5, 5, DefaultTeleports(), 0.9)
	if err != nil {
		t.Fatalf("could not build dynamics: %v", err)
	}
	return d
}

func TestDynamicsIsDistribution(t *testing.T) {
	d := testDynamics(t)

	for s := 0; s < d.NumStates(); s++ {
		for a := 0; a < d.NumActions(); a++ {
			var total float64
			for next := 0; next < d.NumStates(); next++ {
				for r := range d.Rewards() {
					p := d.Prob(next, r, a, s)
					if p < 0 {
						t.Errorf("negative probability %v at "+
							"(%d, %d, %d, %d)", p, next, r, a, s)
					}
					total += p
				}
			}

			if math.Abs(total-1.0) > 1e-12 {
				t.Errorf("p(., . | a=%d, s=%d) sums to %v", a, s, total)
			}
		}
	}
}

func TestTeleportCellsIgnoreActions(t *testing.T) {
	d := testDynamics(t)

	for _, tp := range DefaultTeleports() {
		rewardIndex := d.rewardIndex(tp.Reward)

		for a := 0; a < d.NumActions(); a++ {
			if p := d.Prob(tp.To, rewardIndex, a, tp.From); p != 1.0 {
				t.Errorf("teleport %d -> %d under action %d has "+
					"probability %v, want 1", tp.From, tp.To, a, p)
			}
		}
	}
}

func TestBoundaryMovesStayPut(t *testing.T) {
	d := testDynamics(t)
	offGridIndex := d.rewardIndex(offGrid)

	// (state, action) pairs that would step off the grid. State 1 and
	// 3 are teleports, so the top row checks states 0, 2, and 4 only.
	boundary := []struct{ state, action int }{
		{0, Up}, {2, Up}, {4, Up},
		{0, Left}, {5, Left}, {10, Left}, {15, Left}, {20, Left},
		{4, Right}, {9, Right}, {14, Right}, {19, Right}, {24, Right},
		{20, Down}, {21, Down}, {22, Down}, {23, Down}, {24, Down},
	}

	for _, b := range boundary {
		if p := d.Prob(b.state, offGridIndex, b.action, b.state); p != 1.0 {
			t.Errorf("state %d action %d: want to stay put with reward "+
				"%v, have probability %v", b.state, b.action, offGrid, p)
		}
	}
}

func TestInteriorMovesAreNeutral(t *testing.T) {
	d := testDynamics(t)
	neutralIndex := d.rewardIndex(neutral)

	moves := []struct{ state, action, next int }{
		{12, Left, 11},
		{12, Right, 13},
		{12, Up, 7},
		{12, Down, 17},
		{0, Right, 1},  // moving onto a teleport cell is an ordinary move
		{0, Down, 5},
	}

	for _, m := range moves {
		if p := d.Prob(m.next, neutralIndex, m.action, m.state); p != 1.0 {
			t.Errorf("state %d action %d: want %d with reward 0, have "+
				"probability %v", m.state, m.action, m.next, p)
		}
	}
}

func TestDynamicsValidation(t *testing.T) {
	if _, err := NewDynamics(0, 5, nil, 0.9); err == nil {
		t.Error("no error for empty grid")
	}
	if _, err := NewDynamics(5, 5, nil, 1.5); err == nil {
		t.Error("no error for discount outside [0, 1]")
	}
	if _, err := NewDynamics(5, 5, []Teleport{{From: 25, To: 0}},
		0.9); err == nil {
		t.Error("no error for teleport outside the grid")
	}
	if _, err := NewDynamics(5, 5, []Teleport{
		{From: 1, To: 21, Reward: 10},
		{From: 1, To: 13, Reward: 5},
	}, 0.9); err == nil {
		t.Error("no error for duplicate teleport")
	}
}

func TestStepFollowsDynamics(t *testing.T) {
	g, step, err := NewDefault(100, 42)
	if err != nil {
		t.Fatalf("could not build gridworld: %v", err)
	}

	state := g.StateIndex(step.Observation)
	for i := 0; i < 200; i++ {
		action := i % NumActions
		step, _ = g.Step(mat.NewVecDense(1, []float64{float64(action)}))

		next := g.StateIndex(step.Observation)
		rewardSeen := false
		for r, reward := range g.Rewards() {
			if reward == step.Reward && g.Prob(next, r, action, state) > 0 {
				rewardSeen = true
			}
		}
		if !rewardSeen {
			t.Fatalf("transition %d -(%d)-> %d with reward %v has zero "+
				"probability", state, action, next, step.Reward)
		}

		state = next
		if step.Last() {
			step = g.Reset()
			state = g.StateIndex(step.Observation)
		}
	}
}

func TestEpisodeCutoff(t *testing.T) {
	cutoff := 5
	g, _, err := NewDefault(cutoff, 42)
	if err != nil {
		t.Fatalf("could not build gridworld: %v", err)
	}

	g.Reset()
	for i := 1; i <= cutoff; i++ {
		step, last := g.Step(mat.NewVecDense(1, []float64{float64(Down)}))

		if i < cutoff && last {
			t.Fatalf("episode ended on step %d with cutoff %d", i, cutoff)
		}
		if i == cutoff && (!last || !step.Last()) {
			t.Fatalf("episode did not end at the cutoff")
		}
	}
}

func TestSingleStart(t *testing.T) {
	if _, err := NewSingleStart(5, 0, 5, 5); err == nil {
		t.Error("no error for start outside the grid")
	}

	starter, err := NewSingleStart(2, 3, 5, 5)
	if err != nil {
		t.Fatalf("could not create starter: %v", err)
	}

	start := starter.Start()
	for i := 0; i < start.Len(); i++ {
		want := 0.0
		if i == 3*5+2 {
			want = 1.0
		}
		if start.AtVec(i) != want {
			t.Errorf("start[%d] = %v, want %v", i, start.AtVec(i), want)
		}
	}
}

func TestUniformStartCoversGrid(t *testing.T) {
	starter := NewUniformStart(5, 5, 42)

	seen := make(map[int]bool)
	for i := 0; i < 2_000; i++ {
		start := starter.Start()

		index := -1
		for j := 0; j < start.Len(); j++ {
			if start.AtVec(j) == 1.0 {
				index = j
			}
		}
		if index < 0 {
			t.Fatal("start observation is not one-hot")
		}
		seen[index] = true
	}

	if len(seen) != 25 {
		t.Errorf("uniform starts covered %d of 25 cells", len(seen))
	}
}
