package dp

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/dgrieger/rlbook/environment/gridworld"
	"github.com/dgrieger/rlbook/solver"
)

// Tolerance for comparisons against the rounded-to-one-decimal values
// of the classic 5x5 gridworld exercises
const bookTol = 0.05

func testModel(t *testing.T) *gridworld.Dynamics {
	t.Helper()

	d, err := gridworld.NewDynamics(5, 5, gridworld.DefaultTeleports(), 0.9)
	if err != nil {
		t.Fatalf("could not build dynamics: %v", err)
	}
	return d
}

func uniformPolicy(states, actions int) *mat.Dense {
	policy := mat.NewDense(states, actions, nil)
	for s := 0; s < states; s++ {
		for a := 0; a < actions; a++ {
			policy.Set(s, a, 1.0/float64(actions))
		}
	}
	return policy
}

func maxAbsVec(v mat.Vector) float64 {
	var max float64
	for i := 0; i < v.Len(); i++ {
		if abs := math.Abs(v.AtVec(i)); abs > max {
			max = abs
		}
	}
	return max
}

func TestPolicyEvaluationSolvesBellmanEquations(t *testing.T) {
	m := testModel(t)
	policy := uniformPolicy(m.NumStates(), m.NumActions())

	v, err := PolicyEvaluation(m, policy)
	if err != nil {
		t.Fatalf("could not evaluate policy: %v", err)
	}

	if r := maxAbsVec(Residual(m, v, policy)); r > 1e-10 {
		t.Errorf("Bellman residual of the exact solution is %v", r)
	}
}

func TestRandomPolicyValues(t *testing.T) {
	m := testModel(t)

	v, err := PolicyEvaluation(m, uniformPolicy(m.NumStates(),
		m.NumActions()))
	if err != nil {
		t.Fatalf("could not evaluate policy: %v", err)
	}

	// Known values of the equiprobable-random policy at 0.9 discounting
	tests := []struct {
		state int
		want  float64
	}{
		{1, 8.8},  // teleport cell A
		{3, 5.3},  // teleport cell B
		{0, 3.3},  // top-left corner
		{24, -2.0}, // bottom-right corner
	}

	for _, test := range tests {
		if got := v.AtVec(test.state); math.Abs(got-test.want) > bookTol {
			t.Errorf("v(%d) = %v, want %v", test.state, got, test.want)
		}
	}
}

func TestPolicyEvaluationValidation(t *testing.T) {
	m := testModel(t)

	wrongShape := mat.NewDense(3, 2, nil)
	if _, err := PolicyEvaluation(m, wrongShape); err == nil {
		t.Error("no error for a policy with the wrong shape")
	}

	notDistribution := mat.NewDense(m.NumStates(), m.NumActions(), nil)
	if _, err := PolicyEvaluation(m, notDistribution); err == nil {
		t.Error("no error for rows that do not sum to one")
	}
}

func TestOptimalValues(t *testing.T) {
	m := testModel(t)

	broyden, err := solver.NewBroyden(1e-10, 1000)
	if err != nil {
		t.Fatalf("could not create solver: %v", err)
	}

	v, err := OptimalValues(m, broyden)
	if err != nil {
		t.Fatalf("could not solve the optimality equations: %v", err)
	}

	if r := maxAbsVec(OptimalityResidual(m, v)); r > 1e-8 {
		t.Errorf("optimality residual of the solution is %v", r)
	}

	tests := []struct {
		state int
		want  float64
	}{
		{1, 24.4},  // teleport cell A
		{3, 19.4},  // teleport cell B
		{0, 22.0},  // top-left corner
		{24, 11.7}, // bottom-right corner
	}

	for _, test := range tests {
		if got := v.AtVec(test.state); math.Abs(got-test.want) > bookTol {
			t.Errorf("v*(%d) = %v, want %v", test.state, got, test.want)
		}
	}
}

func TestSolversAgreeOnOptimalValues(t *testing.T) {
	m := testModel(t)

	broyden, err := solver.NewBroyden(1e-10, 1000)
	if err != nil {
		t.Fatalf("could not create solver: %v", err)
	}
	fixedPoint, err := solver.NewFixedPoint(1e-10, 100_000)
	if err != nil {
		t.Fatalf("could not create solver: %v", err)
	}

	vBroyden, err := OptimalValues(m, broyden)
	if err != nil {
		t.Fatalf("Broyden's method failed: %v", err)
	}
	vIterated, err := OptimalValues(m, fixedPoint)
	if err != nil {
		t.Fatalf("fixed-point iteration failed: %v", err)
	}

	for s := 0; s < m.NumStates(); s++ {
		diff := math.Abs(vBroyden.AtVec(s) - vIterated.AtVec(s))
		if diff > 1e-6 {
			t.Errorf("solvers disagree at state %d by %v", s, diff)
		}
	}
}

func TestGreedyActions(t *testing.T) {
	m := testModel(t)

	broyden, err := solver.NewBroyden(1e-10, 1000)
	if err != nil {
		t.Fatalf("could not create solver: %v", err)
	}
	v, err := OptimalValues(m, broyden)
	if err != nil {
		t.Fatalf("could not solve the optimality equations: %v", err)
	}

	greedy := GreedyActions(m, v, 1e-6)

	if len(greedy) != m.NumStates() {
		t.Fatalf("greedy sets for %d states, want %d", len(greedy),
			m.NumStates())
	}

	// All actions are optimal on a teleport cell
	for _, tp := range gridworld.DefaultTeleports() {
		if len(greedy[tp.From]) != m.NumActions() {
			t.Errorf("teleport state %d has greedy set %v, want all "+
				"actions", tp.From, greedy[tp.From])
		}
	}

	// The top-left corner moves toward teleport A, one cell to its right
	if len(greedy[0]) != 1 || greedy[0][0] != gridworld.Right {
		t.Errorf("state 0 has greedy set %v, want [Right]", greedy[0])
	}

	// The cell below A moves back up onto it
	if len(greedy[6]) != 1 || greedy[6][0] != gridworld.Up {
		t.Errorf("state 6 has greedy set %v, want [Up]", greedy[6])
	}
}

func TestBackupMatchesExpectedReward(t *testing.T) {
	m := testModel(t)
	zero := mat.NewVecDense(m.NumStates(), nil)

	// With a zero value function the backup reduces to the expected
	// immediate reward
	for s := 0; s < m.NumStates(); s++ {
		for a := 0; a < m.NumActions(); a++ {
			backup := Backup(m, zero, s, a)
			if math.Abs(backup-m.ExpectedReward(s, a)) > 1e-12 {
				t.Errorf("Backup(0, %d, %d) = %v, want %v", s, a, backup,
					m.ExpectedReward(s, a))
			}
		}
	}
}
