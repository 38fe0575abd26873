package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/dgrieger/rlbook/environment"
)

// SingleStart starts every episode at the same grid cell
type SingleStart struct {
	state mat.Vector
	r, c  int
}

// NewSingleStart returns a Starter that always starts at cell (x, y)
// of an r x c grid, where x indexes columns and y indexes rows
func NewSingleStart(x, y, r, c int) (environment.Starter, error) {
	if x < 0 || x >= c {
		return nil, fmt.Errorf("newSingleStart: x = %d outside cols = %d",
			x, c)
	} else if y < 0 || y >= r {
		return nil, fmt.Errorf("newSingleStart: y = %d outside rows = %d",
			y, r)
	}

	start := mat.NewVecDense(r*c, nil)
	start.SetVec(y*c+x, 1.0)
	return &SingleStart{start, r, c}, nil
}

// Start returns the starting state observation
func (s *SingleStart) Start() mat.Vector {
	return s.state
}

// UniformStart starts episodes at grid cells chosen uniformly at
// random. It wraps an environment.CategoricalStarter, converting the
// sampled cell index to a one-hot observation.
type UniformStart struct {
	indices environment.CategoricalStarter
	states  int
}

// NewUniformStart returns a Starter sampling start cells uniformly
// from an r x c grid
func NewUniformStart(r, c int, seed uint64) UniformStart {
	return UniformStart{
		indices: environment.NewCategoricalStarter([]int{r * c}, seed),
		states:  r * c,
	}
}

// Start returns a one-hot starting state observation
func (u UniformStart) Start() mat.Vector {
	index := int(u.indices.Start().AtVec(0))

	state := mat.NewVecDense(u.states, nil)
	state.SetVec(index, 1.0)
	return state
}
