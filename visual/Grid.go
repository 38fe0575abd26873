package visual

import (
	"fmt"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/mat"

	"github.com/dgrieger/rlbook/environment/gridworld"
)

const cellSize float64 = 80.0

// SaveGrid renders a gridworld value function, together with the set
// of greedy actions in each cell, to a PNG at filename. The values
// vector is indexed by flat state index; greedy[s] lists the actions
// drawn as arrows in state s and may be nil to draw values only.
func SaveGrid(values mat.Vector, greedy [][]int, rows, cols int,
	filename string) error {
	if values.Len() != rows*cols {
		return fmt.Errorf("saveGrid: %d values for a (%d, %d) grid",
			values.Len(), rows, cols)
	}

	dc := gg.NewContext(int(cellSize)*cols, int(cellSize)*rows)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2.0)
	for row := 0; row <= rows; row++ {
		y := float64(row) * cellSize
		dc.DrawLine(0, y, float64(cols)*cellSize, y)
	}
	for col := 0; col <= cols; col++ {
		x := float64(col) * cellSize
		dc.DrawLine(x, 0, x, float64(rows)*cellSize)
	}
	dc.Stroke()

	for s := 0; s < values.Len(); s++ {
		x := (float64(s%cols) + 0.5) * cellSize
		y := (float64(s/cols) + 0.5) * cellSize

		label := fmt.Sprintf("%.1f", values.AtVec(s))
		if greedy == nil {
			dc.DrawStringAnchored(label, x, y, 0.5, 0.5)
			continue
		}

		dc.DrawStringAnchored(label, x, y-cellSize*0.25, 0.5, 0.5)
		for _, action := range greedy[s] {
			drawArrow(dc, x, y+cellSize*0.1, action)
		}
	}

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("saveGrid: %v", err)
	}
	return nil
}

// drawArrow draws a short arrow from (x, y) in the direction of a
// gridworld action
func drawArrow(dc *gg.Context, x, y float64, action int) {
	length := cellSize * 0.25

	var dx, dy float64
	switch action {
	case gridworld.Left:
		dx = -length
	case gridworld.Right:
		dx = length
	case gridworld.Up:
		dy = -length
	case gridworld.Down:
		dy = length
	}

	tipX, tipY := x+dx, y+dy
	dc.DrawLine(x, y, tipX, tipY)

	// Arrowhead as two short barbs back from the tip
	barb := length * 0.35
	if dx != 0 {
		back := -dx / length * barb
		dc.DrawLine(tipX, tipY, tipX+back, tipY-barb*0.6)
		dc.DrawLine(tipX, tipY, tipX+back, tipY+barb*0.6)
	} else {
		back := -dy / length * barb
		dc.DrawLine(tipX, tipY, tipX-barb*0.6, tipY+back)
		dc.DrawLine(tipX, tipY, tipX+barb*0.6, tipY+back)
	}
	dc.Stroke()
}
