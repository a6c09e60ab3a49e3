package aggregator

import (
	"math"

	"survey-insights-go/internal/types"
)

// Matrix is a square, symmetric correlation matrix. Cells[i][j] is
// undefined when the pair had fewer than two complete rows or no variance.
type Matrix struct {
	Size  int            `json:"size"`
	Cells [][]types.Stat `json:"cells"`
}

func (m Matrix) At(i, j int) types.Stat {
	if i < 0 || j < 0 || i >= m.Size || j >= m.Size {
		return types.Stat{}
	}
	return m.Cells[i][j]
}

// LowerTriangle returns a copy keeping only cells strictly below the
// diagonal. Kept values are copied untouched.
func (m Matrix) LowerTriangle() Matrix {
	out := Matrix{Size: m.Size, Cells: make([][]types.Stat, m.Size)}
	for i := range m.Cells {
		out.Cells[i] = make([]types.Stat, m.Size)
		for j := 0; j < i; j++ {
			out.Cells[i][j] = m.Cells[i][j]
		}
	}
	return out
}

// CorrelationMatrix computes pairwise Pearson correlation across all columns,
// each pair using only the rows where both scores are present.
func CorrelationMatrix(t types.ScoreTable) Matrix {
	k := len(t.Scores)
	m := Matrix{Size: k, Cells: make([][]types.Stat, k)}
	for i := range m.Cells {
		m.Cells[i] = make([]types.Stat, k)
	}
	for i := 0; i < k; i++ {
		for j := 0; j <= i; j++ {
			r := pearson(t.Scores[i], t.Scores[j])
			if i == j && r.Valid {
				r.Value = 1
			}
			m.Cells[i][j] = r
			m.Cells[j][i] = r
		}
	}
	return m
}

func pearson(x, y []types.Score) types.Stat {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	var sx, sy float64
	cnt := 0
	for i := 0; i < n; i++ {
		if x[i].Valid && y[i].Valid {
			sx += float64(x[i].Value)
			sy += float64(y[i].Value)
			cnt++
		}
	}
	if cnt < 2 {
		return types.Stat{}
	}
	mx, my := sx/float64(cnt), sy/float64(cnt)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		if x[i].Valid && y[i].Valid {
			dx := float64(x[i].Value) - mx
			dy := float64(y[i].Value) - my
			sxy += dx * dy
			sxx += dx * dx
			syy += dy * dy
		}
	}
	if sxx == 0 || syy == 0 {
		return types.Stat{}
	}
	r := sxy / math.Sqrt(sxx*syy)
	return types.NewStat(math.Max(-1, math.Min(1, r)))
}
