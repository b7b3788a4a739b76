package stats

import (
	"math"
	"regexp"
	"strconv"

	"github.com/KaramelBytes/tabloom/internal/table"
)

// numericPattern accepts an optional sign, then digits with an optional
// fractional part, or a fractional part alone (".5").
var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// CorrelationCalculator accumulates the sufficient statistics for the Pearson
// coefficient between two designated numeric columns. No per-record history
// is kept; the six sums are the entire working state, so independent
// calculators can share one pass over the stream.
type CorrelationCalculator struct {
	x, y table.Column

	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func NewCorrelationCalculator(x, y table.Column) *CorrelationCalculator {
	return &CorrelationCalculator{x: x, y: y}
}

// Add folds one record into the accumulator. The pair contributes only when
// both cells are non-empty and match the numeric pattern; otherwise the whole
// record is skipped.
func (c *CorrelationCalculator) Add(rec table.Record) {
	xs := rec.Get(c.x.Index)
	ys := rec.Get(c.y.Index)
	if !numericPattern.MatchString(xs) || !numericPattern.MatchString(ys) {
		return
	}
	x, errX := strconv.ParseFloat(xs, 64)
	y, errY := strconv.ParseFloat(ys, 64)
	if errX != nil || errY != nil {
		return
	}
	c.n++
	c.sumX += x
	c.sumY += y
	c.sumXX += x * x
	c.sumYY += y * y
	c.sumXY += x * y
}

// Coefficient computes r rounded half away from zero to three decimals.
// Fewer than two valid pairs, or a non-positive variance term (constant
// column), yields exactly 0. That is a defined output, not an error.
func (c *CorrelationCalculator) Coefficient() float64 {
	if c.n < 2 {
		return 0
	}
	vx := c.n*c.sumXX - c.sumX*c.sumX
	vy := c.n*c.sumYY - c.sumY*c.sumY
	if vx <= 0 || vy <= 0 {
		return 0
	}
	r := (c.n*c.sumXY - c.sumX*c.sumY) / math.Sqrt(vx*vy)
	r = math.Round(r*1000) / 1000
	if r == 0 {
		return 0 // avoid negative zero in the rendered report
	}
	return r
}
