// Package layout computes canvas coordinates for process shapes. The
// calculator is a pure function of shape count; identical input yields
// identical coordinates so rendered documents stay byte-stable.
package layout

// Point is a canvas coordinate.
type Point struct {
	X float64
	Y float64
}

// Calculator spaces shapes left to right on a fixed row. The zero value is
// not usable; construct with NewCalculator.
type Calculator struct {
	startX   float64
	startY   float64
	spacingX float64
}

// Default canvas geometry matching the platform designer's grid.
const (
	defaultStartX   = 96
	defaultStartY   = 176
	defaultSpacingX = 176

	// Outgoing connection anchors sit on the right edge of a shape,
	// vertically centered.
	dragOffsetX = 100
	dragOffsetY = 8
)

// NewCalculator returns a calculator with the default grid geometry.
func NewCalculator() *Calculator {
	return &Calculator{
		startX:   defaultStartX,
		startY:   defaultStartY,
		spacingX: defaultSpacingX,
	}
}

// NewCalculatorWithSpacing returns a calculator with custom horizontal
// spacing. Spacing below shape width would overlap shapes; values <= 0
// fall back to the default.
func NewCalculatorWithSpacing(spacing float64) *Calculator {
	c := NewCalculator()
	if spacing > 0 {
		c.spacingX = spacing
	}
	return c
}

// Linear returns coordinates for count shapes in a single left-to-right row.
// Branch and parallel layouts would extend this with additional rows; the
// linear row is row zero.
func (c *Calculator) Linear(count int) []Point {
	if count <= 0 {
		return nil
	}
	points := make([]Point, count)
	for i := 0; i < count; i++ {
		points[i] = Point{
			X: c.startX + float64(i)*c.spacingX,
			Y: c.startY,
		}
	}
	return points
}

// DragPoint returns the outgoing edge anchor for a shape at p.
func (c *Calculator) DragPoint(p Point) Point {
	return Point{X: p.X + dragOffsetX, Y: p.Y + dragOffsetY}
}
