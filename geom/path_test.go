package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectUnion(t *testing.T) {
	e := EmptyRect()
	assert.True(t, e.IsEmpty())
	assert.Equal(t, 0.0, e.Width())

	r := e.Add(1, 2).Add(-3, 5)
	assert.Equal(t, Rect{MinX: -3, MinY: 2, MaxX: 1, MaxY: 5}, r)
	assert.Equal(t, r, r.Union(EmptyRect()))
	assert.Equal(t, r, EmptyRect().Union(r))
}

func TestArcSegBounds(t *testing.T) {
	// Quarter sweep from (1,0) to (0,1) in the screen convention.
	a := ArcSeg{CX: 0, CY: 0, R: 1, StartDeg: 0, ExtentDeg: -90}
	b := a.Bounds()
	assert.InDelta(t, 0.0, b.MinX, 1e-9)
	assert.InDelta(t, 0.0, b.MinY, 1e-9)
	assert.InDelta(t, 1.0, b.MaxX, 1e-9)
	assert.InDelta(t, 1.0, b.MaxY, 1e-9)

	full := ArcSeg{CX: 2, CY: 3, R: 1, StartDeg: 0, ExtentDeg: -360}
	assert.Equal(t, Rect{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}, full.Bounds())
}

func TestCircleBoundsAndTransform(t *testing.T) {
	c := &Circle{CX: 1, CY: 1, R: 2}
	assert.Equal(t, Rect{MinX: -1, MinY: -1, MaxX: 3, MaxY: 3}, c.Bounds())

	scaled, ok := c.Transform(Identity().Scale(2, -2)).(*Circle)
	require.True(t, ok, "uniform flip keeps a circle a circle")
	assert.InDelta(t, 4.0, scaled.R, 1e-9)

	e, ok := c.Transform(Identity().Scale(3, 1)).(*Ellipse)
	require.True(t, ok, "non-uniform scale promotes to an ellipse")
	assert.InDelta(t, 6.0, e.RX, 1e-9)
	assert.InDelta(t, 2.0, e.RY, 1e-9)
}

func TestEllipseBounds(t *testing.T) {
	e := &Ellipse{CX: 0, CY: 0, RX: 2, RY: 1}
	assert.Equal(t, Rect{MinX: -2, MinY: -1, MaxX: 2, MaxY: 1}, e.Bounds())
}

func TestPathBoundsAndTransform(t *testing.T) {
	p := &Path{}
	p.MoveTo(0, 0)
	p.LineTo(2, 1)
	p.CurveTo(3, 3, 4, -1, 5, 0)
	p.Close()

	b := p.Bounds()
	assert.InDelta(t, 0.0, b.MinX, 1e-12)
	assert.InDelta(t, -1.0, b.MinY, 1e-12)
	assert.InDelta(t, 5.0, b.MaxX, 1e-12)
	assert.InDelta(t, 3.0, b.MaxY, 1e-12)

	moved := p.Transform(Translation(10, 20)).(*Path)
	require.Len(t, moved.Cmds, len(p.Cmds))
	mb := moved.Bounds()
	assert.InDelta(t, b.MinX+10, mb.MinX, 1e-12)
	assert.InDelta(t, b.MinY+20, mb.MinY, 1e-12)
}

func TestArcCubicsApproximation(t *testing.T) {
	a := ArcSeg{CX: 0, CY: 0, R: 1, StartDeg: 0, ExtentDeg: -180}
	cubics := a.Cubics()
	require.Len(t, cubics, 2)
	end := cubics[len(cubics)-1]
	want := a.EndPoint()
	assert.InDelta(t, want.X, end.X, 1e-9)
	assert.InDelta(t, want.Y, end.Y, 1e-9)

	// Midpoint of the first cubic stays within tolerance of the circle.
	c := cubics[0]
	p0 := a.StartPoint()
	x := 0.125*p0.X + 0.375*c.X1 + 0.375*c.X2 + 0.125*c.X
	y := 0.125*p0.Y + 0.375*c.Y1 + 0.375*c.Y2 + 0.125*c.Y
	r := x*x + y*y
	assert.InDelta(t, 1.0, r, 1e-3)
}

func TestAppendShape(t *testing.T) {
	p := &Path{}
	c := &Circle{CX: 0, CY: 0, R: 1}
	p.AppendShape(c, Translation(5, 0))
	require.NotEmpty(t, p.Cmds)
	b := p.Bounds()
	assert.InDelta(t, 4.0, b.MinX, 1e-9)
	assert.InDelta(t, 6.0, b.MaxX, 1e-9)
}
