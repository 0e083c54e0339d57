package geometry

import (
	"math"

	"github.com/df07/go-matcap-loop/pkg/core"
)

// outlinePoint is a sample of the polygon outline: a point on the inset core
// polygon and the angle of the outward normal there
type outlinePoint struct {
	core  core.Vec2
	angle float64
}

// NewRoundedPolygonPrism creates a regular polygon extruded along Z and
// centered at the origin. Corners of the outline are rounded with the bevel
// radius and every edge of the prism is beveled with a quarter circle.
//
// radius is the circumradius of the unrounded polygon and depth the total
// extent along Z. cornerSegments subdivide each rounded corner,
// bevelSegments each quarter-circle bevel and edgeSegments each straight side.
func NewRoundedPolygonPrism(radius, depth float64, sides, cornerSegments int, bevel float64, bevelSegments, edgeSegments int) *Mesh {
	sides = max(sides, 3)
	cornerSegments = max(cornerSegments, 1)
	bevelSegments = max(bevelSegments, 1)
	edgeSegments = max(edgeSegments, 1)

	halfAngle := math.Pi / float64(sides)
	bevel = math.Max(0, math.Min(bevel, math.Min(depth/2, radius*math.Cos(halfAngle))))
	halfDepth := depth/2 - bevel
	centerDist := radius - bevel/math.Cos(halfAngle)

	outline := polygonOutline(sides, centerDist, cornerSegments, edgeSegments)

	// Profile across the depth: bottom quarter arc then top quarter arc
	type ring struct{ cos, sin, z float64 }
	var rings []ring
	for k := 0; k <= bevelSegments; k++ {
		phi := -math.Pi/2 + float64(k)/float64(bevelSegments)*math.Pi/2
		rings = append(rings, ring{math.Cos(phi), math.Sin(phi), -halfDepth})
	}
	for k := 0; k <= bevelSegments; k++ {
		phi := float64(k) / float64(bevelSegments) * math.Pi / 2
		rings = append(rings, ring{math.Cos(phi), math.Sin(phi), halfDepth})
	}

	b := &meshBuilder{}
	m := len(outline)
	for _, r := range rings {
		for _, o := range outline {
			nx, ny := math.Cos(o.angle), math.Sin(o.angle)
			normal := core.NewVec3(r.cos*nx, r.cos*ny, r.sin)
			position := core.NewVec3(o.core.X, o.core.Y, r.z).Add(normal.Multiply(bevel))
			b.vertex(position, normal)
		}
	}
	for r := 0; r+1 < len(rings); r++ {
		for i := 0; i < m; i++ {
			next := (i + 1) % m
			b.quad(r*m+i, r*m+next, (r+1)*m+next, (r+1)*m+i)
		}
	}

	// Flat caps fan out from the axis
	last := (len(rings) - 1) * m
	bottom := b.vertex(core.NewVec3(0, 0, -depth/2), core.NewVec3(0, 0, -1))
	top := b.vertex(core.NewVec3(0, 0, depth/2), core.NewVec3(0, 0, 1))
	for i := 0; i < m; i++ {
		next := (i + 1) % m
		b.triangle(bottom, next, i)
		b.triangle(top, last+i, last+next)
	}

	return b.build()
}

// polygonOutline walks the rounded outline counter-clockwise. Corner arcs sit
// around the inset corner points; straight sides keep a constant normal.
func polygonOutline(sides int, centerDist float64, cornerSegments, edgeSegments int) []outlinePoint {
	step := 2 * math.Pi / float64(sides)
	corners := make([]core.Vec2, sides)
	for i := range corners {
		theta := float64(i) * step
		corners[i] = core.NewVec2(centerDist*math.Cos(theta), centerDist*math.Sin(theta))
	}

	outline := make([]outlinePoint, 0, sides*(cornerSegments+edgeSegments))
	for i, c := range corners {
		theta := float64(i) * step
		for k := 0; k <= cornerSegments; k++ {
			angle := theta - step/2 + float64(k)/float64(cornerSegments)*step
			outline = append(outline, outlinePoint{core: c, angle: angle})
		}

		next := corners[(i+1)%sides]
		for k := 1; k < edgeSegments; k++ {
			f := float64(k) / float64(edgeSegments)
			p := core.NewVec2(c.X+(next.X-c.X)*f, c.Y+(next.Y-c.Y)*f)
			outline = append(outline, outlinePoint{core: p, angle: theta + step/2})
		}
	}
	return outline
}
