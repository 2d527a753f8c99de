package raycast

import (
	"math"

	"github.com/Carmen-Shannon/oxy-planner/common"
	"github.com/go-gl/mathgl/mgl64"
)

// hitEpsilon rejects intersections behind or exactly at the ray origin and near-parallel planes.
const hitEpsilon = 1e-9

// Surface is anything a picking ray can be tested against.
// Implementations must be pointer types so hits can be matched back to their owners.
type Surface interface {
	// IntersectRay tests the surface's own geometry, ignoring children.
	// Every returned Hit has Surface, Point, Normal and Distance populated.
	IntersectRay(r Ray) []Hit

	// Visible reports whether the surface is currently shown.
	Visible() bool

	// Children returns nested surfaces tested when Options.Recursive is set.
	Children() []Surface
}

// Plane is an infinite plane through Point with unit Normal.
type Plane struct {
	Point     mgl64.Vec3
	Normal    mgl64.Vec3
	Hidden    bool
	FrontOnly bool
}

var _ Surface = &Plane{}

// NewGroundPlane returns the invisible horizontal plane through the origin used for dragging.
func NewGroundPlane() *Plane {
	return &Plane{Normal: common.WorldUp, Hidden: true}
}

func (p *Plane) IntersectRay(r Ray) []Hit {
	t, ok := intersectPlane(r, p.Point, p.Normal, p.FrontOnly)
	if !ok {
		return nil
	}
	return []Hit{{Surface: p, Point: r.At(t), Normal: p.Normal, Distance: t}}
}

func (p *Plane) Visible() bool       { return !p.Hidden }
func (p *Plane) Children() []Surface { return nil }

// Quad is a finite rectangle centered at Center spanning ±HalfU and ±HalfV.
// Its normal is HalfU × HalfV normalized, so the winding picks the front face.
type Quad struct {
	Center    mgl64.Vec3
	HalfU     mgl64.Vec3
	HalfV     mgl64.Vec3
	Hidden    bool
	FrontOnly bool
}

var _ Surface = &Quad{}

// Normal returns the quad's unit face normal.
func (q *Quad) Normal() mgl64.Vec3 {
	n, _ := common.NormalizeOrZero(q.HalfU.Cross(q.HalfV))
	return n
}

func (q *Quad) IntersectRay(r Ray) []Hit {
	n := q.Normal()
	t, ok := intersectPlane(r, q.Center, n, q.FrontOnly)
	if !ok {
		return nil
	}
	p := r.At(t)
	local := p.Sub(q.Center)
	if !withinAxis(local, q.HalfU) || !withinAxis(local, q.HalfV) {
		return nil
	}
	return []Hit{{Surface: q, Point: p, Normal: n, Distance: t}}
}

func (q *Quad) Visible() bool       { return !q.Hidden }
func (q *Quad) Children() []Surface { return nil }

// Triangle is a single triangle with vertices in counter-clockwise front-face order.
type Triangle struct {
	A, B, C   mgl64.Vec3
	Hidden    bool
	FrontOnly bool
}

var _ Surface = &Triangle{}

// IntersectRay uses the Möller-Trumbore algorithm.
func (tr *Triangle) IntersectRay(r Ray) []Hit {
	e1 := tr.B.Sub(tr.A)
	e2 := tr.C.Sub(tr.A)
	pv := r.Direction.Cross(e2)
	det := e1.Dot(pv)
	if math.Abs(det) < hitEpsilon || (tr.FrontOnly && det < 0) {
		return nil
	}
	invDet := 1 / det
	tv := r.Origin.Sub(tr.A)
	u := tv.Dot(pv) * invDet
	if u < 0 || u > 1 {
		return nil
	}
	qv := tv.Cross(e1)
	v := r.Direction.Dot(qv) * invDet
	if v < 0 || u+v > 1 {
		return nil
	}
	t := e2.Dot(qv) * invDet
	if t < hitEpsilon {
		return nil
	}
	n, _ := common.NormalizeOrZero(e1.Cross(e2))
	return []Hit{{Surface: tr, Point: r.At(t), Normal: n, Distance: t}}
}

func (tr *Triangle) Visible() bool       { return !tr.Hidden }
func (tr *Triangle) Children() []Surface { return nil }

// Box is a solid box centered at Center with extents ±HalfSize, rotated by Yaw radians about +Y.
// Only the entry face is reported.
type Box struct {
	Center   mgl64.Vec3
	HalfSize mgl64.Vec3
	Yaw      float64
	Hidden   bool
}

var _ Surface = &Box{}

func (b *Box) IntersectRay(r Ray) []Hit {
	toLocal := mgl64.Rotate3DY(-b.Yaw)
	origin := toLocal.Mul3x1(r.Origin.Sub(b.Center))
	dir := toLocal.Mul3x1(r.Direction)

	tMin, tMax := math.Inf(-1), math.Inf(1)
	axis, sign := -1, 0.0
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < hitEpsilon {
			if origin[i] < -b.HalfSize[i] || origin[i] > b.HalfSize[i] {
				return nil
			}
			continue
		}
		inv := 1 / dir[i]
		t0 := (-b.HalfSize[i] - origin[i]) * inv
		t1 := (b.HalfSize[i] - origin[i]) * inv
		s := -1.0
		if t0 > t1 {
			t0, t1 = t1, t0
			s = 1
		}
		if t0 > tMin {
			tMin, axis, sign = t0, i, s
		}
		tMax = math.Min(tMax, t1)
		if tMin > tMax {
			return nil
		}
	}
	if axis < 0 || tMin < hitEpsilon {
		// Origin inside the box or the box is behind the ray.
		return nil
	}

	var localNormal mgl64.Vec3
	localNormal[axis] = sign
	normal := mgl64.Rotate3DY(b.Yaw).Mul3x1(localNormal)
	return []Hit{{Surface: b, Point: r.At(tMin), Normal: normal, Distance: tMin}}
}

func (b *Box) Visible() bool       { return !b.Hidden }
func (b *Box) Children() []Surface { return nil }

// Group has no geometry of its own; it only carries children.
type Group struct {
	Members []Surface
	Hidden  bool
}

var _ Surface = &Group{}

func (g *Group) IntersectRay(Ray) []Hit { return nil }
func (g *Group) Visible() bool         { return !g.Hidden }
func (g *Group) Children() []Surface   { return g.Members }

// intersectPlane returns the ray parameter where r meets the plane through point with normal n.
func intersectPlane(r Ray, point, n mgl64.Vec3, frontOnly bool) (float64, bool) {
	denom := n.Dot(r.Direction)
	if math.Abs(denom) < hitEpsilon || (frontOnly && denom > 0) {
		return 0, false
	}
	t := point.Sub(r.Origin).Dot(n) / denom
	if t < hitEpsilon {
		return 0, false
	}
	return t, true
}

// withinAxis reports whether local lies inside the slab spanned by ±half.
func withinAxis(local, half mgl64.Vec3) bool {
	l2 := half.Dot(half)
	if l2 == 0 {
		return false
	}
	return math.Abs(local.Dot(half)) <= l2*(1+1e-9)
}
