package backend

import (
	"math"
	"sort"
)

// Vec3 is a point in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects 3D points onto the 2D canvas plane.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, Zoom: 1.0}
}

// rotate applies the camera's euler rotations to a point.
func (c *Camera) rotate(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a 3D point to subpixel coordinates plus depth.
// The boolean reports whether the point lies on screen.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	minDim := math.Min(float64(sw), float64(sh))
	px := minDim / 3.0
	sx := int(rot.X*scale*px) + sw/2
	sy := int(-rot.Y*scale*px) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type segment struct {
	x1, y1, x2, y2 int
	depth          float64
}

// projectPath projects a polyline and returns its visible segments sorted
// back to front (painter's algorithm).
func projectPath(cam *Camera, pts []Vec3, sw, sh int) []segment {
	segs := make([]segment, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		x1, y1, d1, v1 := cam.Project(pts[i-1], sw, sh)
		x2, y2, d2, v2 := cam.Project(pts[i], sw, sh)
		if v1 || v2 {
			segs = append(segs, segment{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].depth < segs[j].depth })
	return segs
}
