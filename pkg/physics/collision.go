// pkg/physics/collision.go
package physics

// Sphere represents a spherical collision volume
type Sphere struct {
	Center Vec3
	Radius float64
}

// Collides checks if two spheres overlap
func (s Sphere) Collides(other Sphere) bool {
	return s.Center.Sub(other.Center).Len() < s.Radius+other.Radius
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       Vec3
	Penetration  float64
	ContactPoint Vec3
}

// CheckCollision performs detailed collision detection between two spheres
func CheckCollision(a, b Sphere) CollisionResult {
	normal := b.Center.Sub(a.Center)
	distance := normal.Len()

	if distance > a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	penetration := a.Radius + b.Radius - distance

	// Coincident centers have no defined normal; push along +Y.
	if distance == 0 {
		normal = AxisY
	} else {
		normal = normal.Mul(1 / distance)
	}
	contactPoint := a.Center.Add(normal.Mul(a.Radius))

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  penetration,
		ContactPoint: contactPoint,
	}
}

// CheckContainment tests a sphere against the inside of a hollow shell.
// The result collides once the sphere reaches the shell surface; Normal
// points outward from the shell center.
func CheckContainment(shell, s Sphere) CollisionResult {
	offset := s.Center.Sub(shell.Center)
	distance := offset.Len()
	reach := distance + s.Radius

	if reach < shell.Radius {
		return CollisionResult{Collided: false}
	}

	normal := AxisY
	if distance > 0 {
		normal = offset.Mul(1 / distance)
	}

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  reach - shell.Radius,
		ContactPoint: shell.Center.Add(normal.Mul(shell.Radius)),
	}
}

// Box is an axis-aligned box given by its center and half extents
type Box struct {
	Center Vec3
	Half   Vec3
}

// Contains reports whether point lies inside the box (min inclusive, max exclusive)
func (b Box) Contains(point Vec3) bool {
	for i := 0; i < 3; i++ {
		if point[i] < b.Center[i]-b.Half[i] || point[i] >= b.Center[i]+b.Half[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether two boxes overlap
func (b Box) Intersects(other Box) bool {
	for i := 0; i < 3; i++ {
		if other.Center[i]-other.Half[i] > b.Center[i]+b.Half[i] ||
			other.Center[i]+other.Half[i] < b.Center[i]-b.Half[i] {
			return false
		}
	}
	return true
}

// BoxAround returns the cube of half extent r centered on point
func BoxAround(point Vec3, r float64) Box {
	return Box{Center: point, Half: Vec3{r, r, r}}
}

// minOctantHalf is the smallest octant half extent that still subdivides
const minOctantHalf = 1e-3

// Octree for spatial partitioning
type Octree struct {
	Boundary Box
	Capacity int
	Points   []Vec3
	Objects  []interface{}
	Divided  bool
	Children [8]*Octree
}

// NewOctree creates a new octree with the given boundary and capacity
func NewOctree(boundary Box, capacity int) *Octree {
	return &Octree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vec3, 0, capacity),
		Objects:  make([]interface{}, 0, capacity),
	}
}

// Insert stores object at point. It returns false if point lies outside
// the tree boundary.
func (ot *Octree) Insert(point Vec3, object interface{}) bool {
	if !ot.Boundary.Contains(point) {
		return false
	}

	// Tiny octants keep extra points rather than splitting forever on
	// coincident positions.
	if !ot.Divided && (len(ot.Points) < ot.Capacity || ot.Boundary.Half[0] < minOctantHalf) {
		ot.Points = append(ot.Points, point)
		ot.Objects = append(ot.Objects, object)
		return true
	}

	if !ot.Divided {
		ot.Subdivide()
	}

	for _, child := range ot.Children {
		if child.Insert(point, object) {
			return true
		}
	}
	return false
}

// Subdivide splits the octree into eight octants
func (ot *Octree) Subdivide() {
	half := ot.Boundary.Half.Mul(0.5)
	for i := range ot.Children {
		offset := Vec3{-half[0], -half[1], -half[2]}
		if i&1 != 0 {
			offset[0] = half[0]
		}
		if i&2 != 0 {
			offset[1] = half[1]
		}
		if i&4 != 0 {
			offset[2] = half[2]
		}
		ot.Children[i] = NewOctree(Box{Center: ot.Boundary.Center.Add(offset), Half: half}, ot.Capacity)
	}
	ot.Divided = true
}

// Query returns all objects whose points lie within area
func (ot *Octree) Query(area Box) []interface{} {
	found := make([]interface{}, 0)

	if !ot.Boundary.Intersects(area) {
		return found
	}

	for i, point := range ot.Points {
		if area.Contains(point) {
			found = append(found, ot.Objects[i])
		}
	}

	if !ot.Divided {
		return found
	}

	for _, child := range ot.Children {
		found = append(found, child.Query(area)...)
	}

	return found
}

// Clear empties the tree, keeping its boundary and capacity
func (ot *Octree) Clear() {
	ot.Points = ot.Points[:0]
	ot.Objects = ot.Objects[:0]
	ot.Divided = false
	ot.Children = [8]*Octree{}
}
