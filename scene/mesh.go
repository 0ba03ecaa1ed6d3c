package scene

// Mesh is a triangle renderable.
type Mesh struct {
	Node
	Geometry *Geometry
	Material Material
}

// NewMesh returns a mesh at the origin.
func NewMesh(name string, g *Geometry, m Material) *Mesh {
	mesh := &Mesh{Geometry: g, Material: m}
	mesh.init(mesh, name)
	return mesh
}

// Points renders every vertex of its geometry as a round point sprite.
type Points struct {
	Node
	Geometry *Geometry
	Material Material
}

// NewPoints returns a point cloud at the origin.
func NewPoints(name string, g *Geometry, m Material) *Points {
	p := &Points{Geometry: g, Material: m}
	p.init(p, name)
	return p
}

// Sprite is a textured quad that always faces the camera. Scale.X and
// Scale.Y give its world-space width and height.
type Sprite struct {
	Node
	Material *SpriteMaterial
}

// NewSprite returns a unit sprite at the origin.
func NewSprite(name string, m *SpriteMaterial) *Sprite {
	s := &Sprite{Material: m}
	s.init(s, name)
	return s
}
