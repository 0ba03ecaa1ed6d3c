// Package scene is the retained 3D scene graph the render loop draws:
// transform nodes, triangle meshes, point clouds, camera-facing sprites,
// their geometries, materials, textures and per-material uniforms.
//
// A scene graph is owned by exactly one render context and is only mutated
// from that context's frame loop goroutine.
//
// Example:
//
//	root := scene.NewScene()
//	earth := scene.NewMesh("earth", scene.NewSphereGeometry(1, 64, 64), mat)
//	root.Add(earth)
//	earth.Rotation.Y += 0.001
package scene

// Scene is the root of a scene graph.
type Scene struct {
	Node
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	s := &Scene{}
	s.init(s, "scene")
	return s
}

// Find returns the first object with the given name, depth first.
func (s *Scene) Find(name string) Object {
	var found Object
	s.Traverse(func(o Object) {
		if found == nil && o.Base().Name == name {
			found = o
		}
	})
	return found
}

// Uniforms returns every uniform set reachable from the root, in traversal
// order. Materials shared by several objects appear once.
func (s *Scene) Uniforms() []*Uniforms {
	var out []*Uniforms
	seen := make(map[*Uniforms]struct{})
	s.Traverse(func(o Object) {
		m := materialOf(o)
		if m == nil {
			return
		}
		u := m.Uniforms()
		if u == nil {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	})
	return out
}

func materialOf(o Object) Material {
	switch v := o.(type) {
	case *Mesh:
		if v.Material != nil {
			return v.Material
		}
	case *Points:
		if v.Material != nil {
			return v.Material
		}
	case *Sprite:
		if v.Material != nil {
			return v.Material
		}
	}
	return nil
}
