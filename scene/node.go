package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Object is anything that can live in the scene graph.
// Concrete types embed Node and return it from Base.
type Object interface {
	Base() *Node
}

// Node carries the transform and hierarchy shared by every scene object.
//
// The local matrix is Translate(Position) · Rotation · Orientation · Scale.
// Rotation is the animated Euler triple the frame loop writes to;
// Orientation is a fixed basis set once at construction (see LookAt).
type Node struct {
	Name        string
	Position    mgl64.Vec3
	Rotation    Euler
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
	Visible     bool

	self     Object
	parent   *Node
	children []Object
}

func (n *Node) init(self Object, name string) {
	n.Name = name
	n.Orientation = mgl64.QuatIdent()
	n.Scale = mgl64.Vec3{1, 1, 1}
	n.Visible = true
	n.self = self
}

// Base returns n. It lets *Node satisfy Object for embedding types.
func (n *Node) Base() *Node { return n }

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children in insertion order.
// The returned slice must not be modified.
func (n *Node) Children() []Object { return n.children }

// Add attaches children, detaching each from any previous parent first.
func (n *Node) Add(children ...Object) {
	for _, c := range children {
		cn := c.Base()
		if cn == n {
			continue
		}
		if cn.parent != nil {
			cn.parent.Remove(c)
		}
		cn.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches a direct child. It reports whether the child was found.
func (n *Node) Remove(child Object) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.Base().parent = nil
	return true
}

// Traverse calls fn for n's owner and every descendant, depth first.
func (n *Node) Traverse(fn func(Object)) {
	if n.self != nil {
		fn(n.self)
	}
	for _, c := range n.children {
		c.Base().Traverse(fn)
	}
}

// LocalMatrix composes the node's own transform.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	m := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	m = m.Mul4(n.Rotation.Matrix())
	m = m.Mul4(n.Orientation.Mat4())
	return m.Mul4(mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z()))
}

// WorldMatrix composes the transforms from the root down to n.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// LookAt sets Orientation so that the local +Z axis points from the node
// position toward target, both expressed in the parent's space.
// Flat geometry built in the XY plane then faces along that line.
func (n *Node) LookAt(target mgl64.Vec3) {
	dir := target.Sub(n.Position)
	if dir.Len() == 0 {
		return
	}
	n.Orientation = mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, dir.Normalize())
}

// Group is a transform-only node used to move several objects together.
type Group struct {
	Node
}

// NewGroup returns an empty group.
func NewGroup(name string) *Group {
	g := &Group{}
	g.init(g, name)
	return g
}
