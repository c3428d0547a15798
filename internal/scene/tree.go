// Package scene is an in-memory object tree with parent edges and
// local transforms.
package scene

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/jwebster45206/schematic-engine/pkg/geom"
	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

// Node is one object in the tree.
type Node struct {
	id        uuid.UUID
	name      string
	template  string
	component schematic.Component
	parent    *Node
	children  []*Node
	local     geom.Transform
}

func (n *Node) ID() uuid.UUID                  { return n.id }
func (n *Node) Name() string                   { return n.name }
func (n *Node) SetName(name string)            { n.name = name }
func (n *Node) Component() schematic.Component { return n.component }
func (n *Node) Parent() *Node                  { return n.parent }
func (n *Node) Local() geom.Transform          { return n.local }

// Template is the catalog template the node was instantiated from, empty
// for bare objects.
func (n *Node) Template() string { return n.template }

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Tree holds every object created for a build. Nodes without a parent are
// roots.
type Tree struct {
	nodes []*Node
}

var _ schematic.Scene = (*Tree)(nil)

func New() *Tree {
	return &Tree{}
}

// NewObject creates a root-level node.
func (t *Tree) NewObject(name string, c schematic.Component) schematic.Object {
	return t.Add(name, "", c)
}

// Add creates a root-level node recording the template it came from.
func (t *Tree) Add(name, template string, c schematic.Component) *Node {
	n := &Node{
		id:        uuid.New(),
		name:      name,
		template:  template,
		component: c,
		local:     geom.IdentityTransform,
	}
	t.nodes = append(t.nodes, n)
	return n
}

func (t *Tree) SetParent(obj, parent schematic.Object) {
	n := node(obj)
	t.unlink(n)
	if parent == nil {
		return
	}
	p := node(parent)
	for a := p; a != nil; a = a.parent {
		if a == n {
			panic(fmt.Sprintf("scene: parenting %q under %q makes a cycle", n.name, p.name))
		}
	}
	n.parent = p
	p.children = append(p.children, n)
}

func (t *Tree) DetachParent(obj schematic.Object) {
	t.unlink(node(obj))
}

func (t *Tree) SetLocalTransform(obj schematic.Object, tr geom.Transform) {
	node(obj).local = tr
}

// WorldTransform composes local transforms from the root down.
func (t *Tree) WorldTransform(obj schematic.Object) geom.Transform {
	n := node(obj)
	world := n.local
	for p := n.parent; p != nil; p = p.parent {
		world = geom.Compose(p.local, world)
	}
	return world
}

// Roots returns the parentless nodes in creation order.
func (t *Tree) Roots() []*Node {
	var roots []*Node
	for _, n := range t.nodes {
		if n.parent == nil {
			roots = append(roots, n)
		}
	}
	return roots
}

// Len is the number of nodes ever created.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Walk visits every node depth first, roots in creation order.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		fn(n, depth)
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	for _, r := range t.Roots() {
		visit(r, 0)
	}
}

func (t *Tree) unlink(n *Node) {
	if n.parent == nil {
		return
	}
	p := n.parent
	p.children = slices.DeleteFunc(p.children, func(c *Node) bool { return c == n })
	n.parent = nil
}

func node(obj schematic.Object) *Node {
	n, ok := obj.(*Node)
	if !ok {
		panic(fmt.Sprintf("scene: object %T does not belong to this tree", obj))
	}
	return n
}
