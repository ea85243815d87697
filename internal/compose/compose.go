// Package compose defines the composition tree that describes how media
// clips are arranged: side by side, stacked vertically, or layered on top
// of each other. A tree built here is handed to the filtergraph compiler,
// which never mutates it.
package compose

// Kind identifies the variant of a composition node.
type Kind int

const (
	// KindClip is a leaf referencing one media file.
	KindClip Kind = iota
	// KindHStack juxtaposes its children left to right.
	KindHStack
	// KindVStack juxtaposes its children top to bottom.
	KindVStack
	// KindZStack layers its children; the first child is the base and each
	// subsequent child is overlaid onto the running composite in order.
	KindZStack
)

// String returns the ffmpeg-facing name of the node kind.
func (k Kind) String() string {
	switch k {
	case KindClip:
		return "clip"
	case KindHStack:
		return "hstack"
	case KindVStack:
		return "vstack"
	case KindZStack:
		return "zstack"
	default:
		return "unknown"
	}
}

// Position is a 2-D placement offset in pixels. It only matters on a
// non-first child of a ZStack, where it positions that layer relative to
// the accumulated composite underneath it.
type Position struct {
	X float64
	Y float64
}

// Node is one element of a composition tree. Src is set only for clips;
// Children only for stacks. Child order is significant: it is the
// juxtaposition order for HStack/VStack and the layering order for ZStack.
type Node struct {
	Kind     Kind
	Src      string
	Children []*Node
	Offset   Position
}

// Clip returns a leaf node referencing a media file.
func Clip(src string) *Node {
	return &Node{Kind: KindClip, Src: src}
}

// HStack arranges children side by side, left to right.
// Nil children are skipped, so conditional branches can pass nil.
func HStack(children ...*Node) *Node {
	return &Node{Kind: KindHStack, Children: compact(children)}
}

// VStack arranges children top to bottom.
// Nil children are skipped, so conditional branches can pass nil.
func VStack(children ...*Node) *Node {
	return &Node{Kind: KindVStack, Children: compact(children)}
}

// ZStack layers children back to front. The first child is the base layer;
// each following child is overlaid at its own Offset.
// Nil children are skipped, so conditional branches can pass nil.
func ZStack(children ...*Node) *Node {
	return &Node{Kind: KindZStack, Children: compact(children)}
}

// At sets the node's overlay offset and returns the node for chaining:
//
//	compose.ZStack(base, compose.Clip("logo.png").At(20, 20))
func (n *Node) At(x, y float64) *Node {
	n.Offset = Position{X: x, Y: y}
	return n
}

// If returns node when cond is true and nil otherwise. Stack constructors
// drop nil children, so optional branches collapse out of the tree:
//
//	compose.HStack(screen, compose.If(withCam, camera))
func If(cond bool, node *Node) *Node {
	if cond {
		return node
	}
	return nil
}

// ForEach builds one child node per item, preserving item order:
//
//	compose.VStack(compose.ForEach(files, compose.Clip)...)
func ForEach[T any](items []T, build func(T) *Node) []*Node {
	nodes := make([]*Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, build(item))
	}
	return nodes
}

// Concat splices several child groups into one ordered list, for mixing
// loop-built groups with literal children:
//
//	compose.HStack(compose.Concat(intro, compose.ForEach(files, compose.Clip))...)
func Concat(groups ...[]*Node) []*Node {
	var nodes []*Node
	for _, g := range groups {
		nodes = append(nodes, g...)
	}
	return nodes
}

// compact removes nil entries while preserving order. A fresh slice is
// returned so the caller's slice is never aliased by the tree.
func compact(children []*Node) []*Node {
	kept := make([]*Node, 0, len(children))
	for _, c := range children {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return kept
}
