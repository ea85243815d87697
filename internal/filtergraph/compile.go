// Package filtergraph compiles a composition tree into the linear form
// ffmpeg expects: an ordered input list, a filter_complex program, and the
// stream to map into the output file.
package filtergraph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tilecast/tilecast/internal/compose"
)

// Ref names an ffmpeg stream inside the filter graph: either a bare input
// slot index ("0", "1", ...) or a generated intermediate name ("s0", "s1", ...).
type Ref string

// Bracket renders the reference in ffmpeg's pad syntax, e.g. "[s3]".
func (r Ref) Bracket() string {
	return "[" + string(r) + "]"
}

// Graph is the compiled form of one composition tree.
type Graph struct {
	// Inputs holds one entry per clip occurrence, in first-encounter order.
	// The slice index is the ffmpeg input slot. Occurrences are not
	// deduplicated: the same file appearing twice gets two slots, because
	// each occurrence is a separate decode context.
	Inputs []string
	// Filters holds the filter_complex expressions in dependency order;
	// expression i declares stream si.
	Filters []string
	// Output is the stream the final output file should map.
	Output Ref
}

// EmptyTreeError reports a stack node that cannot produce an output stream
// because it has no children.
type EmptyTreeError struct {
	Kind compose.Kind
}

func (e *EmptyTreeError) Error() string {
	return fmt.Sprintf("%s has no children to compose", e.Kind)
}

// compiler is the per-call traversal state. A fresh one is created for
// every Compile invocation, so concurrent compiles of independent trees
// share nothing.
type compiler struct {
	inputs  []string
	filters []string
}

// Compile walks the tree once, depth first and left to right, assigning
// input slots to clips and emitting filter expressions post-order so every
// expression only references streams declared before it.
func Compile(root *compose.Node) (*Graph, error) {
	c := &compiler{}
	out, err := c.visit(root)
	if err != nil {
		return nil, err
	}
	return &Graph{Inputs: c.inputs, Filters: c.filters, Output: out}, nil
}

// nextStream names the stream the next emitted filter will declare. The
// counter is simply the number of filters emitted so far, which keeps
// stream names unique and monotonic across one compile.
func (c *compiler) nextStream() Ref {
	return Ref("s" + strconv.Itoa(len(c.filters)))
}

func (c *compiler) visit(n *compose.Node) (Ref, error) {
	switch n.Kind {
	case compose.KindClip:
		slot := len(c.inputs)
		c.inputs = append(c.inputs, n.Src)
		return Ref(strconv.Itoa(slot)), nil

	case compose.KindHStack, compose.KindVStack:
		return c.visitStack(n)

	case compose.KindZStack:
		return c.visitLayers(n)

	default:
		return "", fmt.Errorf("unknown node kind %d", n.Kind)
	}
}

// visitStack emits a single hstack/vstack expression consuming all child
// streams at once.
func (c *compiler) visitStack(n *compose.Node) (Ref, error) {
	if len(n.Children) == 0 {
		return "", &EmptyTreeError{Kind: n.Kind}
	}

	var pads strings.Builder
	for _, child := range n.Children {
		ref, err := c.visit(child)
		if err != nil {
			return "", err
		}
		pads.WriteString(ref.Bracket())
	}

	out := c.nextStream()
	c.filters = append(c.filters, fmt.Sprintf("%s%s=inputs=%d%s",
		pads.String(), n.Kind, len(n.Children), out.Bracket()))
	return out, nil
}

// visitLayers folds a ZStack left to right: the first child is the running
// composite and every later child is overlaid onto it at that child's own
// offset. A single-child ZStack degenerates to the child itself.
func (c *compiler) visitLayers(n *compose.Node) (Ref, error) {
	if len(n.Children) == 0 {
		return "", &EmptyTreeError{Kind: n.Kind}
	}

	main, err := c.visit(n.Children[0])
	if err != nil {
		return "", err
	}

	for _, child := range n.Children[1:] {
		layer, err := c.visit(child)
		if err != nil {
			return "", err
		}
		out := c.nextStream()
		c.filters = append(c.filters, fmt.Sprintf("%s%soverlay=%s:%s%s",
			main.Bracket(), layer.Bracket(),
			formatCoord(child.Offset.X), formatCoord(child.Offset.Y),
			out.Bracket()))
		main = out
	}
	return main, nil
}

// formatCoord renders an offset coordinate without a forced decimal point,
// so whole-pixel offsets come out as "100" rather than "100.000000".
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
