package filtergraph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilecast/tilecast/internal/compose"
)

func TestCompile_SingleOverlay(t *testing.T) {
	tree := compose.ZStack(
		compose.Clip("a.mp4"),
		compose.Clip("b.mp4").At(100, 50),
	)

	g, err := Compile(tree)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.mp4", "b.mp4"}, g.Inputs)
	assert.Equal(t, []string{"[0][1]overlay=100:50[s0]"}, g.Filters)
	assert.Equal(t, Ref("s0"), g.Output)
}

func TestCompile_HStackOfPassthroughLayers(t *testing.T) {
	// Single-child zstacks contribute no overlay expression; their input
	// reference passes straight through to the enclosing hstack.
	tree := compose.HStack(
		compose.ZStack(compose.Clip("a.mp4")),
		compose.ZStack(compose.Clip("b.mp4")),
	)

	g, err := Compile(tree)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.mp4", "b.mp4"}, g.Inputs)
	assert.Equal(t, []string{"[0][1]hstack=inputs=2[s0]"}, g.Filters)
	assert.Equal(t, Ref("s0"), g.Output)
}

func TestCompile_GridTwoByTwo(t *testing.T) {
	tree := compose.VStack(
		compose.HStack(compose.Clip("a"), compose.Clip("b")),
		compose.HStack(compose.Clip("c"), compose.Clip("d")),
	)

	g, err := Compile(tree)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, g.Inputs)
	assert.Equal(t, []string{
		"[0][1]hstack=inputs=2[s0]",
		"[2][3]hstack=inputs=2[s1]",
		"[s0][s1]vstack=inputs=2[s2]",
	}, g.Filters)
	assert.Equal(t, Ref("s2"), g.Output)
}

func TestCompile_FlatStackEmitsOneExpression(t *testing.T) {
	for _, kind := range []struct {
		name  string
		build func(...*compose.Node) *compose.Node
	}{
		{"hstack", compose.HStack},
		{"vstack", compose.VStack},
	} {
		t.Run(kind.name, func(t *testing.T) {
			for n := 2; n <= 6; n++ {
				leaves := make([]*compose.Node, n)
				for i := range leaves {
					leaves[i] = compose.Clip(fmt.Sprintf("clip%d.mp4", i))
				}

				g, err := Compile(kind.build(leaves...))
				require.NoError(t, err)

				require.Len(t, g.Filters, 1)
				assert.Contains(t, g.Filters[0], fmt.Sprintf("%s=inputs=%d", kind.name, n))
				assert.Len(t, g.Inputs, n)
			}
		})
	}
}

func TestCompile_LayersEmitNMinusOneOverlays(t *testing.T) {
	for n := 2; n <= 5; n++ {
		layers := make([]*compose.Node, n)
		for i := range layers {
			layers[i] = compose.Clip(fmt.Sprintf("layer%d.mp4", i)).At(float64(i*10), 0)
		}

		g, err := Compile(compose.ZStack(layers...))
		require.NoError(t, err)
		require.Len(t, g.Filters, n-1)

		// Each overlay consumes the previous accumulated stream and the
		// next layer's input, in order.
		main := Ref("0")
		for i, expr := range g.Filters {
			layer := Ref(fmt.Sprintf("%d", i+1))
			out := Ref(fmt.Sprintf("s%d", i))
			assert.True(t, strings.HasPrefix(expr, main.Bracket()+layer.Bracket()),
				"overlay %d should consume %s and %s: %s", i, main, layer, expr)
			assert.True(t, strings.HasSuffix(expr, out.Bracket()), "overlay %d: %s", i, expr)
			main = out
		}
		assert.Equal(t, main, g.Output)
	}
}

func TestCompile_StreamNamesUnique(t *testing.T) {
	tree := compose.ZStack(
		compose.VStack(
			compose.HStack(compose.Clip("a"), compose.Clip("b")),
			compose.HStack(compose.Clip("c"), compose.Clip("d")),
		),
		compose.Clip("watermark.png").At(10, 10),
		compose.ZStack(compose.Clip("e"), compose.Clip("f")),
	)

	g, err := Compile(tree)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i, expr := range g.Filters {
		want := fmt.Sprintf("[s%d]", i)
		assert.True(t, strings.HasSuffix(expr, want), "expression %d should declare s%d: %s", i, i, expr)
		require.False(t, seen[want], "stream %s declared twice", want)
		seen[want] = true
	}
}

func TestCompile_DuplicatePathsGetOwnSlots(t *testing.T) {
	// The same file as two leaves is two decode contexts, not one.
	tree := compose.HStack(
		compose.Clip("a.mp4"),
		compose.Clip("b.mp4"),
		compose.Clip("a.mp4"),
	)

	g, err := Compile(tree)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.mp4", "b.mp4", "a.mp4"}, g.Inputs)
	assert.Equal(t, []string{"[0][1][2]hstack=inputs=3[s0]"}, g.Filters)
}

func TestCompile_BareClip(t *testing.T) {
	g, err := Compile(compose.Clip("solo.mp4"))
	require.NoError(t, err)

	assert.Equal(t, []string{"solo.mp4"}, g.Inputs)
	assert.Empty(t, g.Filters)
	assert.Equal(t, Ref("0"), g.Output)
}

func TestCompile_SingleChildZStackPassesThrough(t *testing.T) {
	g, err := Compile(compose.ZStack(compose.Clip("only.mp4")))
	require.NoError(t, err)

	assert.Empty(t, g.Filters)
	assert.Equal(t, Ref("0"), g.Output)
}

func TestCompile_EmptyStackFails(t *testing.T) {
	for _, tree := range []*compose.Node{
		compose.HStack(),
		compose.VStack(),
		compose.ZStack(),
		// Nested: the empty stack is only discovered mid-traversal.
		compose.HStack(compose.Clip("a.mp4"), compose.VStack()),
	} {
		g, err := Compile(tree)
		assert.Nil(t, g)

		var empty *EmptyTreeError
		require.ErrorAs(t, err, &empty)
	}
}

func TestCompile_OffsetFormatting(t *testing.T) {
	tree := compose.ZStack(
		compose.Clip("bg.mp4"),
		compose.Clip("a.png").At(12.5, -3),
	)

	g, err := Compile(tree)
	require.NoError(t, err)
	assert.Equal(t, []string{"[0][1]overlay=12.5:-3[s0]"}, g.Filters)
}

func TestCompile_OffsetIgnoredOutsideZStack(t *testing.T) {
	// Offsets on hstack/vstack children are inert.
	tree := compose.HStack(
		compose.Clip("a.mp4").At(99, 99),
		compose.Clip("b.mp4"),
	)

	g, err := Compile(tree)
	require.NoError(t, err)
	assert.Equal(t, []string{"[0][1]hstack=inputs=2[s0]"}, g.Filters)
}

func TestCompile_Reentrant(t *testing.T) {
	// State is per call: compiling the same tree twice gives identical
	// results, with no counter bleeding between calls.
	tree := compose.VStack(
		compose.HStack(compose.Clip("a"), compose.Clip("b")),
		compose.Clip("c"),
	)

	first, err := Compile(tree)
	require.NoError(t, err)
	second, err := Compile(tree)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmptyTreeError_Message(t *testing.T) {
	err := &EmptyTreeError{Kind: compose.KindZStack}
	assert.Equal(t, "zstack has no children to compose", err.Error())
}
