package filtergraph

import "strings"

// Assemble turns a compiled graph into the ffmpeg argument list:
//
//	-i <path0> -i <path1> ... -filter_complex "<e0>;<e1>;..." -map [<ref>]
//
// File paths are passed through untouched; quoting for shell display is the
// caller's concern.
//
// A graph with no filters (a bare clip) still needs a named stream for
// -map, so a null pass-through stage is synthesized for it.
func Assemble(inputs []string, filters []string, output Ref) []string {
	args := make([]string, 0, 2*len(inputs)+4)
	for _, in := range inputs {
		args = append(args, "-i", in)
	}

	if len(filters) == 0 {
		// -map cannot target a raw input pad by bracket reference, so
		// route the lone input through a null filter to name it.
		filters = []string{passthroughExpr(output)}
		output = "s0"
	}

	args = append(args,
		"-filter_complex", strings.Join(filters, ";"),
		"-map", output.Bracket(),
	)
	return args
}

// passthroughExpr builds the synthetic expression for a filterless graph,
// e.g. "[0]null[s0]".
func passthroughExpr(input Ref) string {
	return input.Bracket() + "null" + Ref("s0").Bracket()
}

// Args is shorthand for assembling the graph's own triple.
func (g *Graph) Args() []string {
	return Assemble(g.Inputs, g.Filters, g.Output)
}
