// Package scene loads declarative composition files written in HCL and
// builds the composition tree the filtergraph compiler consumes.
//
// A scene file contains exactly one root block, with clip/hstack/vstack/
// zstack blocks nested to any depth:
//
//	hstack {
//	  clip "screen.mp4" {}
//	  zstack {
//	    clip "slides.mp4" {}
//	    clip "logo.png" {
//	      x = 20
//	      y = 20
//	    }
//	  }
//	}
//
// The x/y attributes position a layer when its parent is a zstack; they
// accept expressions over variables passed on the command line, exposed
// under the "var" object.
package scene

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/tilecast/tilecast/internal/compose"
)

// compositionBlocks are the block types that form the tree. Clip carries
// its source path as the block label.
var compositionBlocks = []hcl.BlockHeaderSchema{
	{Type: "clip", LabelNames: []string{"src"}},
	{Type: "hstack"},
	{Type: "vstack"},
	{Type: "zstack"},
}

// rootSchema accepts the composition blocks at the top level of a file.
var rootSchema = &hcl.BodySchema{
	Blocks: compositionBlocks,
}

// nodeSchema accepts nested composition blocks plus the overlay offset
// attributes on the node itself.
var nodeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "x"},
		{Name: "y"},
	},
	Blocks: compositionBlocks,
}

// LoadFile parses a scene file and returns its composition tree. vars
// populates the var.* object available to x/y expressions.
func LoadFile(path string, vars map[string]cty.Value) (*compose.Node, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scene %s: %s", path, diags.Error())
	}
	return buildTree(file.Body, path, vars)
}

// Parse builds a composition tree from in-memory HCL source. filename is
// used in diagnostics only.
func Parse(src []byte, filename string, vars map[string]cty.Value) (*compose.Node, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scene %s: %s", filename, diags.Error())
	}
	return buildTree(file.Body, filename, vars)
}

func buildTree(body hcl.Body, filename string, vars map[string]cty.Value) (*compose.Node, error) {
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vars),
		},
	}

	content, diags := body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid scene %s: %s", filename, diags.Error())
	}

	if len(content.Blocks) != 1 {
		return nil, fmt.Errorf("scene %s must contain exactly one root block, found %d", filename, len(content.Blocks))
	}

	return decodeNode(content.Blocks[0], evalCtx)
}

// decodeNode converts one HCL block into a composition node, recursing
// into nested blocks. Child order across the different block types is the
// order they appear in the file, which is what makes zstack layering and
// hstack/vstack juxtaposition deterministic.
func decodeNode(block *hcl.Block, evalCtx *hcl.EvalContext) (*compose.Node, error) {
	content, diags := block.Body.Content(nodeSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid %s block at %s: %s", block.Type, block.DefRange, diags.Error())
	}

	var node *compose.Node
	switch block.Type {
	case "clip":
		if len(content.Blocks) > 0 {
			nested := content.Blocks[0]
			return nil, fmt.Errorf("clip %q at %s cannot contain a %s block", block.Labels[0], block.DefRange, nested.Type)
		}
		node = compose.Clip(block.Labels[0])

	case "hstack", "vstack", "zstack":
		children := make([]*compose.Node, 0, len(content.Blocks))
		for _, child := range content.Blocks {
			c, err := decodeNode(child, evalCtx)
			if err != nil {
				return nil, err
			}
			children = append(children, c)
		}
		switch block.Type {
		case "hstack":
			node = compose.HStack(children...)
		case "vstack":
			node = compose.VStack(children...)
		default:
			node = compose.ZStack(children...)
		}
	}

	x, err := coordAttr(content.Attributes, "x", evalCtx)
	if err != nil {
		return nil, err
	}
	y, err := coordAttr(content.Attributes, "y", evalCtx)
	if err != nil {
		return nil, err
	}
	node.At(x, y)

	return node, nil
}

// coordAttr evaluates an optional numeric attribute, defaulting to 0.
func coordAttr(attrs hcl.Attributes, name string, evalCtx *hcl.EvalContext) (float64, error) {
	attr, ok := attrs[name]
	if !ok {
		return 0, nil
	}

	val, diags := attr.Expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, fmt.Errorf("failed to evaluate %s at %s: %s", name, attr.Range, diags.Error())
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("%s at %s must be a number: %w", name, attr.Range, err)
	}

	f, _ := num.AsBigFloat().Float64()
	return f, nil
}

// ParseVars converts key=value pairs from the command line into scene
// variables. Values that parse as numbers become numbers so they can feed
// x/y expressions directly; everything else stays a string.
func ParseVars(pairs []string) (map[string]cty.Value, error) {
	vars := make(map[string]cty.Value, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid variable %q, expected key=value", pair)
		}
		if num, err := cty.ParseNumberVal(value); err == nil {
			vars[key] = num
		} else {
			vars[key] = cty.StringVal(value)
		}
	}
	return vars, nil
}
