package gqlgraph

import (
	"github.com/graphql-go/graphql/language/ast"

	"github.com/reveald/federation-querygraph/schema"
)

type appliedDirective struct {
	node *ast.Directive
}

func (d *appliedDirective) Name() string { return d.node.Name.Value }

func (d *appliedDirective) Arguments() map[string]any {
	out := make(map[string]any, len(d.node.Arguments))
	for _, arg := range d.node.Arguments {
		out[arg.Name.Value] = convertValue(arg.Value)
	}
	return out
}

func (d *appliedDirective) StringArg(name string) string {
	if v, _ := d.Arguments()[name].(string); true {
		return v
	}
	return ""
}

func (d *appliedDirective) BoolArg(name string, def bool) bool {
	if v, ok := d.Arguments()[name].(bool); ok {
		return v
	}
	return def
}

func hasDirective(directives []*ast.Directive, name string) bool {
	for _, d := range directives {
		if d.Name.Value == name {
			return true
		}
	}
	return false
}

func appliedDirectivesNamed(directives []*ast.Directive, name string) []schema.AppliedDirective {
	var out []schema.AppliedDirective
	for _, d := range directives {
		if d.Name.Value == name {
			out = append(out, &appliedDirective{node: d})
		}
	}
	return out
}

func convertValue(v ast.Value) any {
	switch v := v.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.IntValue:
		return v.Value
	case *ast.FloatValue:
		return v.Value
	case *ast.EnumValue:
		return v.Value
	case *ast.ListValue:
		out := make([]any, len(v.Values))
		for i, e := range v.Values {
			out[i] = convertValue(e)
		}
		return out
	case *ast.ObjectValue:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Name.Value] = convertValue(f.Value)
		}
		return out
	default:
		return nil
	}
}
