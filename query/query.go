// Package query selects store items with expr-lang boolean expressions.
//
// An expression sees one item at a time through the variables
//
//	group, subgroup, item  the names leading to the item
//	kind                   the value's kind: "string", "int", ...
//	value                  the value as plain Go data, see ir.Value.ToGo
//	literal                the value's literal text
//
// so that `kind == "int" && value > 50` selects integer items above 50.  The
// function container(kind) reports whether kind is a container kind.
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/filesave/encode"
	"github.com/signadot/filesave/ir"
	"github.com/signadot/filesave/store"
)

// Query is a compiled expression.  It may be run any number of times.
type Query struct {
	src string
	prg *vm.Program
}

// Match is an item a Query selected.
type Match struct {
	Group, Subgroup, Item string
	Value                 *ir.Value
}

func (m *Match) String() string {
	lit, err := encode.Literal(m.Value)
	if err != nil {
		lit = fmt.Sprintf("<%v>", err)
	}
	return m.Group + "/" + m.Subgroup + "/" + m.Item + " " + lit
}

func sampleEnv() map[string]any {
	return map[string]any{
		"group":    "",
		"subgroup": "",
		"item":     "",
		"kind":     "",
		"value":    any(nil),
		"literal":  "",
	}
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(sampleEnv()),
		expr.AsBool(),
		expr.Function("container", func(params ...any) (any, error) {
			k := params[0].(string)
			return k == ir.SequenceKind.String() || k == ir.MappingKind.String() || k == ir.TupleKind.String(), nil
		},
			new(func(string) bool)),
	}
}

// Compile compiles src, which must evaluate to a boolean.
func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", src, err)
	}
	return &Query{src: src, prg: prg}, nil
}

func (q *Query) String() string {
	return q.src
}

// Match reports whether the item at group/subgroup/item holding v is
// selected.
func (q *Query) Match(group, subgroup, item string, v *ir.Value) (bool, error) {
	env := sampleEnv()
	env["group"] = group
	env["subgroup"] = subgroup
	env["item"] = item
	env["kind"] = v.Kind.String()
	env["value"] = v.ToGo()
	lit, err := encode.Literal(v)
	if err != nil {
		lit = ""
	}
	env["literal"] = lit
	out, err := expr.Run(q.prg, env)
	if err != nil {
		return false, fmt.Errorf("query %q on %s/%s/%s: %w", q.src, group, subgroup, item, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("query %q gave %T, not bool", q.src, out)
	}
	return b, nil
}

// Run returns the items of s the query selects, in document order.
func (q *Query) Run(s *store.Store) ([]Match, error) {
	var res []Match
	err := s.Walk(func(e *store.Entry) error {
		if e.Level != store.ItemLevel {
			return nil
		}
		ok, err := q.Match(e.Group, e.Subgroup, e.Item, e.Value)
		if err != nil {
			return err
		}
		if ok {
			res = append(res, Match{Group: e.Group, Subgroup: e.Subgroup, Item: e.Item, Value: e.Value})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
