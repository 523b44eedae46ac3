package loader

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/ezrec/bitasm/isa"
)

// definition wraps an isa definition object inside a script.
type definition struct {
	kind string
	item any
}

var _ starlark.Value = (*definition)(nil)

func (d *definition) String() string {
	switch item := d.item.(type) {
	case isa.OpPart:
		return fmt.Sprintf("op(%d, %d, %d)", item.Value, item.Range.Start, item.Range.Stop)
	case isa.ImmPart:
		return fmt.Sprintf("part(%d, %d, %d)", item.Offset, item.Range.Start, item.Range.Stop)
	case *isa.Register:
		return fmt.Sprintf("reg(%d, %d, %d)", item.Index, item.Range.Start, item.Range.Stop)
	case *isa.Immediate:
		return fmt.Sprintf("imm(%d, %d)", item.Index, item.Width)
	}
	return "<" + d.kind + ">"
}

func (d *definition) Type() string          { return d.kind }
func (d *definition) Freeze()               {}
func (d *definition) Truth() starlark.Bool  { return starlark.True }
func (d *definition) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", d.kind) }

// items unpacks a list of definitions of one Go type.
func items[T any](builtin, what string, list *starlark.List) (out []T, err error) {
	if list == nil {
		return
	}
	for n := range list.Len() {
		d, ok := list.Index(n).(*definition)
		var item T
		if ok {
			item, ok = d.item.(T)
		}
		if !ok {
			err = ErrArgument{Builtin: builtin, Err: fmt.Errorf("%v[%d] is %v, not %v", what, n, list.Index(n).Type(), what)}
			return
		}
		out = append(out, item)
	}
	return
}

// tokens converts a list or tuple of strings and ints to tokens.
func tokens(v starlark.Value) (out []string, err error) {
	seq, ok := v.(starlark.Indexable)
	if _, isString := v.(starlark.String); !ok || isString {
		err = ErrExpansionResult
		return
	}
	for n := range seq.Len() {
		switch tok := seq.Index(n).(type) {
		case starlark.String:
			out = append(out, string(tok))
		case starlark.Int:
			out = append(out, tok.String())
		default:
			err = ErrExpansionResult
			return
		}
	}
	return
}
