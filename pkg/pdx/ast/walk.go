package ast

import "errors"

// SkipChildren can be returned by a WalkFunc to skip the children of the
// current container.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node visited by Walk. depth is 0 for the root.
type WalkFunc func(v Value, depth int) error

// Walk traverses the tree rooted at v depth-first in pre-order and returns the
// first error returned by fn, other than SkipChildren.
func Walk(v Value, fn WalkFunc) error {
	return walk(v, 0, fn)
}

func walk(v Value, depth int, fn WalkFunc) error {
	if err := fn(v, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	c, ok := v.(Container)
	if !ok {
		return nil
	}
	for _, child := range c.Values() {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the tree rooted at v.
func Count(v Value) int {
	n := 0
	_ = Walk(v, func(Value, int) error {
		n++
		return nil
	})
	return n
}
