package grammar

import (
	"github.com/ava12/rulematch/internal/ints"
)

// Reachable returns ids of rules reachable from root in ascending order, root included.
// References to missing rules are not followed.
func Reachable(v View, root int) []int {
	seen := ints.NewSet()
	queue := ints.NewQueue()
	if _, e := v.Rule(root); e == nil {
		seen.Add(root)
		queue.Push(root)
	}

	for !queue.IsEmpty() {
		r, _ := v.Rule(queue.Pop())
		for _, ref := range r.Def.Refs() {
			if seen.Contains(ref) {
				continue
			}
			if _, e := v.Rule(ref); e == nil {
				seen.Add(ref)
				queue.Push(ref)
			}
		}
	}
	return seen.ToSlice()
}

// Unreachable returns ids of stored rules that cannot be reached from root, in ascending order.
func Unreachable(rs *Rules, root int) []int {
	reached := ints.NewSet(Reachable(rs, root)...)
	var result []int
	for _, id := range rs.Ids() {
		if !reached.Contains(id) {
			result = append(result, id)
		}
	}
	return result
}

type cycleFinder struct {
	view   View
	onPath *ints.Set
	done   *ints.Set
	path   []int
}

// FindCycle returns ids forming a reference cycle reachable from root, starting with the first
// rule on the path that closes the cycle; returns nil for acyclic grammars.
func FindCycle(v View, root int) []int {
	c := &cycleFinder{view: v, onPath: ints.NewSet(), done: ints.NewSet()}
	return c.visit(root)
}

func (c *cycleFinder) visit(id int) []int {
	if c.done.Contains(id) {
		return nil
	}

	if c.onPath.Contains(id) {
		for i, p := range c.path {
			if p == id {
				return append([]int(nil), c.path[i:]...)
			}
		}
	}

	r, e := c.view.Rule(id)
	if e != nil {
		c.done.Add(id)
		return nil
	}

	c.onPath.Add(id)
	c.path = append(c.path, id)
	for _, ref := range r.Def.Refs() {
		if cycle := c.visit(ref); cycle != nil {
			return cycle
		}
	}
	c.path = c.path[:len(c.path)-1]
	c.onPath.Remove(id)
	c.done.Add(id)
	return nil
}
