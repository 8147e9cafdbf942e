package hierarchy

import "chronicle-hq/chronicle/pkg/entity"

// Ancestry is the chain of titles lexically enclosing the title being read,
// outermost first. Readers pass it down their recursion.
type Ancestry []*entity.Title

// Top returns the innermost enclosing title, or nil at top level.
func (a Ancestry) Top() *entity.Title {
	if len(a) == 0 {
		return nil
	}
	return a[len(a)-1]
}

// Push enters title.
func (a *Ancestry) Push(title *entity.Title) {
	*a = append(*a, title)
}

// Pop leaves the innermost title.
func (a *Ancestry) Pop() {
	*a = (*a)[:len(*a)-1]
}

// Attach makes the innermost enclosing title the parent of child. It does
// nothing at top level. A sibling with the same id is replaced.
func (a Ancestry) Attach(child *entity.Title) (replaced *entity.Title) {
	parent := a.Top()
	if parent == nil {
		return nil
	}
	child.Parent = parent
	old, ok := parent.SubTitles.Put(child.ID, child)
	if ok {
		return old
	}
	return nil
}
