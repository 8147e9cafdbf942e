// Package linker resolves the string references entities carry after
// parsing (religion parents, culture parents, dynasty cultures) into
// pointers, once every document of the referenced kind has been loaded.
//
// Linking never fails. A reference without a registry entry stays unset and
// is reported as an unknown_reference diagnostic. References that are
// already set are left alone, so every pass may be run again.
package linker

import (
	"fmt"

	"chronicle-hq/chronicle/pkg/entity"
	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
	"chronicle-hq/chronicle/pkg/registry"
)

// Result counts the references set by a pass and lists those left dangling.
type Result struct {
	Linked     int
	Unresolved []*errors.Error
}

// Add folds other into r.
func (r *Result) Add(other Result) {
	r.Linked += other.Linked
	r.Unresolved = append(r.Unresolved, other.Unresolved...)
}

// LinkReligions resolves each religion's parent and reformed religion.
func LinkReligions(religions *registry.Registry[string, *entity.Religion]) Result {
	l := newLinker(religions)
	for _, r := range religions.Values() {
		l.link(r.ParentID, &r.Parent, r.Source, "religion %q has unknown parent %q", r.Name)
		l.link(r.ReformedID, &r.Reformed, r.Source, "religion %q has unknown reformed religion %q", r.Name)
	}
	return l.result
}

// LinkCultureParents resolves each culture's parent culture.
func LinkCultureParents(cultures *registry.Registry[string, *entity.Culture]) Result {
	l := newLinker(cultures)
	for _, c := range cultures.Values() {
		l.link(c.ParentID, &c.Parent, c.Source, "culture %q has unknown parent %q", c.Name)
	}
	return l.result
}

// LinkDynastyCultures resolves each dynasty's culture.
func LinkDynastyCultures(dynasties *registry.Registry[int, *entity.Dynasty], cultures *registry.Registry[string, *entity.Culture]) Result {
	l := newLinker(cultures)
	for _, d := range dynasties.Values() {
		l.link(d.CultureID, &d.Culture, d.Source, "dynasty %d has unknown culture %q", d.ID)
	}
	return l.result
}

type linker[V comparable] struct {
	targets *registry.Registry[string, V]
	known   []string
	result  Result
}

func newLinker[V comparable](targets *registry.Registry[string, V]) *linker[V] {
	return &linker[V]{targets: targets}
}

// link sets *field to the entry named id unless id is empty or the field is
// already set. format receives owner then id.
func (l *linker[V]) link(id string, field *V, source, format string, owner any) {
	var zero V
	if id == "" || *field != zero {
		return
	}
	if v, ok := l.targets.Get(id); ok {
		*field = v
		l.result.Linked++
		return
	}

	if l.known == nil {
		l.known = l.targets.SortedKeys()
	}
	err := errors.New(errors.ErrorTypeUnknownReference, ast.Location{File: source}, format, owner, id)
	err.Raw = id
	err.Suggestion = errors.SuggestIdentifier(id, l.known)
	if source != "" {
		err.Message = fmt.Sprintf("%s (%s)", err.Message, source)
	}
	l.result.Unresolved = append(l.result.Unresolved, err)
}
