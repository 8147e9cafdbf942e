package ast

// Kind identifies the variant of a Value.
type Kind int

const (
	KindGroup Kind = iota
	KindEvent
	KindString
	KindBool
	KindInt
	KindFloat
	KindDate
	KindIntList
	KindStringList
)

var kindNames = [...]string{
	KindGroup:      "group",
	KindEvent:      "event",
	KindString:     "string",
	KindBool:       "bool",
	KindInt:        "int",
	KindFloat:      "float",
	KindDate:       "date",
	KindIntList:    "int_list",
	KindStringList: "string_list",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Value is a node of the generic value tree. The set of implementations is
// closed: Group, Event, String, Bool, Int, Float, DateValue, IntList and
// StringList. Switches over Value should handle all of them.
type Value interface {
	// Tag returns the key the value was written under.
	Tag() string
	// Kind returns the variant of the value.
	Kind() Kind
	// Location returns where the value started in its source document.
	Location() Location

	value()
}

// Container is a Value with ordered children (Group or Event).
type Container interface {
	Value
	// Append adds a child after the existing ones.
	Append(child Value)
	// Values returns the children in parse order.
	Values() []Value
}

// Group is a bracketed block keyed by a name. Children keep parse order and
// a key may repeat.
type Group struct {
	ID       string
	Children []Value
	Loc      Location
}

// Event is a bracketed block keyed by a date, used for dated history entries.
type Event struct {
	Date     Date
	Children []Value
	Loc      Location
}

// String is a text scalar. Surrounding quotes are not part of Value.
type String struct {
	Key   string
	Value string
	Loc   Location
}

// Bool is a yes/no scalar.
type Bool struct {
	Key   string
	Value bool
	Loc   Location
}

// Int is an integer scalar.
type Int struct {
	Key   string
	Value int64
	Loc   Location
}

// Float is a decimal scalar rounded to three decimal places.
type Float struct {
	Key   string
	Value float64
	Loc   Location
}

// DateValue is a date scalar ("birth = 1066.9.15").
type DateValue struct {
	Key   string
	Value Date
	Loc   Location
}

// IntList is a bracketed list of integers.
type IntList struct {
	Key   string
	Items []int64
	Loc   Location
}

// StringList is a bracketed list of bare words or quoted strings.
type StringList struct {
	Key   string
	Items []string
	Loc   Location
}

func (g *Group) Tag() string        { return g.ID }
func (g *Group) Kind() Kind         { return KindGroup }
func (g *Group) Location() Location { return g.Loc }
func (g *Group) Append(child Value) { g.Children = append(g.Children, child) }
func (g *Group) Values() []Value    { return g.Children }
func (*Group) value()               {}

func (e *Event) Tag() string        { return e.Date.String() }
func (e *Event) Kind() Kind         { return KindEvent }
func (e *Event) Location() Location { return e.Loc }
func (e *Event) Append(child Value) { e.Children = append(e.Children, child) }
func (e *Event) Values() []Value    { return e.Children }
func (*Event) value()               {}

func (s *String) Tag() string        { return s.Key }
func (s *String) Kind() Kind         { return KindString }
func (s *String) Location() Location { return s.Loc }
func (*String) value()               {}

func (b *Bool) Tag() string        { return b.Key }
func (b *Bool) Kind() Kind         { return KindBool }
func (b *Bool) Location() Location { return b.Loc }
func (*Bool) value()               {}

func (i *Int) Tag() string        { return i.Key }
func (i *Int) Kind() Kind         { return KindInt }
func (i *Int) Location() Location { return i.Loc }
func (*Int) value()               {}

func (f *Float) Tag() string        { return f.Key }
func (f *Float) Kind() Kind         { return KindFloat }
func (f *Float) Location() Location { return f.Loc }
func (*Float) value()               {}

func (d *DateValue) Tag() string        { return d.Key }
func (d *DateValue) Kind() Kind         { return KindDate }
func (d *DateValue) Location() Location { return d.Loc }
func (*DateValue) value()               {}

func (l *IntList) Tag() string        { return l.Key }
func (l *IntList) Kind() Kind         { return KindIntList }
func (l *IntList) Location() Location { return l.Loc }
func (*IntList) value()               {}

func (l *StringList) Tag() string        { return l.Key }
func (l *StringList) Kind() Kind         { return KindStringList }
func (l *StringList) Location() Location { return l.Loc }
func (*StringList) value()               {}

// Find returns the first child with the given tag, or nil.
func (g *Group) Find(tag string) Value {
	for _, child := range g.Children {
		if child.Tag() == tag {
			return child
		}
	}
	return nil
}

// All returns every child with the given tag in parse order.
func (g *Group) All(tag string) []Value {
	var out []Value
	for _, child := range g.Children {
		if child.Tag() == tag {
			out = append(out, child)
		}
	}
	return out
}

// Events returns the Event children of the group.
func (g *Group) Events() []*Event {
	var out []*Event
	for _, child := range g.Children {
		if ev, ok := child.(*Event); ok {
			out = append(out, ev)
		}
	}
	return out
}
