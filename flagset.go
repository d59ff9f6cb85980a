package gocli

import (
	"github.com/napalu/gocli/schema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry is a named member of a FlagSet: a flag or a nested group.
type Entry struct {
	name  string
	flag  *Flag
	group *FlagSet
}

// F registers flag under name.
func F(name string, flag *Flag) Entry {
	return Entry{name: name, flag: flag}
}

// Group nests set under name. Its flags are addressed with dotted names
// (--name.flag) and arrive as a nested map.
func Group(name string, set *FlagSet) Entry {
	return Entry{name: name, group: set}
}

func (e Entry) Name() string { return e.name }

// Flag returns the flag of a flag entry, or nil for a group.
func (e Entry) Flag() *Flag { return e.flag }

// Group returns the set of a group entry, or nil for a flag.
func (e Entry) Group() *FlagSet { return e.group }

// FlagSet is an ordered collection of flags and groups. Like Flag it is
// immutable; every method returns a new set.
type FlagSet struct {
	entries     *orderedmap.OrderedMap[string, Entry]
	unknownKeys schema.UnknownKeys
	catchall    *schema.Schema
	optional    bool
}

// Flags creates a strict set: unknown flags are rejected.
func Flags(entries ...Entry) *FlagSet {
	fs := &FlagSet{entries: orderedmap.New[string, Entry]()}
	for _, e := range entries {
		fs.entries.Set(e.name, e)
	}

	return fs
}

// GlobalFlags creates a set whose flags are all marked global.
func GlobalFlags(entries ...Entry) *FlagSet {
	return Flags(entries...).stampGlobal()
}

func (fs *FlagSet) clone() *FlagSet {
	c := *fs
	c.entries = orderedmap.New[string, Entry]()
	if fs.entries != nil {
		for p := fs.entries.Oldest(); p != nil; p = p.Next() {
			c.entries.Set(p.Key, p.Value)
		}
	}

	return &c
}

// Merge returns the union of both sets. Entries of other replace same-named
// entries of fs, and the unknown-flag policy and catchall come from other.
func (fs *FlagSet) Merge(other *FlagSet) *FlagSet {
	if fs == nil {
		if other == nil {
			return Flags()
		}
		return other.clone()
	}
	c := fs.clone()
	if other == nil {
		return c
	}
	for p := other.entries.Oldest(); p != nil; p = p.Next() {
		c.entries.Set(p.Key, p.Value)
	}
	c.unknownKeys = other.unknownKeys
	c.catchall = other.catchall

	return c
}

// Optional allows a nested group to be absent entirely.
func (fs *FlagSet) Optional() *FlagSet {
	c := fs.clone()
	c.optional = true

	return c
}

// Strict rejects unknown flags. This is the default.
func (fs *FlagSet) Strict() *FlagSet { return fs.withUnknownKeys(schema.Strict) }

// Passthrough keeps unknown flags in the parsed values.
func (fs *FlagSet) Passthrough() *FlagSet { return fs.withUnknownKeys(schema.Passthrough) }

// Strip silently drops unknown flags.
func (fs *FlagSet) Strip() *FlagSet { return fs.withUnknownKeys(schema.Strip) }

func (fs *FlagSet) withUnknownKeys(u schema.UnknownKeys) *FlagSet {
	c := fs.clone()
	c.unknownKeys = u

	return c
}

// Catchall validates unknown flags with s instead of rejecting them.
func (fs *FlagSet) Catchall(s *schema.Schema) *FlagSet {
	c := fs.clone()
	c.catchall = s

	return c
}

// Len returns the number of direct entries.
func (fs *FlagSet) Len() int {
	if fs == nil || fs.entries == nil {
		return 0
	}

	return fs.entries.Len()
}

// Lookup returns the direct entry registered under name.
func (fs *FlagSet) Lookup(name string) (Entry, bool) {
	if fs == nil || fs.entries == nil {
		return Entry{}, false
	}

	return fs.entries.Get(name)
}

// Entries returns the direct entries in declaration order.
func (fs *FlagSet) Entries() []Entry {
	if fs == nil || fs.entries == nil {
		return nil
	}
	out := make([]Entry, 0, fs.entries.Len())
	for p := fs.entries.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Value)
	}

	return out
}

// Schema builds the object schema validating the parsed flag map.
func (fs *FlagSet) Schema() *schema.Schema {
	var fields []schema.Field
	for _, e := range fs.Entries() {
		if e.flag != nil {
			fields = append(fields, schema.Field{Name: e.name, Schema: e.flag.schema})
			continue
		}
		fields = append(fields, schema.Field{Name: e.name, Schema: e.group.Schema()})
	}

	obj := schema.Object(fields...).Strict()
	switch fs.unknownKeys {
	case schema.Passthrough:
		obj = obj.Passthrough()
	case schema.Strip:
		obj = obj.Strip()
	}
	if fs.catchall != nil {
		obj = obj.Catchall(fs.catchall)
	}
	if fs.optional {
		return obj.Optional()
	}

	// an absent group still gets its defaults applied and its required flags reported
	return obj.DefaultFunc(func() any { return map[string]any{} })
}

func (fs *FlagSet) stampGlobal() *FlagSet {
	c := fs.clone()
	for p := c.entries.Oldest(); p != nil; p = p.Next() {
		e := p.Value
		if e.flag != nil {
			e.flag = e.flag.Global()
		} else {
			e.group = e.group.stampGlobal()
		}
		c.entries.Set(p.Key, e)
	}

	return c
}
