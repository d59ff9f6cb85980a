package gocli

import (
	"github.com/ef-ds/deque"
	"github.com/napalu/gocli/schema"
)

type walkItem struct {
	path  string
	entry Entry
}

// WalkFlags visits every flag of fs, descending into groups. The traversal
// uses an explicit stack, so flags are visited in reverse declaration order;
// path is the dotted name of the flag ("debug.level").
func WalkFlags(fs *FlagSet, visit func(f *Flag, path string)) {
	stack := deque.New()
	push := func(prefix string, set *FlagSet) {
		for _, e := range set.Entries() {
			path := e.name
			if prefix != "" {
				path = prefix + "." + e.name
			}
			stack.PushBack(walkItem{path: path, entry: e})
		}
	}
	push("", fs)

	for stack.Len() > 0 {
		v, _ := stack.PopBack()
		item := v.(walkItem)
		if item.entry.flag != nil {
			visit(item.entry.flag, item.path)
			continue
		}
		push(item.path, item.entry.group)
	}
}

// ArgPosition locates a positional argument schema.
type ArgPosition struct {
	Index    int
	Variadic bool
	Name     string
}

// WalkArgs visits the schema of every positional argument in order. Tuple and
// array forms, bare or wrapped in optional or default, are normalised: a
// tuple yields one call per item plus one for its variadic tail, an array
// yields a single variadic call.
func WalkArgs(args *Arguments, visit func(s *schema.Schema, pos ArgPosition)) {
	if args == nil {
		return
	}
	nameAt := func(i int) string {
		if arg, ok := args.at(i); ok {
			return arg.name
		}
		return ""
	}

	s := schema.Unwrap(args.Schema())
	switch s.Kind() {
	case schema.KindArray:
		visit(s.Inner(), ArgPosition{Index: 0, Variadic: true, Name: nameAt(0)})
	case schema.KindTuple:
		items := s.Items()
		for i, item := range items {
			visit(item, ArgPosition{Index: i, Name: nameAt(i)})
		}
		if rest := s.RestItem(); rest != nil {
			visit(rest, ArgPosition{Index: len(items), Variadic: true, Name: nameAt(len(items))})
		}
	}
}
