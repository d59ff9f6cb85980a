package schema

// Kind identifies the variant of a Schema. The set is closed: every function
// in this package that inspects a Schema switches over these values.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindDate
	KindAny
	KindLiteral
	KindEnum
	KindArray
	KindTuple
	KindUnion
	KindIntersection
	KindObject
	KindRecord
	KindOptional
	KindDefault
	KindNullable
)

var kindNames = map[Kind]string{
	KindString:       "string",
	KindNumber:       "number",
	KindBoolean:      "boolean",
	KindDate:         "date",
	KindAny:          "any",
	KindLiteral:      "literal",
	KindEnum:         "enum",
	KindArray:        "array",
	KindTuple:        "tuple",
	KindUnion:        "union",
	KindIntersection: "intersection",
	KindObject:       "object",
	KindRecord:       "record",
	KindOptional:     "optional",
	KindDefault:      "default",
	KindNullable:     "nullable",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// IsWrapper reports whether the kind wraps a single inner schema without
// changing the shape of the value (optional, default, nullable).
func (k Kind) IsWrapper() bool {
	return k == KindOptional || k == KindDefault || k == KindNullable
}

// UnknownKeys is the policy an object schema applies to keys not declared in its shape.
type UnknownKeys int

const (
	// Strict reports undeclared keys as an unrecognized_keys issue
	Strict UnknownKeys = iota
	// Strip silently drops undeclared keys
	Strip
	// Passthrough copies undeclared keys to the output unchanged
	Passthrough
)

func (u UnknownKeys) String() string {
	switch u {
	case Strict:
		return "strict"
	case Strip:
		return "strip"
	case Passthrough:
		return "passthrough"
	}

	return "unknown"
}
