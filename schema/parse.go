package schema

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
)

// Parse validates v against s. On success it returns the parsed value: numbers
// as float64, lists as []any, objects as map[string]any. On failure the error
// is an *Error holding every issue, or the error passed to Interrupt.
func (s *Schema) Parse(v any) (any, error) {
	return s.ParseContext(context.Background(), v)
}

// ParseContext is Parse with a context handed to refinements.
func (s *Schema) ParseContext(ctx context.Context, v any) (any, error) {
	p := &parser{ctx: ctx}
	out := p.parse(s, v, nil)
	if p.interrupt != nil {
		return nil, p.interrupt
	}
	if len(p.issues) > 0 {
		return nil, &Error{Issues: p.issues}
	}

	return out, nil
}

type parser struct {
	ctx       context.Context
	issues    []Issue
	interrupt error
}

func (p *parser) stopped() bool {
	return p.interrupt != nil
}

func (p *parser) add(issue Issue) {
	p.issues = append(p.issues, issue)
}

func childPath(path []any, elem any) []any {
	out := make([]any, len(path)+1)
	copy(out, path)
	out[len(path)] = elem

	return out
}

// parse returns the parsed value; failures are recorded on p.
func (p *parser) parse(s *Schema, v any, path []any) any {
	if p.stopped() {
		return nil
	}

	before := len(p.issues)
	out := p.parseBase(s, v, path)
	if len(p.issues) > before || p.stopped() {
		return nil
	}

	for _, refine := range s.refinements {
		if err := refine(p.ctx, out); err != nil {
			var ie *interruptError
			if errors.As(err, &ie) {
				p.interrupt = ie.err
				return nil
			}
			p.add(issueFromError(err, path))
		}
	}

	return out
}

func (p *parser) invalidType(s *Schema, v any, path []any) {
	expected := TypeString(s)
	received := TypeOf(v)
	p.add(Issue{
		Code:     InvalidType,
		Path:     path,
		Expected: expected,
		Received: received,
		Message:  invalidTypeMessage(expected, received),
	})
}

func (p *parser) parseBase(s *Schema, v any, path []any) any {
	switch s.kind {
	case KindOptional, KindNullable:
		if v == nil {
			return nil
		}
		return p.parse(s.inner, v, path)
	case KindDefault:
		if v == nil {
			v = s.defaultFn()
		}
		return p.parse(s.inner, v, path)
	case KindAny:
		return v
	case KindString:
		return p.parseString(s, v, path)
	case KindNumber:
		return p.parseNumber(s, v, path)
	case KindBoolean:
		b, ok := v.(bool)
		if !ok {
			p.invalidType(s, v, path)
			return nil
		}
		return b
	case KindDate:
		return p.parseDate(s, v, path)
	case KindLiteral:
		n := normalizeNumber(v)
		if n != s.literal {
			expected := formatLiteral(s.literal)
			p.add(Issue{
				Code:     InvalidLiteral,
				Path:     path,
				Expected: expected,
				Received: formatLiteral(n),
				Message:  fmt.Sprintf("Invalid literal value, expected %s", expected),
			})
			return nil
		}
		return n
	case KindEnum:
		str, ok := v.(string)
		if !ok {
			p.invalidType(s, v, path)
			return nil
		}
		for _, allowed := range s.values {
			if allowed == str {
				return str
			}
		}
		p.add(Issue{
			Code:     InvalidEnumValue,
			Path:     path,
			Options:  s.Values(),
			Expected: quoteAll(s.values),
			Received: fmt.Sprintf("%q", str),
			Message:  fmt.Sprintf("Invalid enum value. Expected %s, received %q", quoteAll(s.values), str),
		})
		return nil
	case KindArray:
		return p.parseArray(s, v, path)
	case KindTuple:
		return p.parseTuple(s, v, path)
	case KindUnion:
		return p.parseUnion(s, v, path)
	case KindIntersection:
		return p.parseIntersection(s, v, path)
	case KindObject:
		return p.parseObject(s, v, path)
	case KindRecord:
		return p.parseRecord(s, v, path)
	}

	p.add(Issue{Code: Custom, Path: path, Message: fmt.Sprintf("unsupported schema kind %s", s.kind)})

	return nil
}

func (p *parser) parseString(s *Schema, v any, path []any) any {
	str, ok := v.(string)
	if !ok {
		p.invalidType(s, v, path)
		return nil
	}

	length := float64(utf8.RuneCountInString(str))
	for _, c := range s.checks {
		switch c.kind {
		case checkMin:
			if length < c.value {
				p.add(Issue{Code: TooSmall, Path: path, Minimum: c.value, Inclusive: true, Type: "string",
					Message: tooSmallMessage("string", c.value)})
			}
		case checkMax:
			if length > c.value {
				p.add(Issue{Code: TooBig, Path: path, Maximum: c.value, Inclusive: true, Type: "string",
					Message: tooBigMessage("string", c.value)})
			}
		case checkRegex:
			if !c.pattern.MatchString(str) {
				p.add(Issue{Code: InvalidString, Path: path,
					Message: fmt.Sprintf("Invalid input: must match %s", c.pattern.String())})
			}
		}
	}

	return str
}

func (p *parser) parseNumber(s *Schema, v any, path []any) any {
	n, ok := toFloat(v)
	if !ok || math.IsNaN(n) {
		p.invalidType(s, v, path)
		return nil
	}

	for _, c := range s.checks {
		switch c.kind {
		case checkInt:
			if n != math.Trunc(n) {
				p.add(Issue{Code: InvalidType, Path: path, Expected: "integer", Received: "float",
					Message: invalidTypeMessage("integer", "float")})
			}
		case checkMin:
			if n < c.value {
				p.add(Issue{Code: TooSmall, Path: path, Minimum: c.value, Inclusive: true, Type: "number",
					Message: tooSmallMessage("number", c.value)})
			}
		case checkMax:
			if n > c.value {
				p.add(Issue{Code: TooBig, Path: path, Maximum: c.value, Inclusive: true, Type: "number",
					Message: tooBigMessage("number", c.value)})
			}
		}
	}

	return n
}

func (p *parser) parseDate(s *Schema, v any, path []any) any {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := dateparse.ParseLocal(t)
		if err != nil {
			p.add(Issue{Code: InvalidDate, Path: path, Received: t, Message: "Invalid date"})
			return nil
		}
		return parsed
	}
	p.invalidType(s, v, path)

	return nil
}

func (p *parser) checkLength(s *Schema, n int, path []any) {
	length := float64(n)
	for _, c := range s.checks {
		switch c.kind {
		case checkMin:
			if length < c.value {
				p.add(Issue{Code: TooSmall, Path: path, Minimum: c.value, Inclusive: true, Type: "array",
					Message: tooSmallMessage("array", c.value)})
			}
		case checkMax:
			if length > c.value {
				p.add(Issue{Code: TooBig, Path: path, Maximum: c.value, Inclusive: true, Type: "array",
					Message: tooBigMessage("array", c.value)})
			}
		}
	}
}

func (p *parser) parseArray(s *Schema, v any, path []any) any {
	list, ok := toList(v)
	if !ok {
		p.invalidType(s, v, path)
		return nil
	}

	out := make([]any, len(list))
	for i, elem := range list {
		out[i] = p.parse(s.inner, elem, childPath(path, i))
		if p.stopped() {
			return nil
		}
	}
	p.checkLength(s, len(list), path)

	return out
}

// requiredItems is the number of leading tuple items that must be present:
// everything up to and including the last item that does not accept nil.
func requiredItems(s *Schema) int {
	required := 0
	for i, item := range s.items {
		if !AcceptsNil(item) {
			required = i + 1
		}
	}

	return required
}

func (p *parser) parseTuple(s *Schema, v any, path []any) any {
	list, ok := toList(v)
	if !ok {
		p.invalidType(s, v, path)
		return nil
	}

	required := requiredItems(s)
	if len(list) < required {
		p.add(Issue{Code: TooSmall, Path: path, Minimum: float64(required), Inclusive: true, Type: "array",
			Message: tooSmallMessage("array", float64(required))})
		return nil
	}
	if s.rest == nil && len(list) > len(s.items) {
		p.add(Issue{Code: TooBig, Path: path, Maximum: float64(len(s.items)), Inclusive: true, Type: "array",
			Message: tooBigMessage("array", float64(len(s.items)))})
		return nil
	}

	size := len(list)
	if size < len(s.items) {
		size = len(s.items)
	}
	out := make([]any, 0, size)
	for i, item := range s.items {
		var elem any
		if i < len(list) {
			elem = list[i]
		}
		out = append(out, p.parse(item, elem, childPath(path, i)))
		if p.stopped() {
			return nil
		}
	}
	for i := len(s.items); i < len(list); i++ {
		out = append(out, p.parse(s.rest, list[i], childPath(path, i)))
		if p.stopped() {
			return nil
		}
	}

	return out
}

func (p *parser) parseUnion(s *Schema, v any, path []any) any {
	var rejected [][]Issue
	for _, option := range s.items {
		sub := &parser{ctx: p.ctx}
		out := sub.parse(option, v, path)
		if sub.interrupt != nil {
			p.interrupt = sub.interrupt
			return nil
		}
		if len(sub.issues) == 0 {
			return out
		}
		rejected = append(rejected, sub.issues)
	}

	p.add(Issue{
		Code:        InvalidUnion,
		Path:        path,
		Expected:    TypeString(s),
		Received:    TypeOf(v),
		Message:     "Invalid input",
		UnionIssues: rejected,
	})

	return nil
}

func (p *parser) parseIntersection(s *Schema, v any, path []any) any {
	left := p.parse(s.items[0], v, path)
	right := p.parse(s.items[1], v, path)
	if p.stopped() {
		return nil
	}

	merged, ok := mergeValues(left, right)
	if !ok {
		p.add(Issue{Code: Custom, Path: path, Message: "Intersection results could not be merged"})
		return nil
	}

	return merged
}

func mergeValues(a, b any) (any, bool) {
	am, aok := a.(map[string]any)
	bm, bok := b.(map[string]any)
	if aok && bok {
		out := make(map[string]any, len(am)+len(bm))
		for k, v := range am {
			out[k] = v
		}
		for k, v := range bm {
			if existing, found := out[k]; found {
				m, ok := mergeValues(existing, v)
				if !ok {
					return nil, false
				}
				out[k] = m
				continue
			}
			out[k] = v
		}
		return out, true
	}
	if reflect.DeepEqual(a, b) {
		return a, true
	}

	return nil, false
}

func (p *parser) parseObject(s *Schema, v any, path []any) any {
	m, ok := v.(map[string]any)
	if !ok {
		p.invalidType(s, v, path)
		return nil
	}

	out := make(map[string]any, len(m))
	for pair := s.shape.Oldest(); pair != nil; pair = pair.Next() {
		value := p.parse(pair.Value, m[pair.Key], childPath(path, pair.Key))
		if p.stopped() {
			return nil
		}
		if value != nil {
			out[pair.Key] = value
		}
	}

	var unknown []string
	for key := range m {
		if _, declared := s.shape.Get(key); !declared {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	if s.catchall != nil {
		for _, key := range unknown {
			out[key] = p.parse(s.catchall, m[key], childPath(path, key))
			if p.stopped() {
				return nil
			}
		}
		return out
	}

	switch s.unknownKeys {
	case Strict:
		if len(unknown) > 0 {
			p.add(Issue{
				Code:    UnrecognizedKeys,
				Path:    path,
				Keys:    unknown,
				Message: fmt.Sprintf("Unrecognized key(s) in object: %s", quoteAll(unknown)),
			})
		}
	case Passthrough:
		for _, key := range unknown {
			out[key] = m[key]
		}
	case Strip:
	}

	return out
}

func (p *parser) parseRecord(s *Schema, v any, path []any) any {
	m, ok := v.(map[string]any)
	if !ok {
		p.invalidType(s, v, path)
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(m))
	for _, k := range keys {
		out[k] = p.parse(s.inner, m[k], childPath(path, k))
		if p.stopped() {
			return nil
		}
	}

	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}

	return 0, false
}

func normalizeNumber(v any) any {
	if n, ok := toFloat(v); ok {
		return n
	}

	return v
}

func toList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, true
	}

	return nil, false
}
