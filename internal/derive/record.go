package derive

import (
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"seqgen/internal/diag"
	"seqgen/internal/source"
	"seqgen/internal/token"
	"seqgen/internal/tokentree"
)

// Field is one named struct field.
type Field struct {
	Name string
	// Type is the field type as Go source.
	Type string
	// Elem is the element type of a slice field or the base type of a
	// pointer field, empty otherwise.
	Elem    string
	Pointer bool
	Slice   bool
	Tag     reflect.StructTag
	Span    source.Span
}

// Record is the shape of a struct declaration.
type Record struct {
	Name string
	// TypeParams is the declaration form, e.g. "[K comparable, V any]".
	TypeParams string
	// TypeArgs is the instantiation form, e.g. "[K, V]".
	TypeArgs string
	Fields   []Field
	Span     source.Span
}

// Instance returns the type as used in method receivers and signatures.
func (r *Record) Instance() string {
	return r.Name + r.TypeArgs
}

// ParseRecord reads "type Name[TypeParams] struct { fields }" at the start of
// s and returns the number of nodes it consumed.
func ParseRecord(s tokentree.Stream, eoi source.Span) (Record, int, error) {
	var rec Record
	at := func(i int) source.Span {
		if i < len(s) {
			return s[i].Span
		}
		return eoi
	}

	if len(s) == 0 || !s[0].IsIdent("type") {
		return rec, 0, diag.Errorf(diag.SynExpectTypeDecl, at(0), "expected struct type declaration after derive!")
	}
	if len(s) < 2 || s[1].Kind != tokentree.KindIdent || token.IsKeyword(s[1].Text) {
		return rec, 0, diag.Errorf(diag.SynExpectTypeDecl, at(1), "expected type name")
	}
	rec.Name = s[1].Text
	i := 2

	if i < len(s) && s[i].IsGroup(tokentree.Bracket) {
		names := typeParamNames(s[i].Children)
		if len(names) == 0 {
			return rec, 0, diag.Errorf(diag.SynExpectTypeDecl, s[i].Span, "expected type parameters")
		}
		rec.TypeParams = typeText(s[i : i+1])
		rec.TypeArgs = "[" + strings.Join(names, ", ") + "]"
		i++
	}

	if i >= len(s) || !s[i].IsIdent("struct") {
		return rec, 0, diag.Errorf(diag.SynExpectTypeDecl, at(i), "expected 'struct'")
	}
	i++
	if i >= len(s) || !s[i].IsGroup(tokentree.Brace) {
		return rec, 0, diag.Errorf(diag.SynExpectTypeDecl, at(i), "expected '{'")
	}
	body := &s[i]

	fields, err := parseFields(body.Children, body.Span.AtEnd())
	if err != nil {
		return rec, 0, err
	}
	rec.Fields = fields
	rec.Span = s[0].Span.Cover(body.Span)
	return rec, i + 1, nil
}

// typeParamNames returns the first identifier of every comma separated segment.
func typeParamNames(s tokentree.Stream) []string {
	var names []string
	expect := true
	for i := range s {
		switch {
		case s[i].IsPunct(','):
			expect = true
		case expect && s[i].Kind == tokentree.KindIdent:
			names = append(names, s[i].Text)
			expect = false
		}
	}
	return names
}

// fieldLines splits struct body nodes into field declarations.
// A declaration ends at a line break or ';'.
func fieldLines(s tokentree.Stream) []tokentree.Stream {
	var lines []tokentree.Stream
	start := 0
	flush := func(end int) {
		if end > start {
			lines = append(lines, s[start:end])
		}
	}
	for i := range s {
		switch {
		case s[i].IsPunct(';'):
			flush(i)
			start = i + 1
		case s[i].NewlineBefore && i > start:
			flush(i)
			start = i
		}
	}
	flush(len(s))
	return lines
}

func parseFields(body tokentree.Stream, eoi source.Span) ([]Field, error) {
	var fields []Field
	for _, line := range fieldLines(body) {
		if isEmbedded(line) {
			return nil, diag.Errorf(diag.DrvEmbeddedField, line[0].Span, "embedded field %s is not supported", typeText(line))
		}

		var names []tokentree.Node
		i := 0
		for {
			if i >= len(line) || line[i].Kind != tokentree.KindIdent {
				sp := eoi
				if i < len(line) {
					sp = line[i].Span
				}
				return nil, diag.Errorf(diag.SynExpectStructField, sp, "expected field name")
			}
			names = append(names, line[i])
			i++
			if i < len(line) && line[i].IsPunct(',') {
				i++
				continue
			}
			break
		}

		typ := line[i:]
		var tag reflect.StructTag
		if n := len(typ); n > 0 && isStringLit(&typ[n-1]) {
			raw, err := strconv.Unquote(typ[n-1].Text)
			if err != nil {
				return nil, diag.Errorf(diag.SynExpectStructField, typ[n-1].Span, "malformed struct tag %s", typ[n-1].Text)
			}
			tag = reflect.StructTag(raw)
			typ = typ[:n-1]
		}
		if len(typ) == 0 {
			return nil, diag.Errorf(diag.SynExpectStructField, names[len(names)-1].Span.AtEnd(), "expected field type")
		}

		base := Field{Type: typeText(typ), Tag: tag}
		switch {
		case typ[0].IsPunct('*'):
			base.Pointer = true
			base.Elem = typeText(typ[1:])
		case typ[0].IsGroup(tokentree.Bracket) && len(typ[0].Children) == 0 && len(typ) > 1:
			base.Slice = true
			base.Elem = typeText(typ[1:])
		}

		for _, n := range names {
			f := base
			f.Name = n.Text
			f.Span = n.Span.Cover(line[len(line)-1].Span)
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// isEmbedded recognizes T, *T, pkg.T, T[A] and pkg.T[A], with an optional tag.
func isEmbedded(line tokentree.Stream) bool {
	if n := len(line); n > 0 && isStringLit(&line[n-1]) {
		line = line[:n-1]
	}
	if len(line) == 0 {
		return false
	}
	if line[0].IsPunct('*') {
		return true
	}
	if line[0].Kind != tokentree.KindIdent {
		return false
	}
	rest := line[1:]
	if len(rest) >= 2 && rest[0].IsPunct('.') && rest[1].Kind == tokentree.KindIdent {
		rest = rest[2:]
	}
	if len(rest) == 1 && rest[0].IsGroup(tokentree.Bracket) && len(rest[0].Children) > 0 {
		rest = rest[1:]
	}
	return len(rest) == 0
}

func isStringLit(n *tokentree.Node) bool {
	return n.Kind == tokentree.KindLiteral && (n.Lit == token.StringLit || n.Lit == token.RawStringLit)
}

// typeText renders type tokens compactly: "[]*pkg.T", "map[K]V",
// "func(int) (string, error)".
func typeText(s tokentree.Stream) string {
	var b strings.Builder
	writeType(&b, s)
	return b.String()
}

func writeType(b *strings.Builder, s tokentree.Stream) {
	for i := range s {
		n := &s[i]
		if i > 0 && typeSpace(&s[i-1], n) {
			b.WriteByte(' ')
		}
		if n.Kind != tokentree.KindGroup {
			b.WriteString(n.Text)
			continue
		}
		b.WriteString(n.Delim.Open())
		writeType(b, n.Children)
		b.WriteString(n.Delim.Close())
	}
}

func typeSpace(prev, next *tokentree.Node) bool {
	if next.IsPunct(',') || next.IsPunct('.') || next.IsPunct(';') {
		return false
	}
	switch prev.Kind {
	case tokentree.KindPunct:
		return prev.IsPunct(',') || prev.IsPunct(';')
	case tokentree.KindGroup:
		// результаты функции: func() error, func(int) (T, error)
		return prev.Delim == tokentree.Parenthesis || prev.Delim == tokentree.Brace
	}
	return next.Kind != tokentree.KindGroup
}

// exported upper-cases the first rune of name.
func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
