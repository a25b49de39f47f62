package derive

import (
	"strconv"
	"strings"

	"seqgen/internal/diag"
)

const defaultVerb = "%#v"

// debugVerb returns the format used for f, from its debug:"..." tag.
func debugVerb(f *Field) (string, error) {
	v, ok := f.Tag.Lookup("debug")
	if !ok {
		return defaultVerb, nil
	}
	if strings.Count(v, "%")-2*strings.Count(v, "%%") != 1 {
		return "", diag.Errorf(diag.DrvBadDebugTag, f.Span, "debug tag of field %s must hold exactly one verb, got %q", f.Name, v)
	}
	return v, nil
}

func writeDebug(w *codeWriter, rec *Record) error {
	var (
		layout strings.Builder
		args   []string
	)
	_, recv := freshNames(rec)

	layout.WriteString(rec.Name)
	layout.WriteByte('{')
	n := 0
	for i := range rec.Fields {
		f := &rec.Fields[i]
		if f.Name == "_" {
			continue
		}
		if f.Name == "String" {
			return diag.Errorf(diag.DrvNameConflict, f.Span, "field String collides with the generated String method")
		}
		verb, err := debugVerb(f)
		if err != nil {
			return err
		}
		if n > 0 {
			layout.WriteString(", ")
		}
		layout.WriteString(f.Name)
		layout.WriteString(": ")
		layout.WriteString(verb)
		args = append(args, recv+"."+f.Name)
		n++
	}
	layout.WriteByte('}')

	w.Linef("func (%s %s) String() string {", recv, rec.Instance())
	w.Indent()
	if len(args) == 0 {
		w.Linef("return %s", strconv.Quote(layout.String()))
	} else {
		w.Linef("return fmt.Sprintf(%s, %s)", strconv.Quote(layout.String()), strings.Join(args, ", "))
	}
	w.Dedent()
	w.Linef("}")
	return nil
}
