package derive

import (
	"go/token"
	"slices"
	"strings"

	"seqgen/internal/diag"
)

// builderField is the plan for one field of the builder.
type builderField struct {
	Field
	slot   string // builder struct field holding the value
	setter string // empty when only the each-setter exists
	each   string // accumulating setter, empty when not tagged
}

func (f *builderField) optional() bool { return f.Pointer || f.each != "" }

// planBuilder validates builder tags and assigns setter names.
func planBuilder(rec *Record) ([]builderField, error) {
	used := map[string]Field{"Build": {}}
	claim := func(name string, f Field) error {
		if prev, ok := used[name]; ok {
			if prev.Name == "" {
				return diag.Errorf(diag.DrvNameConflict, f.Span, "setter %s for field %s collides with Build", name, f.Name)
			}
			return diag.Errorf(diag.DrvNameConflict, f.Span, "setter %s for field %s collides with field %s", name, f.Name, prev.Name)
		}
		used[name] = f
		return nil
	}

	var plan []builderField
	for _, f := range rec.Fields {
		if f.Name == "_" {
			continue
		}
		bf := builderField{Field: f, slot: "f" + exported(f.Name)}

		each, err := eachTag(&f)
		if err != nil {
			return nil, err
		}
		if each != "" {
			if !f.Slice {
				return nil, diag.Errorf(diag.DrvEachNotSlice, f.Span, "field %s has builder:\"each=%s\" but type %s is not a slice", f.Name, each, f.Type)
			}
			bf.each = exported(each)
			if err := claim(bf.each, f); err != nil {
				return nil, err
			}
		}
		if each == "" || exported(each) != exported(f.Name) {
			bf.setter = exported(f.Name)
			if err := claim(bf.setter, f); err != nil {
				return nil, err
			}
		}
		plan = append(plan, bf)
	}
	return plan, nil
}

// eachTag returns the item name of a builder:"each=item" tag.
func eachTag(f *Field) (string, error) {
	v, ok := f.Tag.Lookup("builder")
	if !ok {
		return "", nil
	}
	item, found := strings.CutPrefix(v, "each=")
	if !found || !token.IsIdentifier(item) || item == "_" {
		return "", diag.Errorf(diag.DrvBadBuilderTag, f.Span, "expected builder:\"each=...\", got builder:%q", v)
	}
	return item, nil
}

func writeBuilder(w *codeWriter, rec *Record) error {
	plan, err := planBuilder(rec)
	if err != nil {
		return err
	}

	name := rec.Name + "Builder"
	inst := name + rec.TypeArgs
	recv, param := freshNames(rec)

	w.Linef("// %s assembles a %s step by step.", name, rec.Name)
	w.Linef("type %s%s struct {", name, rec.TypeParams)
	w.Indent()
	for i := range plan {
		f := &plan[i]
		switch {
		case f.optional():
			w.Linef("%s %s", f.slot, f.Type)
		default:
			w.Linef("%s *%s", f.slot, f.Type)
		}
	}
	w.Dedent()
	w.Linef("}")
	w.Blank()

	w.Linef("func New%s%s() *%s {", name, rec.TypeParams, inst)
	w.Indent()
	w.Linef("return &%s{}", inst)
	w.Dedent()
	w.Linef("}")

	for i := range plan {
		f := &plan[i]
		if f.setter != "" {
			typ, assign := f.Type, param
			switch {
			case f.Pointer:
				typ, assign = f.Elem, "&"+param
			case !f.optional():
				assign = "&" + param
			}
			w.Blank()
			w.Linef("func (%s *%s) %s(%s %s) *%s {", recv, inst, f.setter, param, typ, inst)
			w.Indent()
			w.Linef("%s.%s = %s", recv, f.slot, assign)
			w.Linef("return %s", recv)
			w.Dedent()
			w.Linef("}")
		}
		if f.each != "" {
			w.Blank()
			w.Linef("func (%s *%s) %s(%s %s) *%s {", recv, inst, f.each, param, f.Elem, inst)
			w.Indent()
			w.Linef("%s.%s = append(%s.%s, %s)", recv, f.slot, recv, f.slot, param)
			w.Linef("return %s", recv)
			w.Dedent()
			w.Linef("}")
		}
	}

	w.Blank()
	w.Linef("func (%s *%s) Build() (%s, error) {", recv, inst, rec.Instance())
	w.Indent()
	w.Linef("var %s %s", param, rec.Instance())
	for i := range plan {
		f := &plan[i]
		if f.optional() {
			continue
		}
		w.Linef("if %s.%s == nil {", recv, f.slot)
		w.Indent()
		w.Linef("return %s, fmt.Errorf(%q)", param, f.Name+" is not set")
		w.Dedent()
		w.Linef("}")
	}
	for i := range plan {
		f := &plan[i]
		if f.optional() {
			w.Linef("%s.%s = %s.%s", param, f.Name, recv, f.slot)
		} else {
			w.Linef("%s.%s = *%s.%s", param, f.Name, recv, f.slot)
		}
	}
	w.Linef("return %s, nil", param)
	w.Dedent()
	w.Linef("}")
	return nil
}

// freshNames picks receiver and parameter names that do not shadow type
// parameters.
func freshNames(rec *Record) (recv, param string) {
	var taken []string
	if rec.TypeArgs != "" {
		for name := range strings.SplitSeq(strings.Trim(rec.TypeArgs, "[]"), ", ") {
			taken = append(taken, name)
		}
	}
	pick := func(base string) string {
		name := base
		for slices.Contains(taken, name) {
			name += "_"
		}
		taken = append(taken, name)
		return name
	}
	return pick("b"), pick("v")
}
