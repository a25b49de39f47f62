package derive

// Generate renders the declarations requested by kinds for rec.
// usesFmt reports whether the code refers to package fmt.
func Generate(rec *Record, kinds []Kind) (code string, usesFmt bool, err error) {
	var w codeWriter
	for i, k := range kinds {
		if i > 0 {
			w.Blank()
		}
		switch k {
		case Builder:
			err = writeBuilder(&w, rec)
			usesFmt = usesFmt || builderNeedsFmt(rec)
		case Debug:
			err = writeDebug(&w, rec)
			usesFmt = usesFmt || debugNeedsFmt(rec)
		}
		if err != nil {
			return "", false, err
		}
	}
	return w.String(), usesFmt, nil
}

func builderNeedsFmt(rec *Record) bool {
	for i := range rec.Fields {
		f := &rec.Fields[i]
		if f.Name == "_" || f.Pointer {
			continue
		}
		if _, ok := f.Tag.Lookup("builder"); !ok {
			return true
		}
	}
	return false
}

func debugNeedsFmt(rec *Record) bool {
	for i := range rec.Fields {
		if rec.Fields[i].Name != "_" {
			return true
		}
	}
	return false
}
