package format

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

// GoOptions matches gofmt indentation.
func GoOptions() Options {
	return Options{IndentWidth: 4, UseTabs: true}
}
