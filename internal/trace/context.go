package trace

import "context"

type ctxKey struct{}

// carrier is what a context holds: the tracer and the span new work nests
// under.
type carrier struct {
	tracer Tracer
	parent Parent
}

func carrierFrom(ctx context.Context) carrier {
	if ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(carrier); ok {
			return c
		}
	}
	return carrier{tracer: Nop}
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return carrierFrom(ctx).tracer
}

// WithTracer attaches t to ctx. The current parent is kept.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	c := carrierFrom(ctx)
	c.tracer = t
	return context.WithValue(ctx, ctxKey{}, c)
}

// ParentFrom returns the span that work started from ctx should nest under.
func ParentFrom(ctx context.Context) Parent {
	return carrierFrom(ctx).parent
}

// WithParent makes p the parent for spans opened from the returned context.
func WithParent(ctx context.Context, p Parent) context.Context {
	c := carrierFrom(ctx)
	c.parent = p
	return context.WithValue(ctx, ctxKey{}, c)
}
