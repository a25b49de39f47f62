package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"seqgen/internal/trace"
)

// traceConfig turns the persistent --trace* flags into a tracer config.
// --trace without --trace-level traces phases.
func traceConfig(root *cobra.Command) (trace.Config, error) {
	fs := root.PersistentFlags()
	var errs []error
	str := func(name string) string {
		v, err := fs.GetString(name)
		errs = append(errs, err)
		return v
	}
	output, levelStr, modeStr, formatStr := str("trace"), str("trace-level"), str("trace-mode"), str("trace-format")
	ringSize, err := fs.GetInt("trace-ring-size")
	if err = errors.Join(append(errs, err)...); err != nil {
		return trace.Config{}, fmt.Errorf("failed to read trace flags: %w", err)
	}

	cfg := trace.Config{OutputPath: output, RingSize: ringSize}
	if cfg.Level, err = trace.ParseLevel(levelStr); err != nil {
		return cfg, fmt.Errorf("invalid trace level: %w", err)
	}
	if cfg.Level == trace.LevelOff && output != "" && !fs.Changed("trace-level") {
		cfg.Level = trace.LevelPhase
	}
	if cfg.Level == trace.LevelOff {
		return cfg, nil
	}
	if cfg.Mode, err = trace.ParseMode(modeStr); err != nil {
		return cfg, fmt.Errorf("invalid trace mode: %w", err)
	}
	if cfg.Format, err = trace.ParseFormat(formatStr); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupTracing puts the tracer into the command context and returns its
// cleanup. A ring is written out only when s ends with a failure.
func setupTracing(cmd *cobra.Command, s *session) (func(), error) {
	cfg, err := traceConfig(cmd.Root())
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if tracer == trace.Nop {
		return func() {}, nil
	}

	return func() {
		var errs []error
		if s.failed {
			errs = append(errs, trace.DumpRing(tracer, cfg))
		}
		errs = append(errs, tracer.Close())
		if err := errors.Join(errs...); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}
