// Package pipeline defines the progress events and stage timings shared by
// the generation driver, the progress UI and the CLI.
package pipeline
