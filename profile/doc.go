// Package profile provides optional runtime profiling for the tiles command.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] reports nothing and [Config.Start] returns a
// controller whose Stop does nothing.
//
// # Modes
//
// The supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, and trace. Each writes a file named after the mode (for
// example cpu.pprof) into the configured directory:
//
//	tiles --pprof-mode cpu --pprof-dir ./profiles render big.tpl
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// The default directory is "pprof" beneath the user cache directory for
// tiles.
//
// Building with the tag also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux]; tiles itself does not start a server.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
