// Package cli contains the command line interface for tiles.
//
// # Usage
//
//	tiles [flags] [render] [FILE...]
//	tiles trim  [FILE...]
//	tiles check [FILE...]
//	tiles repl  [FILE]
//	tiles init  [--force]
//
// Render is the default command, so "tiles page.tpl" renders page.tpl.
// Input files are concatenated into one template; "-" or no files at all
// reads standard input.
//
// # Scope
//
// Expressions see the names bound by the scope flags of render and repl:
//
//   - --scope/-s FILE: YAML (.yaml, .yml) or JSON (.json) mapping of global
//     names; later files win
//   - --set/-D NAME=VALUE: local name; integers, floats, and booleans are
//     converted, anything else is a string
//   - --partial/-p NAME=FILE: template rendered by include("NAME")
//   - --[no-]builtins: env, cwd, path, and mung functions
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/tiles/config.yaml) and from the JSON
// file of the same name with a .json suffix. Keys are flag names:
//
//	log-level: debug
//	log-format: json
//	builtins: false
//
// Run "tiles init" to write the current values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o tiles .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/tiles/pprof)
package cli
