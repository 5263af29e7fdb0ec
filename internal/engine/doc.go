// Package engine turns a LaunchConfig into the command-line tokens dsda-doom
// expects. Compilation is a pure function: no I/O, no shared state.
package engine
