// Package app wires the engine into a runnable application: it configures
// logging, registers the built-in modules, loads a patch and evaluates its
// terminal node once per frame.
package app
