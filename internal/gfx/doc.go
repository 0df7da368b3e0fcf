// Package gfx models the rendering resources shader-backed nodes drive:
// textures, framebuffers and shader programs.
//
// The engine only needs the Device and Program interfaces. Recorder is the
// headless implementation used by the CLI and the tests; instead of touching
// a GPU it records every call and tracks, per texture, which chain of
// programs produced its contents.
package gfx
