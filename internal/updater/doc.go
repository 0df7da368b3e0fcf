// Package updater implements the computation strategies behind node types.
//
//   - Shader binds a node's inputs to a gfx.Program as uniforms and draws into
//     render targets allocated once, when the node is instantiated.
//   - Dynamic wraps a callback over the node's input and output containers.
//   - Expr is a Dynamic whose callback evaluates HCL expressions, one per
//     output, over the node's input values.
//
// All strategies read only the node's inputs and write only its own outputs.
package updater
