// Package datatype is the engine's value type system.
//
// A Registry maps type names (e.g. "Float", "Vec3", "Texture2D") to a
// TypeDescriptor: the cty.Type the values are stored as, plus a factory that
// produces the type's default value. Every value that flows through a port is
// held in a Data container created from a descriptor. The container's type is
// fixed when it is created and every write is checked against it.
//
// Type identity is descriptor identity: two registered names that happen to
// share a cty.Type (Int and Float are both cty.Number) are still distinct,
// incompatible types.
package datatype
