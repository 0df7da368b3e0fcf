package gfx

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// MaxTextureUnits is the number of texture units a program can sample from.
const MaxTextureUnits = 8

// Texture2D is a 2D texture handle.
type Texture2D struct {
	ID            uint32
	Width, Height int
	// Content describes what was last rendered into the texture.
	Content string
}

// FrameBuffer is a render target with color attachments.
type FrameBuffer struct {
	ID            uint32
	Width, Height int
	Attachments   []*Texture2D
}

// Texture returns the i-th color attachment.
func (f *FrameBuffer) Texture(i int) *Texture2D {
	if i < 0 || i >= len(f.Attachments) {
		panic(fmt.Sprintf("gfx: attachment %d out of range [0,%d) on framebuffer %d", i, len(f.Attachments), f.ID))
	}
	return f.Attachments[i]
}

// Viewport is the size of the default render target.
type Viewport struct {
	Width, Height int
}

// Vec2 is a 2-component vector.
type Vec2 struct {
	X float32 `cty:"x"`
	Y float32 `cty:"y"`
}

// Vec3 is a 3-component vector, also used for RGB colors.
type Vec3 struct {
	X float32 `cty:"x"`
	Y float32 `cty:"y"`
	Z float32 `cty:"z"`
}

// Vec4 is a 4-component vector.
type Vec4 struct {
	X float32 `cty:"x"`
	Y float32 `cty:"y"`
	Z float32 `cty:"z"`
	W float32 `cty:"w"`
}

// Mix linearly interpolates between v and o.
func (v Vec3) Mix(o Vec3, t float32) Vec3 {
	return Vec3{
		X: v.X*(1-t) + o.X*t,
		Y: v.Y*(1-t) + o.Y*t,
		Z: v.Z*(1-t) + o.Z*t,
	}
}

// Mat4 is a column-major 4x4 matrix.
type Mat4 [16]float32

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// cty representations of the types above. Capsule types compare by identity,
// so these must be the only instances.
var (
	TextureType     = cty.Capsule("Texture2D", reflect.TypeOf(Texture2D{}))
	FrameBufferType = cty.Capsule("FrameBuffer", reflect.TypeOf(FrameBuffer{}))
	Vec2Type        = cty.Object(map[string]cty.Type{"x": cty.Number, "y": cty.Number})
	Vec3Type        = cty.Object(map[string]cty.Type{"x": cty.Number, "y": cty.Number, "z": cty.Number})
	Vec4Type        = cty.Object(map[string]cty.Type{"x": cty.Number, "y": cty.Number, "z": cty.Number, "w": cty.Number})
	Mat4Type        = cty.List(cty.Number)
)

// UniformKind is the GLSL type of a program uniform.
type UniformKind int

const (
	UniformInt UniformKind = iota
	UniformFloat
	UniformFloat2
	UniformFloat3
	UniformMat4
	UniformTexture2D
)

func (k UniformKind) String() string {
	switch k {
	case UniformInt:
		return "int"
	case UniformFloat:
		return "float"
	case UniformFloat2:
		return "vec2"
	case UniformFloat3:
		return "vec3"
	case UniformMat4:
		return "mat4"
	case UniformTexture2D:
		return "sampler2D"
	default:
		return "unknown"
	}
}

// Uniform is one named uniform location of a program.
type Uniform struct {
	Name string
	Kind UniformKind
}

// Program is a compiled shader program.
type Program interface {
	Name() string
	// Uniforms lists the program's uniforms sorted by name.
	Uniforms() []Uniform
	HasUniform(name string) bool
	// Bind makes the program current and directs drawing into target, or
	// into the default target when target is nil.
	Bind(target *FrameBuffer) error
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec2(name string, v Vec2)
	SetVec3(name string, v Vec3)
	SetMat4(name string, v Mat4)
	BindTexture(unit int, tex *Texture2D)
	// Draw renders a full-target quad with the current bindings.
	Draw() error
	Unbind()
}

// Device allocates rendering resources.
type Device interface {
	NewFrameBuffer(width, height, attachments int) (*FrameBuffer, error)
	NewProgram(name string, uniforms []Uniform) (Program, error)
}
