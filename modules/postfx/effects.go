package postfx

import "github.com/vk/kiwigraph/internal/gfx"

// Effect describes a compiled post-processing program by its uniforms.
type Effect struct {
	Name     string
	Uniforms []gfx.Uniform
}

func tex(name string) gfx.Uniform   { return gfx.Uniform{Name: name, Kind: gfx.UniformTexture2D} }
func float(name string) gfx.Uniform { return gfx.Uniform{Name: name, Kind: gfx.UniformFloat} }
func vec3(name string) gfx.Uniform  { return gfx.Uniform{Name: name, Kind: gfx.UniformFloat3} }

var windowSize = gfx.Uniform{Name: "windowSize", Kind: gfx.UniformFloat2}

// Effects returns the standard effect catalogue.
func Effects() []Effect {
	return []Effect{
		{Name: "Raymarching", Uniforms: []gfx.Uniform{
			{Name: "viewMatrix", Kind: gfx.UniformMat4},
			vec3("shadowColor"), vec3("skyColor"), vec3("groundColor"), vec3("buildingsColor"), vec3("redColor"),
			float("time"), float("shadowHardness"), float("fovyCoefficient"),
			windowSize,
		}},
		{Name: "Depth of field", Uniforms: []gfx.Uniform{
			windowSize, float("highlightGain"), float("focalDepth"), float("focalRange"),
			tex("inputImage"), tex("fragmentInfo"),
		}},
		{Name: "Edge detection", Uniforms: []gfx.Uniform{tex("inputImage"), tex("fragmentInfo"), vec3("edgeColor"), windowSize}},
		{Name: "Bloom", Uniforms: []gfx.Uniform{tex("inputImage"), float("bloomCoefficient"), windowSize}},
		{Name: "Radial blur", Uniforms: []gfx.Uniform{tex("inputImage"), windowSize}},
		{Name: "Sepia", Uniforms: []gfx.Uniform{tex("inputImage"), float("factor"), windowSize}},
		{Name: "Black and white", Uniforms: []gfx.Uniform{tex("inputImage"), float("factor"), windowSize}},
		{Name: "Corners", Uniforms: []gfx.Uniform{tex("inputImage"), vec3("cornerColor"), float("offset"), float("factor"), windowSize}},
		{Name: "Force alpha", Uniforms: []gfx.Uniform{tex("inputImage"), float("alpha"), windowSize}},
	}
}
