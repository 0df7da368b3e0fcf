package gfx

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrNotBound is returned when drawing with a program that is not bound.
var ErrNotBound = errors.New("program not bound")

// Call is one recorded device operation.
type Call struct {
	Program string
	Op      string
	Arg     string
}

func (c Call) String() string {
	if c.Arg == "" {
		return c.Program + "." + c.Op
	}
	return fmt.Sprintf("%s.%s(%s)", c.Program, c.Op, c.Arg)
}

// Recorder is a headless Device. The default target is a framebuffer with
// ID 0 whose single attachment receives whatever is drawn to the screen.
type Recorder struct {
	mu     sync.Mutex
	nextID uint32
	calls  []Call
	screen *FrameBuffer
}

// NewRecorder creates a recorder with a default target of the given size.
func NewRecorder(vp Viewport) *Recorder {
	return &Recorder{
		nextID: 1,
		screen: &FrameBuffer{
			Width:       vp.Width,
			Height:      vp.Height,
			Attachments: []*Texture2D{{Width: vp.Width, Height: vp.Height}},
		},
	}
}

// Screen returns the default target.
func (r *Recorder) Screen() *FrameBuffer { return r.screen }

// NewFrameBuffer implements Device.
func (r *Recorder) NewFrameBuffer(width, height, attachments int) (*FrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	fb := &FrameBuffer{ID: r.nextID, Width: width, Height: height}
	r.nextID++
	for i := 0; i < attachments; i++ {
		fb.Attachments = append(fb.Attachments, &Texture2D{ID: r.nextID, Width: width, Height: height})
		r.nextID++
	}
	r.calls = append(r.calls, Call{Program: "device", Op: "NewFrameBuffer", Arg: fmt.Sprintf("%d", fb.ID)})
	return fb, nil
}

// NewProgram implements Device.
func (r *Recorder) NewProgram(name string, uniforms []Uniform) (Program, error) {
	if name == "" {
		return nil, errors.New("program name is empty")
	}
	sorted := slices.Clone(uniforms)
	slices.SortFunc(sorted, func(a, b Uniform) int { return strings.Compare(a.Name, b.Name) })
	return &recordedProgram{rec: r, name: name, uniforms: sorted, textures: make(map[int]*Texture2D)}, nil
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Reset drops recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *Recorder) record(program, op, arg string) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Program: program, Op: op, Arg: arg})
	r.mu.Unlock()
}

type recordedProgram struct {
	rec      *Recorder
	name     string
	uniforms []Uniform
	bound    bool
	target   *FrameBuffer
	textures map[int]*Texture2D
}

func (p *recordedProgram) Name() string        { return p.name }
func (p *recordedProgram) Uniforms() []Uniform { return slices.Clone(p.uniforms) }

func (p *recordedProgram) HasUniform(name string) bool {
	return slices.ContainsFunc(p.uniforms, func(u Uniform) bool { return u.Name == name })
}

func (p *recordedProgram) Bind(target *FrameBuffer) error {
	if target == nil {
		target = p.rec.screen
	}
	p.bound = true
	p.target = target
	clear(p.textures)
	p.rec.record(p.name, "Bind", fmt.Sprintf("%d", target.ID))
	return nil
}

func (p *recordedProgram) SetInt(name string, v int32) {
	p.rec.record(p.name, "SetInt", fmt.Sprintf("%s=%d", name, v))
}

func (p *recordedProgram) SetFloat(name string, v float32) {
	p.rec.record(p.name, "SetFloat", fmt.Sprintf("%s=%g", name, v))
}

func (p *recordedProgram) SetVec2(name string, v Vec2) {
	p.rec.record(p.name, "SetVec2", fmt.Sprintf("%s=(%g,%g)", name, v.X, v.Y))
}

func (p *recordedProgram) SetVec3(name string, v Vec3) {
	p.rec.record(p.name, "SetVec3", fmt.Sprintf("%s=(%g,%g,%g)", name, v.X, v.Y, v.Z))
}

func (p *recordedProgram) SetMat4(name string, v Mat4) {
	p.rec.record(p.name, "SetMat4", name)
}

func (p *recordedProgram) BindTexture(unit int, tex *Texture2D) {
	p.textures[unit] = tex
	p.rec.record(p.name, "BindTexture", fmt.Sprintf("%d=%d", unit, tex.ID))
}

// Draw writes "name(inputs...)" into every attachment of the target, where
// inputs are the contents of the bound textures in unit order.
func (p *recordedProgram) Draw() error {
	if !p.bound {
		return fmt.Errorf("drawing with %s: %w", p.name, ErrNotBound)
	}
	units := make([]int, 0, len(p.textures))
	for unit := range p.textures {
		units = append(units, unit)
	}
	slices.Sort(units)
	sources := make([]string, 0, len(units))
	for _, unit := range units {
		sources = append(sources, p.textures[unit].Content)
	}
	content := p.name + "(" + strings.Join(sources, ",") + ")"
	for _, tex := range p.target.Attachments {
		tex.Content = content
	}
	p.rec.record(p.name, "Draw", "")
	return nil
}

func (p *recordedProgram) Unbind() {
	p.bound = false
	p.target = nil
	p.rec.record(p.name, "Unbind", "")
}
