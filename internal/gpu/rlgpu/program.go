package rlgpu

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"blackhole/internal/gpu"
	"blackhole/internal/utils"
)

type uniform struct {
	values []float32
	kind   rl.ShaderUniformDataType
}

// Program keeps uniform values until the next draw that uses it, since
// raylib can only bind samplers while the shader is active.
type Program struct {
	name     string
	shader   rl.Shader
	released bool

	locations map[string]int32
	uniforms  map[string]uniform
	textures  map[string]*Target
}

func newProgram(name, vertex, fragment string) (*Program, error) {
	shader := rl.LoadShaderFromMemory(vertex, fragment)
	// A failed compile falls back to the default shader id.
	if shader.ID == 0 || shader.ID == rl.GetShaderIdDefault() {
		return nil, fmt.Errorf("program %s: compile or link failed", name)
	}
	utils.Info("Shader: %s - Loaded successfully (ID: %d)", name, shader.ID)

	return &Program{
		name:      name,
		shader:    shader,
		locations: map[string]int32{},
		uniforms:  map[string]uniform{},
		textures:  map[string]*Target{},
	}, nil
}

func (p *Program) Name() string { return p.name }

func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := rl.GetShaderLocation(p.shader, name)
	if loc == -1 {
		utils.Debug("Shader: %s - uniform %s not active", p.name, name)
	}
	p.locations[name] = loc
	return loc
}

func (p *Program) SetFloat(name string, v float32) {
	p.uniforms[name] = uniform{[]float32{v}, rl.ShaderUniformFloat}
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	p.uniforms[name] = uniform{[]float32{v[0], v[1]}, rl.ShaderUniformVec2}
}

func (p *Program) SetTexture(name string, t gpu.RenderTarget) {
	p.textures[name] = t.(*Target)
}

func (p *Program) apply() {
	for name, u := range p.uniforms {
		if loc := p.location(name); loc != -1 {
			rl.SetShaderValue(p.shader, loc, u.values, u.kind)
		}
	}
	for name, t := range p.textures {
		if t.released {
			continue
		}
		if loc := p.location(name); loc != -1 {
			rl.SetShaderValueTexture(p.shader, loc, t.rt.Texture)
		}
	}
}

func (p *Program) Release() error {
	if p.released {
		return gpu.ErrReleased
	}
	p.released = true
	rl.UnloadShader(p.shader)
	return nil
}
