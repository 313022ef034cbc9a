package resource

import (
	"fmt"

	"github.com/gogpu/naga"

	"github.com/vidmix/vidmix/internal/logx"
	"github.com/vidmix/vidmix/timectx"
)

// Shader is a registered shader resource. The WGSL source is validated at
// registration by compiling it to SPIR-V, so a scene can never reference
// a shader the engine would reject at render time.
type Shader struct {
	// Source is the WGSL source text.
	Source string

	// SPIRV is the compiled module, little-endian byte order.
	SPIRV []byte
}

// ShaderRegistry registers shaders by id.
type ShaderRegistry struct {
	reg *Registry[*Shader]
}

// NewShaderRegistry creates an empty shader registry.
func NewShaderRegistry() *ShaderRegistry {
	return &ShaderRegistry{reg: NewRegistry[*Shader]()}
}

// Shaders is the process-wide shader registry.
var Shaders = NewShaderRegistry()

// Register validates the WGSL source and stores the shader under id.
func (r *ShaderRegistry) Register(id string, wgslSource string) (*Shader, error) {
	if wgslSource == "" {
		return nil, ErrEmptyData
	}

	spirv, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("resource: compiling shader %q: %w", id, err)
	}

	s := &Shader{Source: wgslSource, SPIRV: spirv}
	if err := r.reg.Register(id, s); err != nil {
		return nil, err
	}
	logx.Logger().Info("resource: shader registered", "shader", id, "spirvBytes", len(spirv))
	return s, nil
}

// RegisterAsync fetches and registers a shader off the caller's
// goroutine, holding a blocking task on tc while in flight (offline
// contexts only). settle receives the outcome; it may be nil.
func (r *ShaderRegistry) RegisterAsync(tc timectx.TimeContext, id string, fetch func() (string, error), settle func(*Shader, error)) {
	guardAsync(tc, func() {
		src, err := fetch()
		if err != nil {
			if settle != nil {
				settle(nil, fmt.Errorf("resource: fetching shader %q: %w", id, err))
			}
			return
		}
		s, err := r.Register(id, src)
		if settle != nil {
			settle(s, err)
		}
	})
}

// Unregister removes a shader.
func (r *ShaderRegistry) Unregister(id string) error { return r.reg.Unregister(id) }

// Lookup returns a registered shader.
func (r *ShaderRegistry) Lookup(id string) (*Shader, bool) { return r.reg.Lookup(id) }

// IDs returns all registered shader ids.
func (r *ShaderRegistry) IDs() []string { return r.reg.IDs() }
