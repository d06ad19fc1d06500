package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// cached holds the unit mesh and material for a kind. Created lazily on first
// Draw so GPU resources are allocated after the window/OpenGL context exists.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry draws solids. Each kind has one unit mesh that is scaled per solid
// from its live Dimensions, so a mid-drag resize needs no mesh rebuild.
type Registry struct {
	cache    map[Kind]cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no meshes. Meshes are created on first use.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[Kind]cached),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once
// per frame before drawing solids so the lit shader gets correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

var defaultSolidColor = rl.NewColor(158, 158, 162, 255)
var selectedSolidColor = rl.NewColor(120, 170, 230, 255)

// defaultCylinderSlices controls cylinder/disc mesh resolution.
const defaultCylinderSlices = 24

// ensure creates the unit mesh and lit material for a kind if not yet cached.
// Box and plane are 1x1(x1); cylinder/disc share a radius-0.5 height-1 mesh
// whose base sits at Y=0 (raylib convention), recentered at draw time.
func (r *Registry) ensure(kind Kind) {
	if _, ok := r.cache[kind]; ok {
		return
	}
	var mesh rl.Mesh
	switch kind {
	case KindBox:
		mesh = rl.GenMeshCube(1, 1, 1)
	case KindPlane:
		mesh = rl.GenMeshPlane(1, 1, 1, 1)
	case KindCylinder, KindDisc:
		mesh = rl.GenMeshCylinder(0.5, 1, defaultCylinderSlices)
	default:
		return
	}
	mtl := rl.LoadMaterialDefault()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = defaultSolidColor
	}
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	r.cache[kind] = cached{mesh: mesh, mtl: mtl}
}

// scaleFor maps a solid's dimensions onto its kind's unit mesh.
func scaleFor(s *Solid) [3]float32 {
	d := s.Dimensions
	switch s.Kind {
	case KindBox:
		return [3]float32{d.Width, d.Height, d.Depth}
	case KindPlane:
		return [3]float32{d.Width, 1, d.Depth}
	case KindCylinder:
		return [3]float32{d.Radius * 2, d.Height, d.Radius * 2}
	case KindDisc:
		// Flat disc rendered as a very short cylinder.
		return [3]float32{d.Radius * 2, MinDimension, d.Radius * 2}
	}
	return [3]float32{1, 1, 1}
}

// centerOffset shifts the unit mesh in model space so the solid's Position is
// its center. Cylinders (and discs) need -0.5 on Y: raylib's cylinder mesh has
// its base at Y=0, top at Y=height.
func centerOffset(kind Kind) [3]float32 {
	if kind == KindCylinder || kind == KindDisc {
		return [3]float32{0, -0.5, 0}
	}
	return [3]float32{0, 0, 0}
}

// Draw draws one solid at its current position and dimensions. Must be called
// between BeginMode3D and EndMode3D, after SetView for the frame.
// selected tints the albedo; unknown kinds are skipped.
func (r *Registry) Draw(s *Solid, selected bool) {
	r.ensure(s.Kind)
	c, ok := r.cache[s.Kind]
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		if selected {
			albedo.Color = selectedSolidColor
		} else {
			albedo.Color = defaultSolidColor
		}
	}
	r.setLitShaderUniforms(c.mtl.Shader)

	sc := scaleFor(s)
	off := centerOffset(s.Kind)
	scaleM := rl.MatrixScale(sc[0], sc[1], sc[2])
	rotM := rl.MatrixRotateXYZ(s.Rotation)
	transM := rl.MatrixTranslate(s.Position.X, s.Position.Y, s.Position.Z)
	var transform rl.Matrix
	if off[1] != 0 {
		offM := rl.MatrixTranslate(off[0], off[1], off[2])
		// Order: recenter mesh, then scale, rotate, translate to position.
		transform = rl.MatrixMultiply(rl.MatrixMultiply(rl.MatrixMultiply(transM, rotM), scaleM), offM)
	} else {
		transform = rl.MatrixMultiply(rl.MatrixMultiply(transM, rotM), scaleM)
	}
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// loadLitShader returns a shader doing directional light + ambient, matching
// raylib's mesh vertex attributes (vertexPosition, vertexTexCoord, vertexNormal).
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * 0.75;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  finalColor = vec4(amb + diffuse, colDiffuse.a);
}
`
)

// defaultAmbient keeps shadowed sides readable instead of pure black.
var defaultAmbient = [4]float32{0.25, 0.27, 0.3, 1.0}

// setLitShaderUniforms sets viewPos, lightDir, and ambient on the given shader
// (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
}
