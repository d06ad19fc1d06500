package primitives

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Kind is the closed set of solid shapes the editor manipulates.
type Kind string

const (
	KindBox      Kind = "box"
	KindPlane    Kind = "plane"
	KindCylinder Kind = "cylinder"
	KindDisc     Kind = "disc"
)

// MinDimension is the smallest a dimension may be after any edit. Extrusion and
// promotion clamp to this rather than letting a solid degenerate to zero volume.
const MinDimension = float32(0.01)

// Dimensions holds kind-dependent sizes in world units. Box/plane use
// Width/Height/Depth (plane ignores Height); cylinder/disc use Radius+Height
// (disc ignores Height until promoted).
type Dimensions struct {
	Width  float32
	Height float32
	Depth  float32
	Radius float32
}

// Solid is one primitive in the scene. The manipulation engine borrows a
// reference during a drag and mutates Dimensions/Position in place; the scene
// owns creation and deletion.
type Solid struct {
	ID         string
	Kind       Kind
	Dimensions Dimensions
	Position   rl.Vector3
	// Rotation is XYZ Euler angles in radians. Stays zero for solids created
	// in the editor; carried so derived features follow oriented geometry.
	Rotation rl.Vector3
}

// NewSolid returns a solid of the given kind at position, sized from the kind
// defaults (see LoadDefaults).
func NewSolid(kind Kind, position rl.Vector3) *Solid {
	return &Solid{
		ID:         uuid.NewString(),
		Kind:       kind,
		Dimensions: DefaultDimensions(kind),
		Position:   position,
	}
}

// ClampDimensions enforces the minimum size on every dimension the kind uses.
func (s *Solid) ClampDimensions() {
	d := &s.Dimensions
	if d.Width < MinDimension {
		d.Width = MinDimension
	}
	if d.Height < MinDimension {
		d.Height = MinDimension
	}
	if d.Depth < MinDimension {
		d.Depth = MinDimension
	}
	if d.Radius < MinDimension {
		d.Radius = MinDimension
	}
}

// HalfExtents returns the half sizes of the solid's local axis-aligned bounding
// box. Flat kinds (plane, disc) report a zero-height box.
func (s *Solid) HalfExtents() rl.Vector3 {
	d := s.Dimensions
	switch s.Kind {
	case KindBox:
		return rl.NewVector3(d.Width/2, d.Height/2, d.Depth/2)
	case KindPlane:
		return rl.NewVector3(d.Width/2, 0, d.Depth/2)
	case KindCylinder:
		return rl.NewVector3(d.Radius, d.Height/2, d.Radius)
	case KindDisc:
		return rl.NewVector3(d.Radius, 0, d.Radius)
	}
	return rl.Vector3{}
}

// Dimension returns the size along a world axis (0=X, 1=Y, 2=Z) for extrusion.
func (s *Solid) Dimension(axis int) float32 {
	d := s.Dimensions
	switch s.Kind {
	case KindBox, KindPlane:
		switch axis {
		case 0:
			return d.Width
		case 1:
			return d.Height
		default:
			return d.Depth
		}
	case KindCylinder, KindDisc:
		if axis == 1 {
			return d.Height
		}
		return d.Radius * 2
	}
	return 0
}

// SetDimension sets the size along a world axis, clamped to MinDimension.
func (s *Solid) SetDimension(axis int, v float32) {
	if v < MinDimension {
		v = MinDimension
	}
	d := &s.Dimensions
	switch s.Kind {
	case KindBox, KindPlane:
		switch axis {
		case 0:
			d.Width = v
		case 1:
			d.Height = v
		default:
			d.Depth = v
		}
	case KindCylinder, KindDisc:
		if axis == 1 {
			d.Height = v
		} else {
			d.Radius = v / 2
		}
	}
}

// Caps describes what manipulation a kind supports. Branching on kind lives
// here so hit-testing, extrusion, and snapping stay kind-agnostic.
type Caps struct {
	// HasDiscreteCorners: solid exposes point corners for grabbing/snapping.
	HasDiscreteCorners bool
	// HasDiscreteEdges: solid exposes straight edges for grabbing/snapping.
	HasDiscreteEdges bool
	// Extrudable: faces can be pushed/pulled along their normal.
	Extrudable bool
	// PromotesTo, when non-empty, is the kind a flat solid becomes the first
	// time a face is extruded (plane -> box, disc -> cylinder).
	PromotesTo Kind
	// ExtrudeAxes masks which world axes extrusion may use (0=X,1=Y,2=Z).
	ExtrudeAxes [3]bool
}

var kindCaps = map[Kind]Caps{
	KindBox:      {HasDiscreteCorners: true, HasDiscreteEdges: true, Extrudable: true, ExtrudeAxes: [3]bool{true, true, true}},
	KindPlane:    {HasDiscreteEdges: true, Extrudable: true, PromotesTo: KindBox, ExtrudeAxes: [3]bool{true, true, true}},
	KindCylinder: {Extrudable: true, ExtrudeAxes: [3]bool{false, true, false}},
	KindDisc:     {Extrudable: true, PromotesTo: KindCylinder, ExtrudeAxes: [3]bool{false, true, false}},
}

// KindCaps returns the capability table entry for a kind. Unknown kinds get a
// zero Caps, which excludes them from every manipulation.
func KindCaps(k Kind) Caps {
	return kindCaps[k]
}

// Manipulable reports whether the kind participates in hit-testing at all.
func Manipulable(k Kind) bool {
	_, ok := kindCaps[k]
	return ok
}

// SolidDef is the YAML definition for a kind's default size
// (e.g. assets/primitives/box.yaml).
type SolidDef struct {
	Kind   string     `yaml:"kind"`
	Size   [3]float32 `yaml:"size,omitempty"`
	Radius float32    `yaml:"radius,omitempty"`
	Height float32    `yaml:"height,omitempty"`
}

// builtinDefaults are used when no YAML override exists for a kind.
var builtinDefaults = map[Kind]Dimensions{
	KindBox:      {Width: 2, Height: 2, Depth: 2},
	KindPlane:    {Width: 2, Depth: 2},
	KindCylinder: {Radius: 1, Height: 2},
	KindDisc:     {Radius: 1},
}

var loadedDefaults = map[Kind]Dimensions{}

// DefaultDimensions returns the default size for a kind: YAML override if one
// was loaded, builtin otherwise.
func DefaultDimensions(k Kind) Dimensions {
	if d, ok := loadedDefaults[k]; ok {
		return d
	}
	return builtinDefaults[k]
}

// LoadDefaults reads assets/primitives/*.yaml (relative to dir) and installs
// per-kind default dimensions. Missing directory or unparseable files are
// skipped; builtins remain for those kinds.
func LoadDefaults(dir string) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		var def SolidDef
		if err := yaml.Unmarshal(data, &def); err != nil {
			continue
		}
		installDefault(def)
	}
}

// installDefault converts a SolidDef to Dimensions for its kind.
func installDefault(def SolidDef) {
	k := Kind(def.Kind)
	if !Manipulable(k) {
		return
	}
	switch k {
	case KindBox, KindPlane:
		if def.Size[0] <= 0 || def.Size[2] <= 0 {
			return
		}
		loadedDefaults[k] = Dimensions{Width: def.Size[0], Height: def.Size[1], Depth: def.Size[2]}
	case KindCylinder, KindDisc:
		if def.Radius <= 0 {
			return
		}
		loadedDefaults[k] = Dimensions{Radius: def.Radius, Height: def.Height}
	}
}
