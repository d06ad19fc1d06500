package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// EditorConfigPath is the path to the editor config file, relative to the
// process working directory.
const EditorConfigPath = "config/editor.json"

// EditorPrefs holds editor preferences (overlays, grid, manipulation
// tolerances). Persisted across runs; scene content is not.
type EditorPrefs struct {
	ShowFPS       bool    `json:"show_fps"`
	ShowMemAlloc  bool    `json:"show_memalloc"`
	ShowDragState bool    `json:"show_drag_state"`
	GridVisible   bool    `json:"grid_visible"`
	SnapThreshold float32 `json:"snap_threshold"`
	HitRadiusPx   float32 `json:"hit_radius_px"`
}

// Default returns default editor preferences: overlays off except drag state,
// grid on, snap at 0.5 world units, 24 px hit radius.
func Default() EditorPrefs {
	return EditorPrefs{
		ShowDragState: true,
		GridVisible:   true,
		SnapThreshold: 0.5,
		HitRadiusPx:   24,
	}
}

// Load reads editor preferences from EditorConfigPath and applies environment
// overrides. If the file is missing or invalid, defaults are used and no file
// is created.
func Load() (EditorPrefs, error) {
	return LoadFrom(EditorConfigPath)
}

// LoadFrom reads editor preferences from path; see Load.
func LoadFrom(path string) (EditorPrefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &p); err != nil {
			p = Default()
		}
	}
	applyEnv(&p)
	if p.SnapThreshold <= 0 {
		p.SnapThreshold = Default().SnapThreshold
	}
	if p.HitRadiusPx <= 0 {
		p.HitRadiusPx = Default().HitRadiusPx
	}
	return p, nil
}

// Save writes editor preferences to EditorConfigPath, creating the config
// directory if needed.
func Save(p EditorPrefs) error {
	return SaveTo(EditorConfigPath, p)
}

// SaveTo writes editor preferences to path; see Save.
func SaveTo(path string, p EditorPrefs) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnv overrides prefs from EDITOR_* environment variables. Unparseable
// values are ignored.
func applyEnv(p *EditorPrefs) {
	if v, ok := envFloat("EDITOR_SNAP_THRESHOLD"); ok {
		p.SnapThreshold = v
	}
	if v, ok := envFloat("EDITOR_HIT_RADIUS_PX"); ok {
		p.HitRadiusPx = v
	}
}

func envFloat(key string) (float32, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil || v <= 0 {
		return 0, false
	}
	return float32(v), true
}
