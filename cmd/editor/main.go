package main

import (
	"fmt"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cad-engine/internal/commands"
	"cad-engine/internal/console"
	"cad-engine/internal/debug"
	"cad-engine/internal/editor"
	"cad-engine/internal/engineconfig"
	"cad-engine/internal/graphics"
	"cad-engine/internal/highlight"
	"cad-engine/internal/hittest"
	"cad-engine/internal/logger"
	"cad-engine/internal/primitives"
	"cad-engine/internal/scene"
)

func main() {
	prefs, _ := engineconfig.Load()
	primitives.LoadDefaults("assets/primitives")

	log := logger.New()
	scn := scene.New()
	scn.SetGridVisible(prefs.GridVisible)
	ed := editor.New(log, prefs.SnapThreshold, prefs.HitRadiusPx)
	reg := primitives.NewRegistry()

	dbg := debug.New()
	dbg.SetShowFPS(prefs.ShowFPS)
	dbg.SetShowMemAlloc(prefs.ShowMemAlloc)
	dbg.SetShowDragState(prefs.ShowDragState)

	cmds := commands.NewRegistry()
	registerCommands(cmds, log, scn, ed, &prefs)
	cons := console.New(log, cmds)

	seedScene(ed)

	var markers []highlight.Marker

	update := func() {
		cons.Update()
		viewportH := float32(rl.GetScreenHeight())
		pointer := rl.GetMousePosition()

		if !cons.IsOpen() {
			if rl.IsKeyPressed(rl.KeyEscape) {
				ed.CancelDrag()
			}
			if rl.IsKeyPressed(rl.KeyM) {
				ed.SetTool(hittest.ToolMove)
			}
			if rl.IsKeyPressed(rl.KeyP) {
				ed.SetTool(hittest.ToolPushPull)
			}
			if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
				additive := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
				ed.PointerDown(scn.Camera, pointer, viewportH, additive)
			}
			ed.PointerMove(scn.Camera, pointer, viewportH)
			if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
				ed.PointerUp()
			}
		}

		// Camera orbit is disabled for the duration of a drag session and
		// while typing in the console.
		scn.SetInputEnabled(!ed.Dragging() && !cons.IsOpen())
		scn.Update()

		markers = highlight.Build(scn.Camera, ed.Hover(), ed.Executor.Session(), viewportH)
		dbg.SetDragState(ed.DragStateLine())
	}

	draw := func() {
		camPos := scn.Camera.Position
		reg.SetView([3]float32{camPos.X, camPos.Y, camPos.Z}, [3]float32{0.5, 1, 0.5})

		rl.BeginMode3D(scn.Camera)
		scn.Draw()
		for _, s := range ed.Solids {
			reg.Draw(s, ed.Selection.Contains(s))
		}
		highlight.Draw(markers)
		rl.EndMode3D()

		cons.Draw()
		dbg.Draw()
		rl.DrawText(fmt.Sprintf("tool: %s", ed.Tool()), 12, 12, 20, rl.LightGray)
	}

	graphics.Run(update, draw)
	_ = engineconfig.Save(prefs)
}

// seedScene populates a small starter scene so there is something to grab.
func seedScene(ed *editor.Editor) {
	ed.AddSolid(primitives.KindBox, rl.NewVector3(0, 1, 0))
	ed.AddSolid(primitives.KindBox, rl.NewVector3(5, 1, 0))
	ed.AddSolid(primitives.KindPlane, rl.NewVector3(-4, 0, 3))
	ed.AddSolid(primitives.KindCylinder, rl.NewVector3(0, 1, -5))
}

// registerCommands wires the console commands: grid/snap/hit tuning, tool
// switching, and adding solids.
func registerCommands(reg *commands.Registry, log *logger.Logger, scn *scene.Scene, ed *editor.Editor, prefs *engineconfig.EditorPrefs) {
	reg.Register("grid", "grid on|off", nil, func(args []string) error {
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			return fmt.Errorf("usage: grid on|off")
		}
		visible := args[0] == "on"
		scn.SetGridVisible(visible)
		prefs.GridVisible = visible
		return nil
	})
	reg.Register("snap", "snap <world-distance>", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: snap <world-distance>")
		}
		v, err := strconv.ParseFloat(args[0], 32)
		if err != nil || v <= 0 {
			return fmt.Errorf("snap: bad distance %q", args[0])
		}
		ed.SetSnapThreshold(float32(v))
		prefs.SnapThreshold = float32(v)
		return nil
	})
	reg.Register("hitradius", "hitradius <pixels>", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: hitradius <pixels>")
		}
		v, err := strconv.ParseFloat(args[0], 32)
		if err != nil || v <= 0 {
			return fmt.Errorf("hitradius: bad pixel count %q", args[0])
		}
		ed.SetHitRadius(float32(v))
		prefs.HitRadiusPx = float32(v)
		return nil
	})
	reg.Register("tool", "tool move|pushpull", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: tool move|pushpull")
		}
		switch args[0] {
		case "move":
			ed.SetTool(hittest.ToolMove)
		case "pushpull":
			ed.SetTool(hittest.ToolPushPull)
		default:
			return fmt.Errorf("unknown tool: %s", args[0])
		}
		return nil
	})
	reg.Register("add", "add box|plane|cylinder|disc [x y z]", nil, func(args []string) error {
		if len(args) != 1 && len(args) != 4 {
			return fmt.Errorf("usage: add box|plane|cylinder|disc [x y z]")
		}
		kind := primitives.Kind(args[0])
		if !primitives.Manipulable(kind) {
			return fmt.Errorf("unknown kind: %s", args[0])
		}
		pos := rl.NewVector3(0, 1, 0)
		if len(args) == 4 {
			var c [3]float32
			for i, a := range args[1:] {
				v, err := strconv.ParseFloat(a, 32)
				if err != nil {
					return fmt.Errorf("add: bad coordinate %q", a)
				}
				c[i] = float32(v)
			}
			pos = rl.NewVector3(c[0], c[1], c[2])
		}
		s := ed.AddSolid(kind, pos)
		log.Logf("added %s %s", s.Kind, s.ID[:8])
		return nil
	})
	reg.Register("help", "list commands", nil, func(args []string) error {
		for _, name := range reg.Names() {
			log.Log(name + " - " + reg.Help(name))
		}
		return nil
	})
}
