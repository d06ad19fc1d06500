package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Run starts the window and main loop. Each frame it calls update (input and
// manipulation), then clears the screen and calls draw. Windowed 1600x900,
// resizable. ESC is reserved for cancelling a drag session, so it is not an
// exit key; close via the window button.
func Run(update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1600, 900, "cad-engine")
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(28, 30, 34, 255))
		draw()
		rl.EndDrawing()
	}
}
