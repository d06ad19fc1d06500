// Package console is the in-editor command bar at the bottom of the screen,
// toggled with backquote. Lines are parsed as commands and run through the
// registry; output and recent log lines are drawn above the input bar.
// ESC is deliberately not used here: it belongs to drag cancellation.
package console

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cad-engine/internal/commands"
	"cad-engine/internal/logger"
)

const (
	barHeight = 36
	prompt    = "> "
	fontSize  = 18
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 10
	lineHeight       = fontSize + 4
)

var (
	// Reused every frame when drawing to avoid per-frame color allocations.
	barColor    = rl.NewColor(40, 40, 40, 255)
	lineColor   = rl.NewColor(80, 80, 80, 255)
	histBgColor = rl.NewColor(24, 24, 24, 240)
)

// Console is the command input bar. When open it captures typing; the editor
// skips manipulation input while it is open.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
}

// New returns a closed console that logs lines and runs them through reg.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen returns true when the console is visible and capturing input.
func (c *Console) IsOpen() bool {
	return c.open
}

// Update handles backquote (toggle open/closed) and, when open: typing,
// backspace, enter. Call once per frame before manipulation input.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyGrave) {
		c.open = !c.open
		return
	}
	if !c.open {
		return
	}
	for {
		ch := rl.GetCharPressed()
		if ch == 0 {
			break
		}
		if ch == '`' {
			continue
		}
		c.inputBuf += string(rune(ch))
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		line := c.inputBuf
		c.inputBuf = ""
		c.log.Log(prompt + line)
		if args, ok := commands.Parse(line); ok {
			if err := c.reg.Execute(args); err != nil {
				c.log.Log(err.Error())
			}
		}
	}
}

// Draw draws the input bar at the bottom when open, with recent log lines
// above it. Uses GetScreenWidth/GetScreenHeight so the bar matches the 2D
// overlay coordinate system.
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - barHeight

	histHeight := maxLinesOnScreen * lineHeight
	histY := barY - histHeight
	if histY < 0 {
		histHeight = barY
		histY = 0
	}
	if histHeight > 0 {
		rl.DrawRectangle(0, int32(histY), int32(screenW), int32(histHeight), histBgColor)
	}
	lines := c.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := histY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > 200 {
			line = line[:197] + "..."
		}
		rl.DrawText(line, int32(padding), int32(y), int32(fontSize), rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(barHeight), barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, lineColor)
	rl.DrawText(prompt+c.inputBuf+"|", int32(padding), int32(barY+padding), int32(fontSize), rl.White)
}
