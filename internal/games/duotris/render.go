package duotris

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/duotris/internal/core"
	"github.com/vovakirdan/duotris/internal/games/duotris/core"
)

// Layout constants. Each board cell is two characters wide.
const (
	cellW      = 2
	hudHeight  = 1
	panelW     = 16
	wellW      = core.BoardWidth*cellW + 2
	wellH      = core.BoardHeight + 2
	minScreenW = wellW + 2*panelW
	minScreenH = hudHeight + wellH
)

// updateLayout recomputes whether the well fits the screen.
func (g *Game) updateLayout() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// wellOrigin returns the top-left corner of the well's frame.
func (g *Game) wellOrigin() (int, int) {
	return (g.screenW - wellW) / 2, hudHeight
}

// engineColor maps a piece color to a terminal color.
func engineColor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorCyan:
		return platformcore.ColorCyan
	case core.ColorBlue:
		return platformcore.ColorBlue
	case core.ColorOrange:
		return platformcore.ColorOrange
	case core.ColorYellow:
		return platformcore.ColorYellow
	case core.ColorGreen:
		return platformcore.ColorGreen
	case core.ColorPurple:
		return platformcore.ColorPurple
	case core.ColorRed:
		return platformcore.ColorRed
	default:
		return platformcore.ColorDefault
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	g.renderWell(dst)
	g.renderPanels(dst)

	switch {
	case g.match.GameOver():
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.match.Paused():
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Level: %d  Lines: %d",
		g.Title(), g.match.Score(), g.match.Level(), g.match.Lines())
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorBrightWhite)
}

// renderWell draws the frame, the locked cells, ghosts and live pieces.
func (g *Game) renderWell(dst *platformcore.Screen) {
	ox, oy := g.wellOrigin()
	dst.DrawBoxWithColor(platformcore.NewRect(ox, oy, wellW, wellH), platformcore.ColorGray)

	board := g.match.Board()
	for y := range core.BoardHeight {
		for x := range core.BoardWidth {
			cell := board.At(x, y)
			if cell.Filled {
				g.drawCell(dst, x, y, '█', engineColor(cell.Color))
			} else {
				g.drawCell(dst, x, y, '·', platformcore.ColorGray)
			}
		}
	}

	// Ghosts first so live pieces always draw over them.
	for i := range g.match.SlotCount() {
		id := core.SlotID(i)
		p := g.match.Current(id)
		pos, ok := g.match.GhostPosition(id)
		if p == nil || !ok || pos == p.Pos {
			continue
		}
		hl := g.cfg.Slots[i].HighlightColor()
		for _, c := range p.CellsAt(pos) {
			g.drawCell(dst, c.X, c.Y, '░', hl)
		}
	}

	for i := range g.match.SlotCount() {
		p := g.match.Current(core.SlotID(i))
		if p == nil {
			continue
		}
		col := engineColor(p.Color)
		for _, c := range p.Cells() {
			g.drawCell(dst, c.X, c.Y, '█', col)
		}
	}
}

// drawCell paints one board cell. Cells above the visible field are skipped.
func (g *Game) drawCell(dst *platformcore.Screen, x, y int, r rune, c platformcore.Color) {
	if x < 0 || x >= core.BoardWidth || y < 0 || y >= core.BoardHeight {
		return
	}
	ox, oy := g.wellOrigin()
	sx := ox + 1 + x*cellW
	sy := oy + 1 + y
	if r == '·' {
		dst.SetWithColor(sx, sy, ' ', c)
		dst.SetWithColor(sx+1, sy, r, c)
		return
	}
	for i := range cellW {
		dst.SetWithColor(sx+i, sy, r, c)
	}
}

// renderPanels draws one info panel per slot: the first slot on the left of
// the well, the second on the right, and any further slots below the first.
func (g *Game) renderPanels(dst *platformcore.Screen) {
	ox, oy := g.wellOrigin()
	leftX := ox - panelW + 1
	rightX := ox + wellW + 1

	for i := range g.match.SlotCount() {
		x, y := leftX, oy
		switch {
		case i == 1:
			x = rightX
		case i >= 2:
			y = oy + 10*(i-1)
		}
		g.renderPanel(dst, x, y, i)
	}
}

func (g *Game) renderPanel(dst *platformcore.Screen, x, y, i int) {
	id := core.SlotID(i)
	sc := g.cfg.Slots[i]
	hl := sc.HighlightColor()

	dst.DrawTextWithColor(x, y, strings.ToUpper(sc.Name), hl)
	dst.DrawTextWithColor(x, y+1, "Next:", platformcore.ColorGray)
	if next := g.match.Next(id); next != nil {
		g.renderPreview(dst, x+1, y+2, next)
	}
	dst.DrawText(x, y+6, fmt.Sprintf("Locks: %d", g.match.Locks(id)))
	dst.DrawTextWithColor(x, y+7, fmt.Sprintf("Speed: %dms", g.match.Interval(id).Milliseconds()), platformcore.ColorGray)
}

// renderPreview draws a piece's shape without its empty rows.
func (g *Game) renderPreview(dst *platformcore.Screen, x, y int, p *core.Tetromino) {
	col := engineColor(p.Color)
	row := 0
	for _, line := range p.Shape {
		empty := true
		for cx, filled := range line {
			if !filled {
				continue
			}
			empty = false
			dst.SetWithColor(x+cx*cellW, y+row, '█', col)
			dst.SetWithColor(x+cx*cellW+1, y+row, '█', col)
		}
		if !empty {
			row++
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := platformcore.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
