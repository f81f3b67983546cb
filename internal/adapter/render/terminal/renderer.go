package terminal

import (
	"fmt"

	"shiloassist/internal/app/assist"
	"shiloassist/internal/domain/world"

	"github.com/gdamore/tcell/v2"
)

const (
	glyphPlayer  = '@'
	glyphPath    = '*'
	glyphBlocked = '#'
	glyphOpen    = '.'
	glyphSpot    = 'F'
	glyphDeposit = 'D'
)

// View is one paint: the player-centred window over a region plus the overlay frame.
type View struct {
	Player     world.Point
	Grid       *world.CollisionMap
	Candidates []world.Candidate
	Frame      assist.Frame
	Tick       int64
}

type Renderer struct {
	Screen tcell.Screen
}

// Origin returns the tile drawn in the top-left cell. North is up.
func Origin(player world.Point, width, height int) world.Point {
	return world.Point{X: player.X - width/2, Y: player.Y + (height-1)/2, Plane: player.Plane}
}

// Cell maps a tile to its screen cell; ok is false when the tile is off screen.
func Cell(origin, p world.Point, width, height int) (int, int, bool) {
	x, y := p.X-origin.X, origin.Y-p.Y
	if p.Plane != origin.Plane || x < 0 || y < 0 || x >= width || y >= height {
		return 0, 0, false
	}
	return x, y, true
}

func (r Renderer) Draw(v View) {
	s := r.Screen
	s.Clear()
	width, height := s.Size()
	mapRows := height - 1
	if width <= 0 || mapRows <= 0 {
		s.Show()
		return
	}
	origin := Origin(v.Player, width, mapRows)

	base := tcell.StyleDefault
	if v.Frame.IdleTint != nil {
		base = base.Background(rgb(*v.Frame.IdleTint))
	}

	for y := 0; y < mapRows; y++ {
		for x := 0; x < width; x++ {
			p := world.Point{X: origin.X + x, Y: origin.Y - y, Plane: origin.Plane}
			s.SetContent(x, y, tileGlyph(v.Grid, p), nil, base.Foreground(tcell.ColorGray))
		}
	}

	if v.Frame.PathStyle != nil {
		style := base.Foreground(rgb(v.Frame.PathStyle.Fill))
		for _, p := range v.Frame.Path {
			if x, y, ok := Cell(origin, p, width, mapRows); ok {
				s.SetContent(x, y, glyphPath, nil, style)
			}
		}
	}

	for _, c := range v.Candidates {
		x, y, ok := Cell(origin, c.Position, width, mapRows)
		if !ok {
			continue
		}
		switch c.Capability {
		case world.CapabilityFishingSpot:
			style := base.Foreground(tcell.ColorAqua)
			if v.Frame.Target != nil && v.Frame.Target.ID == c.ID {
				style = style.Bold(true).Underline(true)
			}
			s.SetContent(x, y, glyphSpot, nil, style)
		case world.CapabilityDepositBox:
			s.SetContent(x, y, glyphDeposit, nil, base.Foreground(tcell.ColorWhite))
		}
	}

	if h := v.Frame.Highlight; h != nil {
		if x, y, ok := Cell(origin, h.Point, width, mapRows); ok {
			s.SetContent(x, y, glyphDeposit, nil, base.Foreground(rgb(h.Color)).Reverse(true))
		}
	}

	if x, y, ok := Cell(origin, v.Player, width, mapRows); ok {
		s.SetContent(x, y, glyphPlayer, nil, base.Foreground(tcell.ColorYellow).Bold(true))
	}

	drawText(s, 0, height-1, width, StatusLine(v), tcell.StyleDefault.Reverse(true))
	s.Show()
}

// StatusLine summarises the frame in one row.
func StatusLine(v View) string {
	f := v.Frame
	mode := "ready"
	switch {
	case !f.InRegion:
		mode = "outside"
	case f.Idle:
		mode = "IDLE"
	case f.FallbackActive:
		mode = "bank"
	}
	line := fmt.Sprintf("t=%d %s", v.Tick, mode)
	if f.Target != nil {
		line += " target=" + f.Target.ID
	}
	if f.Path != nil {
		line += fmt.Sprintf(" steps=%d", f.Path.Len())
	}
	if f.Inventory != nil {
		line += fmt.Sprintf(" free=%d(%s)", f.Inventory.Free, f.Inventory.Level)
	}
	return line
}

func tileGlyph(grid *world.CollisionMap, p world.Point) rune {
	if grid == nil {
		return ' '
	}
	flags, ok := grid.Flags(p)
	if !ok {
		return ' '
	}
	if flags&world.BlockFull != 0 {
		return glyphBlocked
	}
	return glyphOpen
}

func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= width {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		s.SetContent(col, y, ' ', nil, style)
	}
}

func rgb(c assist.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
