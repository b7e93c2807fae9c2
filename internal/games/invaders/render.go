package invaders

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/sim"
)

const (
	minScreenW = 40
	minScreenH = 16

	hudRows     = 2
	effectTicks = 12
	bannerTicks = 90
)

// Sprites per tier, two animation frames each.
var (
	classicSprites = [][2]string{
		{"{@}", "}@{"},
		{"/M\\", "\\M/"},
		{"<W>", ">W<"},
	}
	altSprites = [][2]string{
		{"(o)", "(O)"},
		{"[#]", "]#["},
		{"(x)", "(+)"},
	}
	tierColors = []core.Color{core.ColorCyan, core.ColorMagenta, core.ColorGreen}
)

const (
	playerSprite     = "/^\\"
	motherShipSprite = "<=O=>"
	playerBulletRune = '|'
	alienBulletRune  = '!'
	brickRune        = '█'
	explosionRune    = '*'
	borderHoriz      = '─'
)

// effect is a short-lived explosion drawn over the field.
type effect struct {
	pos  sim.Vec2
	size float64
	ttl  int
}

// viewport maps world coordinates to screen cells.
type viewport struct {
	minX, maxX float64
	minY, maxY float64
	top, rows  int
	cols       int
}

func (g *Game) viewport(dst *core.Screen) viewport {
	f := g.cfg.Field
	halfW := f.PlayerMaxX + 4
	return viewport{
		minX: -halfW,
		maxX: halfW,
		minY: f.GroundY - 2,
		maxY: g.cfg.MotherShip.Y + 4,
		top:  hudRows,
		rows: dst.Height() - hudRows - 1,
		cols: dst.Width(),
	}
}

// cell returns the screen cell for a world point and whether it is on the field.
func (v viewport) cell(p sim.Vec2) (int, int, bool) {
	if v.rows < 1 || v.cols < 1 {
		return 0, 0, false
	}
	x := int(math.Round((p.X - v.minX) / (v.maxX - v.minX) * float64(v.cols-1)))
	y := v.top + int(math.Round((v.maxY-p.Y)/(v.maxY-v.minY)*float64(v.rows-1)))
	ok := x >= 0 && x < v.cols && y >= v.top && y < v.top+v.rows
	return x, y, ok
}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}
	if g.world == nil {
		return
	}

	v := g.viewport(dst)
	g.renderHUD(dst)
	g.renderBarriers(dst, v)
	g.renderAliens(dst, v)
	g.renderMotherShip(dst, v)
	g.renderBullets(dst, v)
	g.renderPlayer(dst, v)
	g.renderEffects(dst, v)
	g.renderGround(dst, v)
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	snap := g.world.Run().Snapshot()

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", snap.Score))

	lives := g.world.Player().Lives()
	dst.DrawTextColored((dst.Width()-8-lives)/2, 0, "Lives: "+strings.Repeat("♥", max(lives, 0)), core.ColorLives)

	levelText := fmt.Sprintf("Level: %d", snap.Level)
	dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)

	dst.DrawHLine(0, 1, dst.Width(), borderHoriz)
}

func (g *Game) sprites() [][2]string {
	if g.alt {
		return altSprites
	}
	return classicSprites
}

func (g *Game) renderAliens(dst *core.Screen, v viewport) {
	sprites := g.sprites()
	frame := g.steps % 2
	for _, a := range g.world.Formation().Aliens() {
		if !a.Alive() {
			continue
		}
		x, y, ok := v.cell(a.Body().Pos)
		if !ok {
			continue
		}
		tier := a.Tier % len(sprites)
		color := tierColors[tier%len(tierColors)]
		if a.Lives() > 1 {
			color = core.ColorDamaged
		}
		sprite := sprites[tier][frame]
		dst.DrawTextColored(x-len(sprite)/2, y, sprite, color)
	}
}

func (g *Game) renderBarriers(dst *core.Screen, v viewport) {
	for _, bar := range g.world.Formation().Barriers() {
		for _, br := range bar.Bricks() {
			if !br.Alive() {
				continue
			}
			if x, y, ok := v.cell(br.Body().Pos); ok {
				dst.SetColored(x, y, brickRune, core.ColorBrick)
			}
		}
	}
}

func (g *Game) renderMotherShip(dst *core.Screen, v viewport) {
	ship := g.world.MotherShip().Ship()
	if ship == nil {
		return
	}
	if x, y, ok := v.cell(ship.Body().Pos); ok {
		dst.DrawTextColored(x-len(motherShipSprite)/2, y, motherShipSprite, core.ColorMotherShip)
	}
}

func (g *Game) renderBullets(dst *core.Screen, v viewport) {
	for _, b := range g.world.Player().Bullets() {
		if !b.Alive() {
			continue
		}
		if x, y, ok := v.cell(b.Body().Pos); ok {
			dst.SetColored(x, y, playerBulletRune, core.ColorPlayerBullet)
		}
	}
	enemy := append([]*sim.Bullet{}, g.world.Formation().Bullets()...)
	enemy = append(enemy, g.world.MotherShip().Bullets()...)
	for _, b := range enemy {
		if !b.Alive() {
			continue
		}
		if x, y, ok := v.cell(b.Body().Pos); ok {
			dst.SetColored(x, y, alienBulletRune, core.ColorAlienBullet)
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, v viewport) {
	p := g.world.Player()
	if !p.Visible() || p.Body() == nil {
		return
	}
	if x, y, ok := v.cell(p.Body().Pos); ok {
		dst.DrawTextColored(x-len(playerSprite)/2, y, playerSprite, core.ColorPlayer)
	}
}

func (g *Game) renderEffects(dst *core.Screen, v viewport) {
	for _, e := range g.effects {
		x, y, ok := v.cell(e.pos)
		if !ok {
			continue
		}
		// Grow the burst as it ages.
		age := effectTicks - e.ttl
		r := int(math.Ceil(e.size * float64(age+1) / 4))
		for dx := -r; dx <= r; dx++ {
			dst.SetColored(x+dx, y, explosionRune, core.ColorExplosion)
		}
		if r > 0 {
			dst.SetColored(x, y-1, explosionRune, core.ColorExplosion)
			dst.SetColored(x, y+1, explosionRune, core.ColorExplosion)
		}
	}
}

func (g *Game) renderGround(dst *core.Screen, v viewport) {
	_, y, ok := v.cell(sim.Vec2{Y: g.cfg.Field.GroundY})
	if ok {
		for x := range dst.Width() {
			if dst.Get(x, y) == ' ' {
				dst.SetColored(x, y, '_', core.ColorGround)
			}
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	snap := g.world.Run().Snapshot()
	switch {
	case g.paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case snap.Phase == sim.PhaseGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	case snap.Phase == sim.PhaseAliensWin:
		drawCenteredBox(dst, "THE INVADERS HAVE LANDED", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	case snap.Phase == sim.PhaseLevelClear:
		drawCenteredBox(dst, fmt.Sprintf("LEVEL %d CLEARED", snap.Level), "Get ready...")
	case g.bannerT > 0 && g.banner != "":
		dst.DrawTextCentered(dst.Height()-1, g.banner)
	case !g.world.Formation().Started():
		dst.DrawTextCentered(dst.Height()-1, "Get ready...  ←/→ move, SPACE fire")
	}
}

func levelBanner(level int) string {
	return fmt.Sprintf("LEVEL %d", level)
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	tw, sw := len([]rune(title)), len([]rune(subtitle))
	boxW := max(tw, sw) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawText(boxX+(boxW-tw)/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}
