package core

// Color is the foreground color of a screen cell. The host maps each value
// to a terminal color.
type Color uint8

// Palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorMagenta
	ColorCyan
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Colors of the things on the invaders field.
const (
	ColorPlayer       = ColorBrightGreen
	ColorPlayerBullet = ColorBrightWhite
	ColorAlienBullet  = ColorRed
	ColorDamaged      = ColorBrightYellow // Aliens with lives to spare
	ColorBrick        = ColorGreen
	ColorMotherShip   = ColorBrightRed
	ColorExplosion    = ColorOrange
	ColorGround       = ColorGray
	ColorLives        = ColorRed
)
