package dungeongraph

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/voidshard/dungeongraph/internal/pixel"
	"github.com/voidshard/dungeongraph/internal/line"

	"github.com/boljen/go-bitmap"
	"github.com/fogleman/gg"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/image/colornames"
)

const (
	// bit numbers for our bitmap
	bitTile      = 0
	bitDoor      = 1
	bitBlocked   = 2
	bitLink      = 3
	bitConnector = 4

	// world units of empty space around the dungeon
	mapPadding = 1.0
)

// DungeonMap is a top down (X/Z) raster of a Dungeon.
// Pixel (0,0) is the most negative X/Z corner of the dungeon (minus padding).
type DungeonMap interface {
	// Save as custom file in a format defined by the library
	Save(fpath string) error

	// SaveAdv saves as an image with the given color scheme
	SaveAdv(fpath string, scheme *ColourScheme) error

	// CustomImage returns an image with the given color scheme
	CustomImage(scheme *ColourScheme) (image.Image, error)

	// Pixel returns the pixel a world position falls on
	Pixel(c model3d.Coord3D) image.Point

	IsTile(x, y int) bool
	IsDoor(x, y int) bool
	IsBlocked(x, y int) bool
	IsLink(x, y int) bool
	IsConnector(x, y int) bool

	// TileID returns the ID of the tile at x,y (-1 if none)
	TileID(x, y int) (int, error)

	// Role returns the role & path of the tile at x,y
	Role(x, y int) (Role, int, error)
}

// imageMap is a particular implementation of DungeonMap using a RGBA64
type imageMap struct {
	// Map is an RGBA64 image where each pixel of 64 bits is split via
	//
	// R [16 bits]
	//   16-1: [16 bits] -> path (0 main, n branch n)
	// G [16 bits]
	// B [16 bits]
	//   32-1 [32 bits] -> tile id + 1 (0 is no tile), G holds the significant bits
	// A [16 bits]
	//   16-9 [8 bits] -> role
	//    8-1 [8 bits] -> bitmap (true if set, false if not)
	//       bit 0 -> isTile
	//       bit 1 -> isDoor
	//       bit 2 -> isBlocked
	//       bit 3 -> isLink (origin -> child)
	//       bit 4 -> isConnector
	//       bit 5-7 -> unused
	//
	im *image.RGBA64

	// scratch image we paint props onto with a drawing lib, copied into
	// im by endDraw()
	ctx *gg.Context

	// world X/Z of pixel 0,0 & pixels per world unit
	minX, minZ float64
	scale      float64
}

// ColourScheme defines how various features in a dungeon should be coloured.
type ColourScheme struct {
	Background color.Color
	Doors      color.Color
	Blocked    color.Color
	Links      color.Color
	Connectors color.Color

	// Branches colours normal tiles not on the main path
	Branches color.Color
	Roles    map[Role]color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
// start(cyan), main path(yellow), branch path(green), exit(magenta)
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.Black,
		Doors:      colornames.Saddlebrown,
		Blocked:    colornames.Dimgray,
		Links:      colornames.Crimson,
		Connectors: colornames.White,
		Branches:   colornames.Limegreen,
		Roles: map[Role]color.Color{
			RoleStart:  colornames.Cyan,
			RoleNormal: colornames.Gold,
			RoleExit:   colornames.Magenta,
		},
	}
}

// Map returns a DungeonMap at `scale` pixels per world unit.
func (d *Dungeon) Map(scale float64) DungeonMap {
	m := newMap(d, scale)

	for _, t := range d.Tiles {
		m.drawTile(t)
	}
	for _, t := range d.Tiles {
		origin := d.Tile(t.Origin)
		if origin == nil {
			continue
		}
		for _, p := range line.PointsBetween(m.Pixel(centre(origin)), m.Pixel(centre(t))) {
			m.setBit(p.X, p.Y, bitLink)
		}
	}
	for _, t := range d.Tiles {
		for _, c := range t.Connectors {
			p := m.Pixel(c.Position)
			m.setBit(p.X, p.Y, bitConnector)
		}
	}
	for _, p := range d.Props {
		width := 1.0
		if c := d.Connector(ConnectorRef{Tile: p.Tile, Index: p.Connector}); c != nil && c.Size.X > 0 {
			width = c.Size.X
		}
		m.drawProp(p, width)
	}

	m.endDraw()
	return m
}

// newMap returns a blank map large enough for all of d's tiles
func newMap(d *Dungeon, scale float64) *imageMap {
	if scale <= 0 {
		scale = 1
	}

	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, t := range d.Tiles {
		minX = math.Min(minX, t.Bounds.MinVal.X)
		minZ = math.Min(minZ, t.Bounds.MinVal.Z)
		maxX = math.Max(maxX, t.Bounds.MaxVal.X)
		maxZ = math.Max(maxZ, t.Bounds.MaxVal.Z)
	}
	if len(d.Tiles) == 0 {
		minX, minZ, maxX, maxZ = 0, 0, 0, 0
	}
	minX -= mapPadding
	minZ -= mapPadding
	maxX += mapPadding
	maxZ += mapPadding

	bounds := image.Rect(
		0, 0,
		int(math.Ceil((maxX-minX)*scale))+1,
		int(math.Ceil((maxZ-minZ)*scale))+1,
	)

	ctx := gg.NewContextForRGBA(image.NewRGBA(bounds))
	ctx.SetRGBA(0, 0, 0, 0)
	ctx.Clear()

	return &imageMap{
		im:    image.NewRGBA64(bounds),
		ctx:   ctx,
		minX:  minX,
		minZ:  minZ,
		scale: scale,
	}
}

// centre of a tile's bounds
func centre(t *Tile) model3d.Coord3D {
	return t.Bounds.MinVal.Add(t.Bounds.MaxVal).Scale(0.5)
}

// Pixel returns the pixel world position c sits on
func (c *imageMap) Pixel(pos model3d.Coord3D) image.Point {
	return image.Pt(
		int(math.Floor((pos.X-c.minX)*c.scale)),
		int(math.Floor((pos.Z-c.minZ)*c.scale)),
	)
}

// drawTile fills the tile's footprint
func (c *imageMap) drawTile(t *Tile) {
	a := c.Pixel(t.Bounds.MinVal)
	b := c.Pixel(t.Bounds.MaxVal)
	for y := a.Y; y < b.Y; y++ {
		for x := a.X; x < b.X; x++ {
			if c.isOutOfBounds(x, y) {
				continue
			}
			c.setTile(x, y, t)
		}
	}
}

// drawProp paints a prop on to our scratch image; doorways as red discs &
// blockers as green squares (colours here are only markers for endDraw)
func (c *imageMap) drawProp(p *Prop, width float64) {
	at := c.Pixel(p.Position)
	r := math.Max(1, width*c.scale/2)

	switch p.Kind {
	case PropDoorway:
		c.ctx.SetColor(color.RGBA{255, 0, 0, 255})
		c.ctx.DrawCircle(float64(at.X), float64(at.Y), r)
	case PropBlocker:
		c.ctx.SetColor(color.RGBA{0, 255, 0, 255})
		c.ctx.DrawRectangle(float64(at.X)-r, float64(at.Y)-r, 2*r, 2*r)
	default:
		return
	}
	c.ctx.Fill()
}

// endDraw copies the props painted on our scratch image into our map bits
func (c *imageMap) endDraw() {
	temp := c.ctx.Image()
	bnds := temp.Bounds()

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			r, g, _, _ := temp.At(dx, dy).RGBA()
			if r>>8 > 0 {
				c.setBit(dx, dy, bitDoor)
			}
			if g>>8 > 0 {
				c.setBit(dx, dy, bitBlocked)
			}
		}
	}
}

// Save the DungeonMap as is to disk
func (c *imageMap) Save(fpath string) error {
	return savePNG(fpath, c.im)
}

// CustomImage returns the DungeonMap coloured with the given Scheme
func (c *imageMap) CustomImage(scheme *ColourScheme) (image.Image, error) {
	bnds := c.im.Bounds()
	im := image.NewRGBA(bnds)

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			bm := c.getBM(dx, dy)

			if bm.Get(bitDoor) {
				im.Set(dx, dy, scheme.Doors)
				continue
			} else if bm.Get(bitBlocked) {
				im.Set(dx, dy, scheme.Blocked)
				continue
			} else if bm.Get(bitConnector) {
				im.Set(dx, dy, scheme.Connectors)
				continue
			} else if bm.Get(bitLink) {
				im.Set(dx, dy, scheme.Links)
				continue
			} else if !bm.Get(bitTile) {
				im.Set(dx, dy, scheme.Background)
				continue
			}

			role, path, err := c.Role(dx, dy)
			if err != nil {
				return nil, err
			}
			if role == RoleNormal && path > 0 {
				im.Set(dx, dy, scheme.Branches)
				continue
			}
			col, ok := scheme.Roles[role]
			if ok {
				im.Set(dx, dy, col)
			}
		}
	}

	return im, nil
}

// SaveAdv essentially saves the DungeonMap using the given scheme to disk.
// Essentially sugar around "CustomImage()" followed by writing out a PNG.
func (c *imageMap) SaveAdv(fpath string, scheme *ColourScheme) error {
	im, err := c.CustomImage(scheme)
	if err != nil {
		return err
	}
	ctx := gg.NewContextForRGBA(im.(*image.RGBA))
	return ctx.SavePNG(fpath)
}

// Role returns the role & path of the tile at x,y
func (c *imageMap) Role(x, y int) (Role, int, error) {
	if c.isOutOfBounds(x, y) {
		return "", -1, fmt.Errorf("(%d,%d) is out of bounds", x, y)
	}

	v := c.im.RGBA64At(x, y)
	roleid, _ := pixel.Unpack8(v.A)

	role, ok := roleForID(int(roleid))
	if !ok {
		return "", -1, fmt.Errorf("no tile at (%d,%d)", x, y)
	}
	return role, int(v.R), nil
}

// TileID returns the ID of the tile at x,y, -1 if there is no tile.
func (c *imageMap) TileID(x, y int) (int, error) {
	if c.isOutOfBounds(x, y) {
		return -1, fmt.Errorf("(%d,%d) is out of bounds", x, y)
	}

	v := c.im.RGBA64At(x, y)
	return int(pixel.Pack16(v.G, v.B)) - 1, nil
}

// setTile records tile t at x,y
func (c *imageMap) setTile(x, y int, t *Tile) {
	v := c.im.RGBA64At(x, y)
	_, bmbits := pixel.Unpack8(v.A)

	g, b := pixel.Unpack16(uint32(t.ID + 1))
	v.R = uint16(t.Path)
	v.G = g
	v.B = b
	v.A = pixel.Pack8(uint8(t.Role.ID()), bmbits)

	c.im.SetRGBA64(x, y, v)
	c.setBit(x, y, bitTile)
}

// setBit sets bit n of the bitmap at x,y
func (c *imageMap) setBit(x, y, n int) {
	if c.isOutOfBounds(x, y) {
		return
	}
	bm := c.getBM(x, y)
	bm.Set(n, true)
	c.setBM(x, y, bm)
}

// setBM sets the 8 bit bitmap at x,y
func (c *imageMap) setBM(x, y int, bm bitmap.Bitmap) {
	current := c.im.RGBA64At(x, y)
	role, _ := pixel.Unpack8(current.A)
	current.A = pixel.Pack8(role, pixel.FlagByte(bm))

	c.im.SetRGBA64(x, y, current)
}

// getBM gets the 8 bit bitmap at x,y
func (c *imageMap) getBM(x, y int) bitmap.Bitmap {
	current := c.im.RGBA64At(x, y)

	_, bmdata := pixel.Unpack8(current.A)
	return pixel.Flags(bmdata)
}

// hasBit returns if bit n is set at x,y
func (c *imageMap) hasBit(x, y, n int) bool {
	if c.isOutOfBounds(x, y) {
		return false
	}
	return c.getBM(x, y).Get(n)
}

// IsTile returns if there is a tile at x,y
func (c *imageMap) IsTile(x, y int) bool {
	return c.hasBit(x, y, bitTile)
}

// IsDoor returns if there is a doorway at x,y
func (c *imageMap) IsDoor(x, y int) bool {
	return c.hasBit(x, y, bitDoor)
}

// IsBlocked returns if there is a blocker at x,y
func (c *imageMap) IsBlocked(x, y int) bool {
	return c.hasBit(x, y, bitBlocked)
}

// IsLink returns if an origin link passes through x,y
func (c *imageMap) IsLink(x, y int) bool {
	return c.hasBit(x, y, bitLink)
}

// IsConnector returns if a connector sits at x,y
func (c *imageMap) IsConnector(x, y int) bool {
	return c.hasBit(x, y, bitConnector)
}

// isOutOfBounds determines if x,y is outside of the image area
func (c *imageMap) isOutOfBounds(x, y int) bool {
	return !image.Pt(x, y).In(c.im.Bounds())
}
