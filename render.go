package cubetower

import (
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Node      *Node
	Transform [6]float64 // screen space
	Alpha     float64
	image     *ebiten.Image
}

// whitePixel is stretched over solid nodes. Created on first draw so
// headless code never touches the graphics driver.
var whitePixel *ebiten.Image

func solidImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Commands walks the tree in painter order and returns one command per
// visible node that draws something. Containers with a transparent color
// and no custom image draw nothing but their children still do.
func (s *Scene) Commands(buf []RenderCommand) []RenderCommand {
	view := identityTransform
	if s.camera != nil {
		view = s.camera.viewMatrix()
	}
	return s.traverse(s.root, view, 1, buf[:0])
}

func (s *Scene) traverse(n *Node, parent [6]float64, parentAlpha float64, buf []RenderCommand) []RenderCommand {
	if !n.Visible || n.disposed {
		return buf
	}
	m := multiplyAffine(parent, computeLocalTransform(n))
	alpha := parentAlpha * n.Alpha
	if s.debug && len(n.children) == 0 {
		debugCheckTreeDepth(n)
	}
	if alpha > 0 && n.Width > 0 && n.Height > 0 && (n.customImage != nil || n.Color.A > 0) {
		buf = append(buf, RenderCommand{Node: n, Transform: m, Alpha: alpha, image: n.customImage})
	}
	for _, child := range n.children {
		buf = s.traverse(child, m, alpha, buf)
	}
	return buf
}

// Draw renders the scene onto screen, then writes any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	start := time.Now()
	s.commands = s.Commands(s.commands)
	traversed := time.Now()
	for i := range s.commands {
		drawCommand(screen, &s.commands[i])
	}
	s.debugLog(debugStats{
		traverseTime: traversed.Sub(start),
		submitTime:   time.Since(traversed),
		commandCount: len(s.commands),
	})
	s.flushScreenshots(screen)
}

func drawCommand(dst *ebiten.Image, cmd *RenderCommand) {
	n := cmd.Node
	img := cmd.image
	tint := n.Color
	if img == nil {
		img = solidImage()
	} else {
		tint = ColorWhite
	}
	b := img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))
	m := cmd.Transform
	var geo ebiten.GeoM
	geo.SetElement(0, 0, m[0])
	geo.SetElement(1, 0, m[1])
	geo.SetElement(0, 1, m[2])
	geo.SetElement(1, 1, m[3])
	geo.SetElement(0, 2, m[4])
	geo.SetElement(1, 2, m[5])
	op.GeoM.Concat(geo)
	op.ColorScale.Scale(float32(tint.R), float32(tint.G), float32(tint.B), float32(tint.A*cmd.Alpha))
	dst.DrawImage(img, &op)
}

// holeImage rasterizes an anti-aliased oval with a darker rim.
func holeImage(w, h int, fill, rim color.Color) *ebiten.Image {
	dc := gg.NewContext(w, h)
	cx, cy := float64(w)/2, float64(h)/2
	dc.DrawEllipse(cx, cy, cx-1, cy-1)
	dc.SetColor(rim)
	dc.Fill()
	dc.DrawEllipse(cx, cy+float64(h)*0.06, cx*0.9, cy*0.82)
	dc.SetColor(fill)
	dc.Fill()
	return ebiten.NewImageFromImage(dc.Image())
}

// applyHoleTexture gives the hole node its oval look the first time the
// board is drawn.
func applyHoleTexture(n *Node) {
	if n == nil || n.customImage != nil || n.Width < 1 || n.Height < 1 {
		return
	}
	n.SetCustomImage(holeImage(int(n.Width), int(n.Height),
		color.RGBA{0x10, 0x10, 0x14, 0xff},
		color.RGBA{0x4a, 0x3b, 0x2e, 0xff},
	))
}

// Draw renders the board.
func (b *Board) Draw(screen *ebiten.Image) {
	applyHoleTexture(b.hole.Zone())
	screen.Fill(b.background)
	b.scene.Draw(screen)
}
