package app

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gonewx/scrollfx/pkg/controller"
	"github.com/gonewx/scrollfx/pkg/particles"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	navHeight   = 56
	debugCharW  = 6  // ebitenutil 调试字体字宽
	debugCharH  = 16 // ebitenutil 调试字体行高
	videoWidth  = 320
	videoHeight = 180
)

var (
	colorBackground = color.RGBA{R: 0x0B, G: 0x0B, B: 0x14, A: 0xFF}
	colorNavSolid   = color.RGBA{R: 0x10, G: 0x10, B: 0x1C, A: 0xE0}
	colorAccent     = color.RGBA{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF}
	colorCard       = color.RGBA{R: 0x1E, G: 0x1E, B: 0x2E, A: 0xFF}
	colorDotIdle    = color.RGBA{R: 0x80, G: 0x80, B: 0x90, A: 0xFF}
)

// renderer 绘制页面
// 样式值全部来自 StyleDriver，渲染器本身不做滚动计算
type renderer struct {
	video    *ebiten.Image
	blurBuf  *ebiten.Image
	textBufs map[string]*ebiten.Image
}

func newRenderer() *renderer {
	return &renderer{
		video:    newVideoImage(),
		textBufs: make(map[string]*ebiten.Image),
	}
}

// newVideoImage 生成背景"视频"的占位渐变
func newVideoImage() *ebiten.Image {
	img := ebiten.NewImage(videoWidth, videoHeight)
	pix := make([]byte, videoWidth*videoHeight*4)
	for y := 0; y < videoHeight; y++ {
		for x := 0; x < videoWidth; x++ {
			fx := float64(x) / videoWidth
			fy := float64(y) / videoHeight
			i := (y*videoWidth + x) * 4
			pix[i] = uint8(40 + 120*fx)
			pix[i+1] = uint8(30 + 60*math.Sin(fx*math.Pi*3+fy*2)*0.5 + 30)
			pix[i+2] = uint8(120 + 120*fy)
			pix[i+3] = 0xFF
		}
	}
	img.WritePixels(pix)
	return img
}

func (r *renderer) draw(screen *ebiten.Image, p *Page) {
	screen.Fill(colorBackground)
	vp := p.Viewport()
	offset := p.Offset()

	r.drawVideo(screen, p, vp, offset)
	r.drawParticles(screen, p)
	r.drawHeroContent(screen, p, vp, offset)
	r.drawServices(screen, p, vp, offset)
	r.drawStory(screen, p, vp, offset)
	r.drawSection(screen, p, "features", "Features", vp, offset)
	r.drawSection(screen, p, "contact", "Contact", vp, offset)
	r.drawNav(screen, p, vp)
}

func (r *renderer) drawVideo(screen *ebiten.Image, p *Page, vp Viewport, offset float64) {
	style := p.Style("video")
	y := -offset + p.VideoShift()
	if y+vp.Height < 0 {
		return
	}

	// 模糊：先缩小再线性放大，缩小倍数随模糊半径增大
	src := r.video
	if style.Blur > 0.5 {
		k := 1 + style.Blur/2
		w := int(math.Max(1, videoWidth/k))
		h := int(math.Max(1, videoHeight/k))
		if r.blurBuf == nil || r.blurBuf.Bounds().Dx() != w || r.blurBuf.Bounds().Dy() != h {
			if r.blurBuf != nil {
				r.blurBuf.Deallocate()
			}
			r.blurBuf = ebiten.NewImage(w, h)
		}
		r.blurBuf.Clear()
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(float64(w)/videoWidth, float64(h)/videoHeight)
		r.blurBuf.DrawImage(r.video, op)
		src = r.blurBuf
	}

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	b := src.Bounds()
	op.GeoM.Scale(vp.Width/float64(b.Dx()), vp.Height/float64(b.Dy()))
	op.GeoM.Translate(0, y)
	op.ColorScale.Scale(float32(style.Brightness), float32(style.Brightness), float32(style.Brightness), 1)
	screen.DrawImage(src, op)

	if p.Style("hero").HasClass("scrolled") {
		vector.DrawFilledRect(screen, 0, float32(y), float32(vp.Width), float32(vp.Height), color.RGBA{A: 0x40}, false)
	}
}

func (r *renderer) drawParticles(screen *ebiten.Image, p *Page) {
	if !p.Preferences().ParticlesEnabled {
		return
	}
	alpha := p.Style("particles").Opacity
	if alpha <= 0 {
		return
	}
	field := p.Field()
	ps := field.Particles()
	for _, l := range field.Links() {
		a, b := ps[l.A], ps[l.B]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1,
			fade(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, l.Alpha*alpha), true)
	}
	for _, pt := range ps {
		drawParticle(screen, pt, alpha)
	}
}

func drawParticle(screen *ebiten.Image, pt particles.Particle, alpha float64) {
	vector.DrawFilledCircle(screen, float32(pt.X), float32(pt.Y), float32(pt.Radius), fade(pt.Color, pt.Alpha*alpha), true)
}

func (r *renderer) drawHeroContent(screen *ebiten.Image, p *Page, vp Viewport, offset float64) {
	style := p.Style("hero-content")
	if style.Opacity <= 0 {
		return
	}
	lines := []string{"SCROLLFX", "", "Scroll-driven animation, hysteresis latched.", "", "Wheel / drag / PgDn to explore"}
	r.drawText(screen, lines, vp.Width/2, vp.Height/2-offset+style.TranslateY, 3, style.Opacity)
}

func (r *renderer) drawServices(screen *ebiten.Image, p *Page, vp Viewport, offset float64) {
	index := p.Navigator().IndexOf("services")
	if index < 0 {
		return
	}
	style := p.Style("services")
	top := p.SectionOffset(index) - offset
	if top > vp.Height || top+vp.Height < 0 || style.Opacity <= 0 {
		return
	}

	cards := 3
	gap := 24.0
	cardW := (vp.Width - gap*float64(cards+1)) / float64(cards)
	cardH := vp.Height * 0.5
	scale := style.Scale
	for i := 0; i < cards; i++ {
		cx := gap + float64(i)*(cardW+gap) + cardW/2
		cy := top + vp.Height/2
		w, h := cardW*scale, cardH*scale
		vector.DrawFilledRect(screen, float32(cx-w/2), float32(cy-h/2), float32(w), float32(h), fade(colorCard, style.Opacity), true)
		vector.StrokeRect(screen, float32(cx-w/2), float32(cy-h/2), float32(w), float32(h), 1, fade(colorAccent, style.Opacity), true)
		r.drawText(screen, []string{fmt.Sprintf("Service %d", i+1)}, cx, cy, 2, style.Opacity)
	}
}

func (r *renderer) drawStory(screen *ebiten.Image, p *Page, vp Viewport, offset float64) {
	st := p.Story()
	panels := p.Config().Story.Panels
	if len(panels) == 0 {
		return
	}

	// 固定期间面板贴在视口顶部，之前/之后随页面滚动
	var top float64
	switch {
	case offset < st.Start():
		top = st.Start() - offset
	case offset > st.End():
		top = st.End() - offset
	default:
		top = 0
	}
	if top > vp.Height || top+vp.Height < 0 {
		return
	}

	shift := st.TranslatePercent(offset) / 100 * vp.Width
	for i, panel := range panels {
		x := float64(i)*vp.Width + shift
		if x > vp.Width || x+vp.Width < 0 {
			continue
		}
		c, err := particles.ParseHexColor(panel.Color)
		if err != nil {
			c = colorCard
		}
		vector.DrawFilledRect(screen, float32(x), float32(top), float32(vp.Width), float32(vp.Height), c, false)
		r.drawText(screen, []string{panel.Title}, x+vp.Width/2, top+vp.Height/2, 4, 1)
	}

	for i, elem := range p.Config().Story.Parallax {
		x := float64(elem.Panel)*vp.Width + shift + vp.Width/2 + p.ParallaxShift(i)
		r.drawText(screen, []string{elem.Label}, x, top+vp.Height*0.25, 6, 0.25)
	}

	// 导航圆点
	active := st.ActiveIndex(offset)
	for i := range panels {
		cx, cy := dotPosition(vp, len(panels), i, top)
		clr := colorDotIdle
		if i == active {
			clr = colorAccent
		}
		vector.DrawFilledCircle(screen, cx, cy, 5, clr, true)
	}
}

// dotPosition 横向区导航圆点的位置
func dotPosition(vp Viewport, count, index int, top float64) (float32, float32) {
	spacing := 24.0
	left := vp.Width/2 - spacing*float64(count-1)/2
	return float32(left + spacing*float64(index)), float32(top + vp.Height - 40)
}

// hitDot 点击位置命中的导航圆点，未命中返回 -1
func hitDot(vp Viewport, count int, x, y int) int {
	for i := 0; i < count; i++ {
		cx, cy := dotPosition(vp, count, i, 0)
		dx, dy := float64(x)-float64(cx), float64(y)-float64(cy)
		if dx*dx+dy*dy <= 12*12 {
			return i
		}
	}
	return -1
}

func (r *renderer) drawSection(screen *ebiten.Image, p *Page, id, title string, vp Viewport, offset float64) {
	index := p.Navigator().IndexOf(id)
	if index < 0 {
		return
	}
	r.drawBlock(screen, p.Style(id), title, p.SectionOffset(index)-offset, vp)
}

func (r *renderer) drawBlock(screen *ebiten.Image, style controller.Style, title string, top float64, vp Viewport) {
	if top > vp.Height || top+vp.Height < 0 || style.Opacity <= 0 {
		return
	}
	r.drawText(screen, []string{title}, vp.Width/2, top+vp.Height/2, 3, style.Opacity)
}

func (r *renderer) drawNav(screen *ebiten.Image, p *Page, vp Viewport) {
	if p.Style("nav").HasClass("solid") {
		vector.DrawFilledRect(screen, 0, 0, float32(vp.Width), navHeight, colorNavSolid, false)
	}
	nav := p.Navigator()
	for i, id := range nav.Sections() {
		x0, x1 := navItemBounds(vp, len(nav.Sections()), i)
		label := strings.ToUpper(id)
		alpha := 0.6
		if i == nav.Current() {
			alpha = 1
			vector.DrawFilledRect(screen, float32(x0+8), navHeight-6, float32(x1-x0-16), 2, colorAccent, false)
		}
		r.drawText(screen, []string{label}, (x0+x1)/2, navHeight/2, 1, alpha)
	}

	if p.Preferences().ReducedMotion {
		ebitenutil.DebugPrintAt(screen, "reduced motion", 8, int(vp.Height)-debugCharH-4)
	}
}

// navItemBounds 导航项的水平范围（导航栏右半部分均分）
func navItemBounds(vp Viewport, count, index int) (float64, float64) {
	left := vp.Width / 2
	w := (vp.Width - left) / float64(count)
	return left + w*float64(index), left + w*float64(index+1)
}

// hitNav 点击位置命中的导航项，未命中返回 -1
func hitNav(vp Viewport, count int, x, y int) int {
	if y < 0 || y > navHeight || count == 0 {
		return -1
	}
	for i := 0; i < count; i++ {
		x0, x1 := navItemBounds(vp, count, i)
		if float64(x) >= x0 && float64(x) < x1 {
			return i
		}
	}
	return -1
}

// drawText 以 (cx, cy) 为中心按比例绘制调试字体文字
func (r *renderer) drawText(screen *ebiten.Image, lines []string, cx, cy, scale, alpha float64) {
	if alpha <= 0 {
		return
	}
	key := strings.Join(lines, "\n")
	buf, ok := r.textBufs[key]
	if !ok {
		maxLen := 0
		for _, l := range lines {
			if len(l) > maxLen {
				maxLen = len(l)
			}
		}
		buf = ebiten.NewImage(max(1, maxLen*debugCharW), max(1, len(lines)*debugCharH))
		for i, l := range lines {
			ebitenutil.DebugPrintAt(buf, l, (maxLen-len(l))*debugCharW/2, i*debugCharH)
		}
		r.textBufs[key] = buf
	}

	b := buf.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(buf, op)
}

func fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
