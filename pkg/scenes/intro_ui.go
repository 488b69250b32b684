package scenes

import (
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/cognicube/intro/pkg/config"
)

// introUI 入口按钮（"CLICK TO ENTER"）
//
// 按钮锚定在屏幕底部居中，距底部为屏幕高度的 10%。
// 提示可见前按钮隐藏，隐藏时不响应点击。
type introUI struct {
	ui      *ebitenui.UI
	root    *widget.Container
	button  *widget.Button
	padding *widget.Insets
	height  int
}

// newIntroUI 创建入口按钮
//
// 参数：
//   - label: 按钮文字
//   - face: 按钮字体（nil 时按钮无文字，仍可点击）
//   - onClick: 点击回调
func newIntroUI(label string, face *text.GoTextFace, onClick func()) *introUI {
	u := &introUI{padding: &widget.Insets{}}

	idle := imageui.NewBorderedNineSliceColor(
		color.NRGBA{R: 0x0a, G: 0x0a, B: 0x14, A: 0xb4},
		color.NRGBA{R: 0xff, G: 0xdd, B: 0x00, A: 0xff}, 2)
	hover := imageui.NewBorderedNineSliceColor(
		color.NRGBA{R: 0x33, G: 0x2d, B: 0x00, A: 0xd2},
		color.NRGBA{R: 0xff, G: 0xdd, B: 0x00, A: 0xff}, 2)
	pressed := imageui.NewBorderedNineSliceColor(
		color.NRGBA{R: 0xff, G: 0xdd, B: 0x00, A: 0xff},
		color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, 2)

	textColor := &widget.ButtonTextColor{
		Idle:    color.NRGBA{R: 0xff, G: 0xdd, B: 0x00, A: 0xff},
		Hover:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Pressed: color.NRGBA{R: 0x0a, G: 0x0a, B: 0x14, A: 0xff},
	}

	opts := []widget.ButtonOpt{
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Hover: hover, Pressed: pressed}),
		widget.ButtonOpts.TextPadding(&widget.Insets{Top: 12, Bottom: 12, Left: 36, Right: 36}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 48),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				Padding:            u.padding,
			}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	}
	if face != nil {
		var f text.Face = face
		opts = append(opts, widget.ButtonOpts.Text(label, &f, textColor))
	}
	u.button = widget.NewButton(opts...)
	u.button.GetWidget().Visibility = widget.Visibility_Hide

	u.root = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	u.root.AddChild(u.button)
	u.ui = &ebitenui.UI{Container: u.root}
	return u
}

// Resize 按屏幕高度更新按钮底部间距
func (u *introUI) Resize(height int) {
	if height == u.height {
		return
	}
	u.height = height
	u.padding.Bottom = int(float64(height) * config.PromptBottomRatio)
	u.root.RequestRelayout()
}

// SetPromptVisible 显示或隐藏按钮
func (u *introUI) SetPromptVisible(visible bool) {
	v := widget.Visibility_Hide
	if visible {
		v = widget.Visibility_Show
	}
	w := u.button.GetWidget()
	if w.Visibility != v {
		w.Visibility = v
		u.root.RequestRelayout()
	}
}

// PromptVisible 按钮是否可见
func (u *introUI) PromptVisible() bool {
	return u.button.GetWidget().Visibility == widget.Visibility_Show
}

// ButtonRect 返回按钮在屏幕上的位置（用于绘制光晕）
func (u *introUI) ButtonRect() image.Rectangle {
	if !u.PromptVisible() {
		return image.Rectangle{}
	}
	return u.button.GetWidget().Rect
}

func (u *introUI) Update() {
	u.ui.Update()
}

func (u *introUI) Draw(screen *ebiten.Image) {
	u.ui.Draw(screen)
}
