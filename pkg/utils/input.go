// Package utils 提供通用工具函数
package utils

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ActivationKeys 激活开场入口的按键
var ActivationKeys = []ebiten.Key{
	ebiten.KeyEnter,
	ebiten.KeyNumpadEnter,
	ebiten.KeySpace,
}

// IsActivationKey 返回按键是否可以激活入口
func IsActivationKey(k ebiten.Key) bool {
	return slices.Contains(ActivationKeys, k)
}

// IsActivationKeyJustPressed 检查本帧是否刚按下任一激活键
func IsActivationKeyJustPressed() bool {
	for _, k := range ActivationKeys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// IsJustTouched 检查是否刚刚发生触摸（移动端没有鼠标点击事件）
// 返回是否触摸以及触摸位置
func IsJustTouched() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	return false, 0, 0
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	if ok, x, y := IsJustTouched(); ok {
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}
