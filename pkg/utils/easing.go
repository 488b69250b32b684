package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 超出范围的输入先被钳制到 [0, 1]，保证结果单调且有界。
//
// 参考：https://easings.net/

// Clamp01 将 t 限制在 [0, 1]，NaN 视为 0
func Clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseInOutQuart 四次方缓入缓出（开场过渡的缩放曲线）
// 特点：起步非常慢，中段快速推进，收尾再次放缓
// 公式：
//
//	t < 0.5: f(t) = 8t⁴
//	t >= 0.5: f(t) = 1 - (-2t + 2)⁴ / 2
func EaseInOutQuart(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1 - t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
