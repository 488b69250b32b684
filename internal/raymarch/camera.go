package raymarch

import "math"

// Camera is the per-frame view: eye position, marker position and the
// look-at basis aimed at the marker.
type Camera struct {
	// Clock is the path-scaled time (Time * PathSpeed).
	Clock  float64
	From   Vec3
	Marker Vec3

	right, up, forward Vec3
}

// NewCamera builds the camera for u. As zoom rises the marker is pulled from
// CameraOffset toward zoomMinOffset and the eye travels slightly faster.
func NewCamera(u Uniforms) Camera {
	t := u.Time * u.Scene.PathSpeed
	zoom := u.zoom()

	from := Path(t)
	offset := u.Scene.CameraOffset
	if zoom > 0 {
		offset = mix(u.Scene.CameraOffset, zoomMinOffset, zoom)
		from = Path(t * (0.9 + zoom*0.3))
	}
	marker := Path(t + offset + math.Sin(t*0.3)*4)

	cam := Camera{Clock: t, From: from, Marker: marker}
	cam.forward = marker.Sub(from).Normalize()
	cam.right = cam.forward.Cross(Vec3{0, 1, 0}).Normalize()
	cam.up = cam.right.Cross(cam.forward)
	return cam
}

// Forward is the unit direction from the eye to the marker.
func (c Camera) Forward() Vec3 { return c.forward }

// RayDir returns the world-space ray through the given fragment.
func (c Camera) RayDir(u Uniforms, fragX, fragY float64) Vec3 {
	w, h := u.resolution()
	uv := Vec2{fragX/w*2 - 1, fragY/h*2 - 1}
	uv.X *= w / h

	local := Vec3{uv.X, uv.Y, focalLength}.Normalize()
	dir := c.right.Scale(local.X).Add(c.up.Scale(local.Y)).Add(c.forward.Scale(local.Z))

	if zoom := u.zoom(); zoom > 0 {
		lock := smoothstep(0, 1, zoom) * zoomLockBlend
		dir = Lerp3(dir, c.forward, lock).Normalize()
	}
	return dir
}
