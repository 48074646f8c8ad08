package glyphbrush

// Transform4x4 is a column-major 4x4 transform matrix. ProcessQueued
// hands it back in ProcessResult for the caller to bind as the frame's
// projection; emitted vertices stay in screen pixels. It generalizes the teacher's 2D affine Matrix (see _examples/gogpu-gg
// matrix.go) to the homogeneous 4x4 form GPU pipelines expect for an
// orthographic screen-to-clip-space projection.
type Transform4x4 [16]float32

// Identity4 returns the identity transform.
func Identity4() Transform4x4 {
	return Transform4x4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Orthographic4 builds a standard top-left-origin orthographic projection
// mapping [0, width] x [0, height] pixel coordinates to clip space
// [-1, 1] x [-1, 1], the common transform a caller passes to ProcessQueued.
func Orthographic4(width, height float32) Transform4x4 {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return Transform4x4{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

// TransformPoint applies the transform to a screen-space point, returning
// clip-space x/y. Z and W are treated as 0 and 1 respectively, matching
// the 2D nature of the glyph quads this engine emits.
func (m Transform4x4) TransformPoint(x, y float32) (cx, cy float32) {
	cx = m[0]*x + m[4]*y + m[12]
	cy = m[1]*x + m[5]*y + m[13]
	return cx, cy
}
