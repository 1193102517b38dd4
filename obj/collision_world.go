package obj

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// CollisionWorld indexes a Level's solids in a chipmunk space so the player
// only tests tiles near its swept box. The space is used purely as a static
// bounding-box index; nothing is ever stepped.
type CollisionWorld struct {
	level *Level
	space *cp.Space

	// scratch buffers reused between queries
	hits []int
	out  []common.Rect
}

func NewCollisionWorld(level *Level) *CollisionWorld {
	cw := &CollisionWorld{level: level, space: cp.NewSpace()}
	cw.buildStaticShapes()
	return cw
}

func (cw *CollisionWorld) buildStaticShapes() {
	if cw.level == nil {
		return
	}
	for i, r := range cw.level.SolidRects() {
		bb := cp.BB{L: r.X, B: r.Y, R: r.Right(), T: r.Bottom()}
		shape := cp.NewBox2(cw.space.StaticBody, bb, 0)
		// index into the level's row-major solids, used to restore scan order
		shape.UserData = i
		cw.space.AddShape(shape)
	}
}

// Candidates returns the solids whose bounds touch area, in the same
// row-major order the level stores them. The result is only valid until the
// next call.
func (cw *CollisionWorld) Candidates(area common.Rect) []common.Rect {
	if cw.level == nil {
		return nil
	}
	cw.hits = cw.hits[:0]
	bb := cp.BB{L: area.X, B: area.Y, R: area.Right(), T: area.Bottom()}
	cw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if idx, ok := shape.UserData.(int); ok {
			cw.hits = append(cw.hits, idx)
		}
	}, nil)
	slices.Sort(cw.hits)

	solids := cw.level.SolidRects()
	cw.out = cw.out[:0]
	for _, idx := range cw.hits {
		cw.out = append(cw.out, solids[idx])
	}
	return cw.out
}

func (cw *CollisionWorld) PixelWidth() int  { return cw.level.PixelWidth() }
func (cw *CollisionWorld) PixelHeight() int { return cw.level.PixelHeight() }

// Level returns the indexed level.
func (cw *CollisionWorld) Level() *Level {
	return cw.level
}

// Space exposes the broadphase for debug drawing.
func (cw *CollisionWorld) Space() *cp.Space {
	return cw.space
}
