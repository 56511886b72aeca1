package crash

import "github.com/helmcode/scriptmonkey/pkg/model"

// FrameSelector picks the frame whose file is sent for repair.
type FrameSelector func(tb *model.Traceback) (model.Frame, error)

// LastFrame selects the deepest call site. This is a heuristic: the real
// fault may sit in a caller, and the deepest frame may belong to a library
// or the standard library.
func LastFrame(tb *model.Traceback) (model.Frame, error) {
	if tb == nil || len(tb.Frames) == 0 {
		return model.Frame{}, ErrNoFrames
	}
	return tb.Frames[len(tb.Frames)-1], nil
}
