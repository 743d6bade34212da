// Package extract converts a finished prediction sequence into scene
// intervals.
package extract

import (
	"github.com/user/sceneshot/pkg/pipeline"
)

// Scenes converts the full single-frame prediction sequence of one video
// into ordered, closed scene intervals. A frame whose score exceeds
// threshold is a boundary marker; a scene opens at the frame after a
// boundary run ends and closes where the next boundary run begins.
//
// This is the offline counterpart of the streaming emitter: it sees the
// complete sequence at once and is a pure function of its input. The two
// deliberately stay separate algorithms.
//
// When every frame is a boundary the whole sequence is returned as a single
// interval rather than an empty list.
func Scenes(predictions []float32, threshold float32) []pipeline.SceneInterval {
	if len(predictions) == 0 {
		return nil
	}

	var scenes []pipeline.SceneInterval
	cur, prev, start, last := 0, 0, 0, 0

	for i, p := range predictions {
		cur = 0
		if p > threshold {
			cur = 1
		}
		if prev == 1 && cur == 0 {
			start = i
		}
		if prev == 0 && cur == 1 && i != 0 {
			scenes = append(scenes, pipeline.SceneInterval{Start: start, End: i})
		}
		prev = cur
		last = i
	}
	if cur == 0 {
		scenes = append(scenes, pipeline.SceneInterval{Start: start, End: last})
	}

	if len(scenes) == 0 {
		return []pipeline.SceneInterval{{Start: 0, End: len(predictions) - 1}}
	}
	return scenes
}
