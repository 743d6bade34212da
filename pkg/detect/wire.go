package detect

import (
	"encoding/json"
	"strconv"

	"github.com/user/sceneshot/pkg/pipeline"
)

// eventPayload is the wire format consumers expect: every value a string.
type eventPayload struct {
	Video string `json:"video"`
	Start string `json:"start"`
	End   string `json:"end"`
	Score string `json:"score"`
	Index string `json:"index"`
}

// EncodeEvent serializes a scene event into the wire format shared by all
// transports.
func EncodeEvent(event pipeline.SceneEvent) ([]byte, error) {
	return json.Marshal(eventPayload{
		Video: event.Video,
		Start: strconv.Itoa(event.Start),
		End:   strconv.Itoa(event.End),
		Score: strconv.FormatFloat(float64(event.Score), 'g', -1, 32),
		Index: strconv.Itoa(event.Index),
	})
}
