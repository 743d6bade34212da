package detect

import (
	"encoding/json"
	"testing"

	"github.com/user/sceneshot/pkg/pipeline"
)

func TestEncodeEvent_AllValuesAreStrings(t *testing.T) {
	data, err := EncodeEvent(pipeline.SceneEvent{
		Video: "/videos/clip.mp4",
		Start: 0,
		End:   60,
		Score: 0.9,
		Index: 1,
	})
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("payload values are not all strings: %v", err)
	}

	want := map[string]string{
		"video": "/videos/clip.mp4",
		"start": "0",
		"end":   "60",
		"score": "0.9",
		"index": "1",
	}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("key %s: expected %q, got %q", k, v, decoded[k])
		}
	}
	if len(decoded) != len(want) {
		t.Errorf("unexpected keys in payload: %v", decoded)
	}
}

func TestEncodeEvent_FinalEventScore(t *testing.T) {
	data, err := EncodeEvent(pipeline.SceneEvent{Video: "v", End: 121, Score: 1.0, Index: 2})
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["score"] != "1" {
		t.Errorf("final score: expected \"1\", got %q", decoded["score"])
	}
}
