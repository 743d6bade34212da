package ffmpegdecoder

import (
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/sceneshot/pkg/ports"
)

// Probe reads MP4 container metadata for the video track without decoding
// any frames. Non-MP4 containers and parse failures yield a zero VideoInfo;
// probing is advisory only.
func (d *Decoder) Probe(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return ports.VideoInfo{}, nil
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.VideoInfo{}, nil
	}

	var info ports.VideoInfo
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}

		if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsz != nil {
			info.FrameCount = int(trak.Mdia.Minf.Stbl.Stsz.SampleNumber)
		}
		if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
			info.DurationMs = int(trak.Mdia.Mdhd.Duration * 1000 / uint64(trak.Mdia.Mdhd.Timescale))
		}
		break
	}

	return info, nil
}
