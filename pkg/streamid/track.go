package streamid

import "fmt"

// Track selects the media channel a subscription points at.
type Track uint8

const (
	TrackVideo Track = iota
	TrackContentAudio
	TrackCommentaryAudio
)

// Tracks lists every track in wire order.
var Tracks = []Track{TrackVideo, TrackContentAudio, TrackCommentaryAudio}

// TrackFromByte maps a wire byte to its track.
func TrackFromByte(b byte) (Track, error) {
	switch b {
	case 0:
		return TrackVideo, nil
	case 1:
		return TrackContentAudio, nil
	case 2:
		return TrackCommentaryAudio, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidTrack, b)
}

// Byte returns the wire byte of t.
func (t Track) Byte() byte {
	switch t {
	case TrackVideo:
		return 0
	case TrackContentAudio:
		return 1
	case TrackCommentaryAudio:
		return 2
	}
	panic(fmt.Sprintf("streamid: unknown track %d", uint8(t)))
}

// Valid reports whether t is one of the known tracks.
func (t Track) Valid() bool {
	return t <= TrackCommentaryAudio
}

func (t Track) String() string {
	switch t {
	case TrackVideo:
		return "video"
	case TrackContentAudio:
		return "content_audio"
	case TrackCommentaryAudio:
		return "commentary_audio"
	}
	return fmt.Sprintf("track(%d)", uint8(t))
}

// ParseTrack parses the names produced by Track.String.
func ParseTrack(name string) (Track, error) {
	switch name {
	case "video":
		return TrackVideo, nil
	case "content_audio":
		return TrackContentAudio, nil
	case "commentary_audio":
		return TrackCommentaryAudio, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTrack, name)
}
