package webrtc

import (
	"fmt"

	"rillid/pkg/streamid"

	"github.com/pion/webrtc/v3"
)

// TrackMapper maps stream id tracks onto pion track kinds and codecs. Both audio
// tracks are carried as Opus; video is VP8.
type TrackMapper struct{}

func NewTrackMapper() *TrackMapper {
	return &TrackMapper{}
}

// CodecType returns the RTP codec type a track is carried as.
func (m *TrackMapper) CodecType(track streamid.Track) webrtc.RTPCodecType {
	switch track {
	case streamid.TrackVideo:
		return webrtc.RTPCodecTypeVideo
	case streamid.TrackContentAudio, streamid.TrackCommentaryAudio:
		return webrtc.RTPCodecTypeAudio
	}
	return webrtc.RTPCodecType(0)
}

func (m *TrackMapper) Kind(track streamid.Track) string {
	return m.CodecType(track).String()
}

// Capability returns the codec capability used for a track.
func (m *TrackMapper) Capability(track streamid.Track) webrtc.RTPCodecCapability {
	switch m.CodecType(track) {
	case webrtc.RTPCodecTypeVideo:
		return webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8, ClockRate: 90000}
	case webrtc.RTPCodecTypeAudio:
		return webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 2}
	}
	return webrtc.RTPCodecCapability{}
}

func (m *TrackMapper) MimeType(track streamid.Track) string {
	return m.Capability(track).MimeType
}

// TrackID names the forwarded track of a target, e.g. "7-commentary_audio".
func (m *TrackMapper) TrackID(target streamid.Target) string {
	return fmt.Sprintf("%d-%s", target.User, target.Track)
}

// StreamLabel is the media stream id grouping all tracks of one publisher.
func (m *TrackMapper) StreamLabel(user uint16) string {
	return fmt.Sprintf("user-%d", user)
}

// NewLocalTrack creates the SFU-side track a subscriber id is served from.
// Publisher ids have no target and are rejected.
func (m *TrackMapper) NewLocalTrack(id streamid.StreamID) (*webrtc.TrackLocalStaticRTP, error) {
	if id.IsPublisher() {
		return nil, fmt.Errorf("stream id %v has no target track", id)
	}
	if !id.Target.Track.Valid() {
		return nil, fmt.Errorf("%w: %d", streamid.ErrInvalidTrack, uint8(id.Target.Track))
	}
	return webrtc.NewTrackLocalStaticRTP(
		m.Capability(id.Target.Track),
		m.TrackID(*id.Target),
		m.StreamLabel(id.Target.User),
	)
}
