package webrtc

import (
	"testing"

	"rillid/pkg/streamid"

	"github.com/pion/webrtc/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackMapper_Kinds(t *testing.T) {
	m := NewTrackMapper()

	assert.Equal(t, webrtc.RTPCodecTypeVideo, m.CodecType(streamid.TrackVideo))
	assert.Equal(t, webrtc.RTPCodecTypeAudio, m.CodecType(streamid.TrackContentAudio))
	assert.Equal(t, webrtc.RTPCodecTypeAudio, m.CodecType(streamid.TrackCommentaryAudio))

	assert.Equal(t, "video", m.Kind(streamid.TrackVideo))
	assert.Equal(t, "audio", m.Kind(streamid.TrackCommentaryAudio))
	assert.Equal(t, webrtc.MimeTypeVP8, m.MimeType(streamid.TrackVideo))
	assert.Equal(t, webrtc.MimeTypeOpus, m.MimeType(streamid.TrackContentAudio))
}

func TestTrackMapper_TrackID(t *testing.T) {
	m := NewTrackMapper()
	target := streamid.Target{User: 7, Track: streamid.TrackCommentaryAudio}

	assert.Equal(t, "7-commentary_audio", m.TrackID(target))
	assert.Equal(t, "user-7", m.StreamLabel(7))
}

func TestTrackMapper_NewLocalTrack(t *testing.T) {
	m := NewTrackMapper()

	track, err := m.NewLocalTrack(streamid.NewSubscriber(1, 42, 7, streamid.TrackVideo))
	require.NoError(t, err)
	assert.Equal(t, "7-video", track.ID())
	assert.Equal(t, "user-7", track.StreamID())
	assert.Equal(t, webrtc.RTPCodecTypeVideo, track.Kind())

	_, err = m.NewLocalTrack(streamid.NewPublisher(1, 42))
	assert.Error(t, err)

	_, err = m.NewLocalTrack(streamid.StreamID{Target: &streamid.Target{Track: streamid.Track(9)}})
	assert.ErrorIs(t, err, streamid.ErrInvalidTrack)
}
