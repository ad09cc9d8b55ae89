package streamid

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeString_KnownValues(t *testing.T) {
	assert.Equal(t, "#!RgAEAKg", EncodeString(NewPublisher(1, 42)))
	assert.Equal(t, "#!RAAEAKgAHAg", EncodeString(NewSubscriber(1, 42, 7, TrackCommentaryAudio)))
	assert.Equal(t, "%23!RgAEAKg", EncodeURISafe(NewPublisher(1, 42)))
}

func TestEncodeString_NeverPads(t *testing.T) {
	for _, id := range sampleIDs() {
		assert.NotContains(t, EncodeString(id), "=")
		assert.NotContains(t, EncodeURISafe(id), "=")
	}
}

func TestEncodeString_PanicsOnUnknownTrack(t *testing.T) {
	id := StreamID{Target: &Target{Track: Track(5)}}
	assert.Panics(t, func() { EncodeString(id) })
}

func TestTextRoundTrip(t *testing.T) {
	for _, id := range sampleIDs() {
		t.Run(id.String(), func(t *testing.T) {
			decoded, err := DecodeString(EncodeString(id))
			require.NoError(t, err)
			assert.True(t, id.Equal(decoded))

			_, err = DecodeString(EncodeURISafe(id))
			assert.ErrorIs(t, err, ErrInvalidPrefix)

			unescaped := strings.Replace(EncodeURISafe(id), "%23", "#", 1)
			decoded, err = DecodeString(unescaped)
			require.NoError(t, err)
			assert.True(t, id.Equal(decoded))
		})
	}
}

func TestDecodeString_Prefix(t *testing.T) {
	tests := []string{
		"",
		"XYZgAEAKg",
		"gAEAKg",
		"#!rgAEAKg",
		" #!RgAEAKg",
		"#R!gAEAKg",
		"%23!RgAEAKg",
	}

	for _, input := range tests {
		_, err := DecodeString(input)
		assert.ErrorIs(t, err, ErrInvalidPrefix, "input %q", input)
	}
}

func TestDecodeString_Encoding(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"padding", "gAEAKg=="},
		{"invalid character", "gAE*Kg"},
		{"url alphabet", "____"},
		{"dangling character", "gAEAK"},
		{"trailing bits", "gAEAKh"},
		{"line break", "gAEA\nKg"},
		{"carriage return", "gAEAKg\r"},
		{"seventeen bytes", "AAAAAAAAAAAAAAAAAAAAAAA"},
		{"far too long", strings.Repeat("A", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeString(Prefix + tt.body)
			assert.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}

func TestDecodeString_SixteenBytesAccepted(t *testing.T) {
	id, err := DecodeString(Prefix + "AAAAAAAAAAAAAAAAAAAAAA")
	require.NoError(t, err)
	assert.True(t, id.Equal(NewSubscriber(0, 0, 0, TrackVideo)))
}

func TestDecodeString_ShortPayload(t *testing.T) {
	tests := []string{
		Prefix,
		Prefix + "AAEAKg", // subscriber flag with only four bytes
		Prefix + "gAE",
	}

	for _, input := range tests {
		_, err := DecodeString(input)
		var ioErr *IOError
		require.True(t, errors.As(err, &ioErr), "input %q: %v", input, err)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	}
}

func TestDecodeString_InvalidTrack(t *testing.T) {
	_, err := DecodeString(Prefix + "AAEAKgAHAw")
	assert.ErrorIs(t, err, ErrInvalidTrack)
}

func TestTextMarshaling(t *testing.T) {
	id := NewSubscriber(2, 10, 11, TrackContentAudio)
	text, err := id.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, EncodeString(id), string(text))

	var decoded StreamID
	require.NoError(t, decoded.UnmarshalText(text))
	assert.True(t, id.Equal(decoded))

	assert.ErrorIs(t, decoded.UnmarshalText([]byte("nope")), ErrInvalidPrefix)

	_, err = StreamID{Target: &Target{Track: Track(8)}}.MarshalText()
	assert.ErrorIs(t, err, ErrInvalidTrack)
}
