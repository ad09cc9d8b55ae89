package streamid

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// Prefix starts every text id.
	Prefix = "#!R"
	// URISafePrefix is Prefix with '#' percent-escaped, for use inside URLs.
	URISafePrefix = "%23!R"
	// ScratchSize bounds the decoded payload of a text id.
	ScratchSize = 16
)

var bodyEncoding = base64.RawStdEncoding.Strict()

// DecodeString parses a text id of the form Prefix + unpadded base64.
// The URI-safe form is rejected with ErrInvalidPrefix; unescape it first.
func DecodeString(text string) (StreamID, error) {
	body, ok := strings.CutPrefix(text, Prefix)
	if !ok {
		return StreamID{}, ErrInvalidPrefix
	}
	// The decoder skips CR and LF; ids never contain them.
	if strings.ContainsAny(body, "\r\n") {
		return StreamID{}, fmt.Errorf("%w: line break in body", ErrInvalidEncoding)
	}
	if bodyEncoding.DecodedLen(len(body)) > ScratchSize {
		return StreamID{}, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidEncoding, ScratchSize)
	}

	var scratch [ScratchSize]byte
	n, err := bodyEncoding.Decode(scratch[:], []byte(body))
	if err != nil {
		return StreamID{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return Decode(scratch[:n])
}

// EncodeString returns the text form of id, Prefix + unpadded base64.
func EncodeString(id StreamID) string {
	return Prefix + encodeBody(id)
}

// EncodeURISafe returns the text form of id with URISafePrefix.
func EncodeURISafe(id StreamID) string {
	return URISafePrefix + encodeBody(id)
}

// encodeBody panics if id cannot be encoded: the scratch buffer always fits,
// so a failure means id was built with an unknown track.
func encodeBody(id StreamID) string {
	var scratch [ScratchSize]byte
	n, err := id.Encode(scratch[:])
	if err != nil {
		panic(fmt.Sprintf("streamid: encode %v: %v", id, err))
	}
	return bodyEncoding.EncodeToString(scratch[:n])
}

// MarshalText implements encoding.TextMarshaler using the plain form.
func (id StreamID) MarshalText() ([]byte, error) {
	if !id.IsPublisher() && !id.Target.Track.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrack, uint8(id.Target.Track))
	}
	return []byte(EncodeString(id)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *StreamID) UnmarshalText(text []byte) error {
	decoded, err := DecodeString(string(text))
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}
