package streamid

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// PublisherLen is the wire size of a publisher id.
	PublisherLen = 4
	// SubscriberLen is the wire size of a subscriber id.
	SubscriberLen = 7
	// MaxEncodedLen is the largest wire size of any id.
	MaxEncodedLen = SubscriberLen
)

// Decode parses the binary form of an id. It reads exactly 4 bytes for a
// publisher and 7 for a subscriber; anything after that is ignored.
func Decode(buf []byte) (StreamID, error) {
	if len(buf) < 2 {
		return StreamID{}, shortRead("flags")
	}
	flags := binary.BigEndian.Uint16(buf[0:2])
	if len(buf) < 4 {
		return StreamID{}, shortRead("user")
	}
	id := StreamID{
		Version: flags & versionMask,
		User:    binary.BigEndian.Uint16(buf[2:4]),
	}
	if flags&publisherFlag != 0 {
		return id, nil
	}

	if len(buf) < 6 {
		return StreamID{}, shortRead("target user")
	}
	targetUser := binary.BigEndian.Uint16(buf[4:6])
	if len(buf) < 7 {
		return StreamID{}, shortRead("track")
	}
	track, err := TrackFromByte(buf[6])
	if err != nil {
		return StreamID{}, err
	}
	id.Target = &Target{User: targetUser, Track: track}
	return id, nil
}

// EncodedLen returns the number of bytes Encode writes for id.
func (id StreamID) EncodedLen() int {
	if id.IsPublisher() {
		return PublisherLen
	}
	return SubscriberLen
}

// Encode writes the binary form of id to the start of buf and returns the
// number of bytes written. Callers must truncate buf to that length before
// using it. Version bits above the 15th are dropped so they never reach the
// publisher flag.
func (id StreamID) Encode(buf []byte) (int, error) {
	flags := id.Version & versionMask
	if id.IsPublisher() {
		flags |= publisherFlag
	} else if !id.Target.Track.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTrack, uint8(id.Target.Track))
	}

	if len(buf) < 2 {
		return 0, shortWrite("flags")
	}
	binary.BigEndian.PutUint16(buf[0:2], flags)
	if len(buf) < 4 {
		return 2, shortWrite("user")
	}
	binary.BigEndian.PutUint16(buf[2:4], id.User)
	if id.IsPublisher() {
		return PublisherLen, nil
	}

	if len(buf) < 6 {
		return 4, shortWrite("target user")
	}
	binary.BigEndian.PutUint16(buf[4:6], id.Target.User)
	if len(buf) < 7 {
		return 6, shortWrite("track")
	}
	buf[6] = id.Target.Track.Byte()
	return SubscriberLen, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id StreamID) MarshalBinary() ([]byte, error) {
	buf := make([]byte, MaxEncodedLen)
	n, err := id.Encode(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (id *StreamID) UnmarshalBinary(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*id = decoded
	return nil
}

func shortRead(field string) error {
	return &IOError{Op: "read", Field: field, Err: io.ErrUnexpectedEOF}
}

func shortWrite(field string) error {
	return &IOError{Op: "write", Field: field, Err: io.ErrShortBuffer}
}
