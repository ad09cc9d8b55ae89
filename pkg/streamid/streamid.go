// Package streamid implements the StreamId addressing format: a 4 or 7 byte
// big-endian identifier naming either a publisher or a subscription to another
// user's track, and its prefixed base64 text envelope.
package streamid

import "fmt"

const (
	// MaxVersion is the largest version representable in the 15 version bits.
	MaxVersion = 0x7FFF

	publisherFlag = 0x8000
	versionMask   = 0x7FFF
)

// StreamID identifies a publishing user, or a user subscribing to a Target.
// A nil Target means the id denotes a publisher.
type StreamID struct {
	Version uint16
	User    uint16
	Target  *Target
}

// Target is the user and track a subscription points at.
type Target struct {
	User  uint16
	Track Track
}

// NewPublisher returns the id of user publishing under the given scheme version.
func NewPublisher(version, user uint16) StreamID {
	return StreamID{Version: version, User: user}
}

// NewSubscriber returns the id of user subscribing to track of targetUser.
func NewSubscriber(version, user, targetUser uint16, track Track) StreamID {
	return StreamID{
		Version: version,
		User:    user,
		Target:  &Target{User: targetUser, Track: track},
	}
}

// IsPublisher reports whether id denotes a publisher.
func (id StreamID) IsPublisher() bool {
	return id.Target == nil
}

// Equal compares ids field by field, including the target.
func (id StreamID) Equal(other StreamID) bool {
	if id.Version != other.Version || id.User != other.User {
		return false
	}
	if id.Target == nil || other.Target == nil {
		return id.Target == nil && other.Target == nil
	}
	return *id.Target == *other.Target
}

func (id StreamID) String() string {
	if id.IsPublisher() {
		return fmt.Sprintf("publisher(v%d user=%d)", id.Version, id.User)
	}
	return fmt.Sprintf("subscriber(v%d user=%d target=%d track=%s)",
		id.Version, id.User, id.Target.User, id.Target.Track)
}
