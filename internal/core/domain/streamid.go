package domain

import "rillid/pkg/streamid"

// Role names used in responses, logs and metric labels.
const (
	RolePublisher  = "publisher"
	RoleSubscriber = "subscriber"
)

// RoleOf returns the role label of id.
func RoleOf(id streamid.StreamID) string {
	if id.IsPublisher() {
		return RolePublisher
	}
	return RoleSubscriber
}

// TargetView describes the track a subscriber id points at.
type TargetView struct {
	User       uint16 `json:"user"`
	Track      string `json:"track"`
	Kind       string `json:"kind"`
	MimeType   string `json:"mime_type"`
	SFUTrackID string `json:"sfu_track_id"`
}

// StreamDescriptor is the decoded view of a text stream id.
type StreamDescriptor struct {
	StreamID   string      `json:"streamid"`
	URISafe    string      `json:"uri_safe"`
	Role       string      `json:"role"`
	Publisher  bool        `json:"publisher"`
	Version    uint16      `json:"version"`
	User       uint16      `json:"user"`
	Target     *TargetView `json:"target,omitempty"`
	EncodedLen int         `json:"encoded_len"`
}

// TargetRequest names the user and track to subscribe to.
type TargetRequest struct {
	User  int    `json:"user"`
	Track string `json:"track"`
}

// EncodeRequest asks for the text form of a stream id. A nil Target encodes a publisher.
type EncodeRequest struct {
	Version int            `json:"version"`
	User    int            `json:"user"`
	Target  *TargetRequest `json:"target,omitempty"`
	// Form selects the preferred envelope; empty means the configured default.
	Form string `json:"form,omitempty"`
}

// EncodedStreamID carries both envelope forms of an encoded id.
type EncodedStreamID struct {
	StreamID   string `json:"streamid"`
	Form       string `json:"form"`
	Plain      string `json:"plain"`
	URISafe    string `json:"uri_safe"`
	Role       string `json:"role"`
	EncodedLen int    `json:"encoded_len"`
}
