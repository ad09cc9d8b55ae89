package validation

import (
	"fmt"
	"strings"

	"rillid/pkg/streamid"
)

// MaxStreamIDTextLen caps text ids accepted from clients. It is far above any
// valid id so oversized payloads still reach the decoder and fail there.
const MaxStreamIDTextLen = 256

// ValidateVersion validates a scheme version; it must fit in 15 bits
func ValidateVersion(version int) error {
	if version < 0 {
		return fmt.Errorf("version must not be negative")
	}
	if version > streamid.MaxVersion {
		return fmt.Errorf("version is too large (max %d)", streamid.MaxVersion)
	}
	return nil
}

// ValidateUserID validates a 16-bit user id
func ValidateUserID(user int, fieldName string) error {
	if user < 0 {
		return fmt.Errorf("%s must not be negative", fieldName)
	}
	if user > 0xFFFF {
		return fmt.Errorf("%s is too large (max %d)", fieldName, 0xFFFF)
	}
	return nil
}

// ValidateTrackName validates a track name and returns the track
func ValidateTrackName(name string) (streamid.Track, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("track is required")
	}
	track, err := streamid.ParseTrack(name)
	if err != nil {
		return 0, fmt.Errorf("invalid track (must be video, content_audio, or commentary_audio)")
	}
	return track, nil
}

// ValidateStreamIDText performs cheap checks on a text id before decoding
func ValidateStreamIDText(text string) error {
	if text == "" {
		return fmt.Errorf("stream id is required")
	}
	if len(text) > MaxStreamIDTextLen {
		return fmt.Errorf("stream id is too long (max %d characters)", MaxStreamIDTextLen)
	}
	return nil
}
