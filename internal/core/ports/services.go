package ports

import (
	"context"

	"rillid/internal/core/domain"
	"rillid/pkg/streamid"
)

type StreamIDService interface {
	Decode(ctx context.Context, text string) (*domain.StreamDescriptor, error)
	Encode(ctx context.Context, req domain.EncodeRequest) (*domain.EncodedStreamID, error)
}

// TrackMapper maps stream id tracks onto the media pipeline's track model.
type TrackMapper interface {
	Kind(track streamid.Track) string
	MimeType(track streamid.Track) string
	TrackID(target streamid.Target) string
}

type CodecMetrics interface {
	RecordDecode(role string)
	RecordDecodeError(reason string)
	RecordEncode(role string)
}
