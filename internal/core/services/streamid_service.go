package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"rillid/internal/core/domain"
	"rillid/internal/core/ports"
	"rillid/pkg/config"
	apperrors "rillid/pkg/errors"
	"rillid/pkg/logger"
	"rillid/pkg/streamid"
	"rillid/pkg/tracing"
	"rillid/pkg/validation"

	"go.uber.org/zap"
)

const escapedHash = "%23"

// StreamIDServiceConfig holds envelope settings for StreamIDService.
type StreamIDServiceConfig struct {
	// DefaultForm is config.FormPlain or config.FormURISafe.
	DefaultForm string
	// AcceptEscaped lets Decode take the URI-safe form directly.
	AcceptEscaped bool
}

type StreamIDService struct {
	cfg     StreamIDServiceConfig
	mapper  ports.TrackMapper
	metrics ports.CodecMetrics
	log     *logger.ContextLogger
}

func NewStreamIDService(
	cfg StreamIDServiceConfig,
	mapper ports.TrackMapper,
	metrics ports.CodecMetrics,
	log *zap.Logger,
) *StreamIDService {
	return &StreamIDService{
		cfg:     cfg,
		mapper:  mapper,
		metrics: metrics,
		log:     logger.NewContextLogger(log),
	}
}

func (s *StreamIDService) Decode(ctx context.Context, text string) (*domain.StreamDescriptor, error) {
	ctx, span := tracing.TraceCodec(ctx, "decode")
	defer span.End()

	if err := validation.ValidateStreamIDText(text); err != nil {
		s.metrics.RecordDecodeError(string(apperrors.ErrCodeInvalidInput))
		return nil, apperrors.NewInvalidInputError(err.Error())
	}

	if s.cfg.AcceptEscaped && strings.HasPrefix(text, escapedHash) {
		text = "#" + text[len(escapedHash):]
	}

	id, err := streamid.DecodeString(text)
	if err != nil {
		appErr := apperrors.FromStreamIDError(err)
		s.metrics.RecordDecodeError(string(appErr.Code))
		tracing.RecordError(ctx, err)
		tracing.AddSpanAttributes(ctx, tracing.ErrorCodeKey.String(string(appErr.Code)))
		s.log.LogDebug(ctx, "stream id decode failed",
			zap.String("code", string(appErr.Code)),
			zap.Error(err),
		)
		return nil, appErr
	}

	role := domain.RoleOf(id)
	s.metrics.RecordDecode(role)
	s.annotate(ctx, id)
	s.log.LogDebug(ctx, "stream id decoded", zap.Stringer("streamid", id))

	return s.describe(id), nil
}

func (s *StreamIDService) Encode(ctx context.Context, req domain.EncodeRequest) (*domain.EncodedStreamID, error) {
	ctx, span := tracing.TraceCodec(ctx, "encode")
	defer span.End()

	id, err := s.buildStreamID(req)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}

	form := req.Form
	if form == "" {
		form = s.cfg.DefaultForm
	}

	plain := streamid.EncodeString(id)
	uriSafe := streamid.EncodeURISafe(id)
	preferred := plain
	switch form {
	case config.FormPlain:
	case config.FormURISafe:
		preferred = uriSafe
	default:
		err := apperrors.WrapError(fmt.Errorf("%w: %q", domain.ErrUnknownForm, form),
			apperrors.ErrCodeInvalidInput, "form must be plain or urisafe", http.StatusBadRequest)
		tracing.RecordError(ctx, err)
		return nil, err
	}

	role := domain.RoleOf(id)
	s.metrics.RecordEncode(role)
	s.annotate(ctx, id)
	s.log.LogDebug(ctx, "stream id encoded",
		zap.Stringer("streamid", id),
		zap.String("form", form),
	)

	return &domain.EncodedStreamID{
		StreamID:   preferred,
		Form:       form,
		Plain:      plain,
		URISafe:    uriSafe,
		Role:       role,
		EncodedLen: id.EncodedLen(),
	}, nil
}

func (s *StreamIDService) buildStreamID(req domain.EncodeRequest) (streamid.StreamID, error) {
	if err := validation.ValidateVersion(req.Version); err != nil {
		return streamid.StreamID{}, apperrors.NewInvalidInputError(err.Error()).WithContext("field", "version")
	}
	if err := validation.ValidateUserID(req.User, "user"); err != nil {
		return streamid.StreamID{}, apperrors.NewInvalidInputError(err.Error()).WithContext("field", "user")
	}
	if req.Target == nil {
		return streamid.NewPublisher(uint16(req.Version), uint16(req.User)), nil
	}

	if err := validation.ValidateUserID(req.Target.User, "target.user"); err != nil {
		return streamid.StreamID{}, apperrors.NewInvalidInputError(err.Error()).WithContext("field", "target.user")
	}
	track, err := validation.ValidateTrackName(req.Target.Track)
	if err != nil {
		return streamid.StreamID{}, apperrors.NewAppError(apperrors.ErrCodeInvalidTrack, err.Error(), http.StatusBadRequest).
			WithContext("field", "target.track")
	}
	return streamid.NewSubscriber(uint16(req.Version), uint16(req.User), uint16(req.Target.User), track), nil
}

func (s *StreamIDService) describe(id streamid.StreamID) *domain.StreamDescriptor {
	desc := &domain.StreamDescriptor{
		StreamID:   streamid.EncodeString(id),
		URISafe:    streamid.EncodeURISafe(id),
		Role:       domain.RoleOf(id),
		Publisher:  id.IsPublisher(),
		Version:    id.Version,
		User:       id.User,
		EncodedLen: id.EncodedLen(),
	}
	if id.Target != nil {
		desc.Target = &domain.TargetView{
			User:       id.Target.User,
			Track:      id.Target.Track.String(),
			Kind:       s.mapper.Kind(id.Target.Track),
			MimeType:   s.mapper.MimeType(id.Target.Track),
			SFUTrackID: s.mapper.TrackID(*id.Target),
		}
	}
	return desc
}

func (s *StreamIDService) annotate(ctx context.Context, id streamid.StreamID) {
	tracing.AddSpanAttributes(ctx,
		tracing.StreamRoleKey.String(domain.RoleOf(id)),
		tracing.StreamVersionKey.Int(int(id.Version)),
		tracing.StreamUserKey.Int(int(id.User)),
	)
	if id.Target != nil {
		tracing.AddSpanAttributes(ctx,
			tracing.StreamTargetUserKey.Int(int(id.Target.User)),
			tracing.StreamTrackKey.String(id.Target.Track.String()),
		)
	}
}
