package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CodecCollector counts stream id codec outcomes.
type CodecCollector struct {
	decodedTotal      *prometheus.CounterVec
	decodeErrorsTotal *prometheus.CounterVec
	encodedTotal      *prometheus.CounterVec
}

// NewCodecCollector registers the codec metrics with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewCodecCollector(reg prometheus.Registerer) *CodecCollector {
	factory := promauto.With(reg)

	return &CodecCollector{
		decodedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rillid_streamid_decoded_total",
			Help: "Total number of stream ids decoded, by role",
		}, []string{"role"}),

		decodeErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rillid_streamid_decode_errors_total",
			Help: "Total number of rejected stream ids, by error code",
		}, []string{"reason"}),

		encodedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rillid_streamid_encoded_total",
			Help: "Total number of stream ids encoded, by role",
		}, []string{"role"}),
	}
}

func (c *CodecCollector) RecordDecode(role string) {
	c.decodedTotal.WithLabelValues(role).Inc()
}

func (c *CodecCollector) RecordDecodeError(reason string) {
	c.decodeErrorsTotal.WithLabelValues(reason).Inc()
}

func (c *CodecCollector) RecordEncode(role string) {
	c.encodedTotal.WithLabelValues(role).Inc()
}
