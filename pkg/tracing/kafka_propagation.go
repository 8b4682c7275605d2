package tracing

import (
	"context"
	"maps"
	"slices"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const TraceparentHeader = "traceparent"

// KafkaHeaders turns string headers into Kafka headers in key order, with
// traceparent appended last when it is set.
func KafkaHeaders(headers map[string]string, traceparent string) []kafka.Header {
	out := make([]kafka.Header, 0, len(headers)+1)
	for _, k := range slices.Sorted(maps.Keys(headers)) {
		out = append(out, kafka.Header{Key: k, Value: []byte(headers[k])})
	}
	if traceparent != "" {
		out = append(out, kafka.Header{Key: TraceparentHeader, Value: []byte(traceparent)})
	}
	return out
}

// ExtractKafkaHeaders returns ctx carrying the remote span found in headers.
func ExtractKafkaHeaders(ctx context.Context, headers []kafka.Header) context.Context {
	carrier := propagation.MapCarrier{}
	for _, h := range headers {
		carrier[h.Key] = string(h.Value)
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

func HeaderValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
