package tracking

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Sink receives personalization events from the cart and checkout flows.
// Delivery is fire-and-forget: the flows notify the sink at their transition
// points and never wait on or fail because of it.
type Sink interface {
	Track(ctx context.Context, event string, payload any)
	Identify(ctx context.Context, userID string)
	Anonymize(ctx context.Context)
}

// LogSink records events through the application logger. It stands in for the
// external personalization SDK, which consumes the same payloads.
type LogSink struct{}

// NewLogSink creates a LogSink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Track logs the event with its normalized payload.
func (s *LogSink) Track(_ context.Context, event string, payload any) {
	log.Info().Str("event", event).Interface("payload", payload).Msg("tracking event")
}

// Identify logs the session's resolved user identifier.
func (s *LogSink) Identify(_ context.Context, userID string) {
	log.Info().Str("user_id", userID).Msg("tracking identify")
}

// Anonymize logs the end of an identified session.
func (s *LogSink) Anonymize(_ context.Context) {
	log.Info().Msg("tracking anonymize")
}

// NopSink discards all events. Used in tests and when tracking is disabled.
type NopSink struct{}

// NewNopSink creates a NopSink.
func NewNopSink() *NopSink {
	return &NopSink{}
}

// Track discards the event.
func (NopSink) Track(context.Context, string, any) {}

// Identify discards the identification.
func (NopSink) Identify(context.Context, string) {}

// Anonymize discards the anonymization.
func (NopSink) Anonymize(context.Context) {}
