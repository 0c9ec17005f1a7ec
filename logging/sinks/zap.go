package sinks

import (
	"context"

	"go.uber.org/zap"

	"saferoom/server/logging"
)

// ZapSink forwards gameplay events onto a structured zap logger so they land
// in the same stream as the rest of the server's operational logs.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

func (s *ZapSink) Write(event logging.Event) error {
	if s.logger == nil {
		return nil
	}
	fields := []zap.Field{
		zap.Uint64("tick", event.Tick),
		zap.String("actor", string(event.Actor.Kind)+":"+event.Actor.ID),
		zap.String("category", event.Category),
	}
	if len(event.Targets) > 0 {
		ids := make([]string, 0, len(event.Targets))
		for _, target := range event.Targets {
			ids = append(ids, target.ID)
		}
		fields = append(fields, zap.Strings("targets", ids))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	for k, v := range event.Extra {
		fields = append(fields, zap.Any(k, v))
	}

	msg := string(event.Type)
	switch event.Severity {
	case logging.SeverityDebug:
		s.logger.Debug(msg, fields...)
	case logging.SeverityWarn:
		s.logger.Warn(msg, fields...)
	case logging.SeverityError:
		s.logger.Error(msg, fields...)
	default:
		s.logger.Info(msg, fields...)
	}
	return nil
}

func (s *ZapSink) Close(context.Context) error {
	if s.logger == nil {
		return nil
	}
	// Sync errors on stderr are expected on some platforms; ignore them.
	_ = s.logger.Sync()
	return nil
}
