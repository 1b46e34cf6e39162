package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// PipelineEvent captures lightweight execution telemetry for one report
// pipeline step or run.
type PipelineEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// PipelineObserver receives pipeline execution events.
type PipelineObserver interface {
	ObservePipeline(ctx context.Context, event PipelineEvent)
}

// NoopPipelineObserver ignores all events.
type NoopPipelineObserver struct{}

func (NoopPipelineObserver) ObservePipeline(context.Context, PipelineEvent) {}

type logPipelineObserver struct {
	logger *slog.Logger
}

// NewLogPipelineObserver writes pipeline events to the provided writer.
func NewLogPipelineObserver(w io.Writer) PipelineObserver {
	if w == nil {
		return NoopPipelineObserver{}
	}
	return &logPipelineObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logPipelineObserver) ObservePipeline(ctx context.Context, event PipelineEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"pipeline", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "report_pipeline", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "report_pipeline", attrs...)
}

func pipelineObserverOrNoop(observers []PipelineObserver) PipelineObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopPipelineObserver{}
}
