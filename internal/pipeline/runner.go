package pipeline

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/informer/internal/logfields"
)

// RunStages executes stages in order, recording timing and stopping on the
// first fatal error.
func RunStages(ctx context.Context, bs *BuildState, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := NewCanceledStageError(st.Name, ctx.Err())
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.RecordStageResult(st.Name, StageResultCanceled, bs.Recorder)
			return se
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)

		bs.Report.StageDurations[string(st.Name)] = dur
		if bs.Recorder != nil {
			bs.Recorder.ObserveStageDuration(string(st.Name), dur)
		}

		se := classify(st.Name, err)
		switch {
		case se == nil:
			bs.Report.RecordStageResult(st.Name, StageResultSuccess, bs.Recorder)
			slog.Debug("stage complete", logfields.Stage(string(st.Name)), logfields.DurationMS(float64(dur.Milliseconds())))
		case se.Kind == StageErrorWarning:
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			bs.Report.RecordStageResult(st.Name, StageResultWarning, bs.Recorder)
			slog.Warn("stage completed with warning", logfields.Stage(string(st.Name)), logfields.Error(se))
		case se.Kind == StageErrorCanceled:
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.RecordStageResult(st.Name, StageResultCanceled, bs.Recorder)
			return se
		default:
			bs.Report.StageErrorKinds[st.Name] = se.Kind
			bs.Report.Errors = append(bs.Report.Errors, se)
			bs.Report.RecordStageResult(st.Name, StageResultFatal, bs.Recorder)
			return se
		}
	}
	return nil
}

// classify normalizes a stage return value into a StageError. Plain errors
// become fatal; context cancellation becomes canceled.
func classify(stage StageName, err error) *StageError {
	if err == nil {
		return nil
	}
	var se *StageError
	if stdErrors.As(err, &se) {
		if se.Stage == "" {
			se.Stage = stage
		}
		return se
	}
	if stdErrors.Is(err, context.Canceled) || stdErrors.Is(err, context.DeadlineExceeded) {
		return NewCanceledStageError(stage, err)
	}
	return NewFatalStageError(stage, err)
}
