package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/informer/internal/metrics"
	"git.home.luguber.info/inful/informer/internal/version"
)

// BuildOutcome is the typed enumeration of final build result states.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeWarning  BuildOutcome = "warning"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// StageCount aggregates counts of outcomes for a stage.
type StageCount struct {
	Success  int `json:"success"`
	Warning  int `json:"warning"`
	Fatal    int `json:"fatal"`
	Canceled int `json:"canceled"`
}

// BuildReport captures high-level metrics about one generation run.
type BuildReport struct {
	RunID           string
	Start           time.Time
	End             time.Time
	Products        int // active records rendered
	States          int // state profiles rendered
	Pages           int // HTML pages in the artifact set
	Artifacts       int // total artifacts published
	Errors          []error
	Warnings        []error
	StageDurations  map[string]time.Duration
	StageErrorKinds map[StageName]StageErrorKind
	StageCounts     map[StageName]StageCount
	Outcome         BuildOutcome
}

// NewBuildReport constructs a report with a fresh run ID.
func NewBuildReport() *BuildReport {
	return &BuildReport{
		RunID:           uuid.NewString(),
		Start:           time.Now(),
		StageDurations:  make(map[string]time.Duration),
		StageErrorKinds: make(map[StageName]StageErrorKind),
		StageCounts:     make(map[StageName]StageCount),
	}
}

// Finish sets the end time of the report.
func (r *BuildReport) Finish() {
	if r.End.IsZero() {
		r.End = time.Now()
	}
}

// RecordStageResult updates counters and emits metrics (if recorder non-nil).
func (r *BuildReport) RecordStageResult(stage StageName, res StageResult, recorder metrics.Recorder) {
	sc := r.StageCounts[stage]
	switch res {
	case StageResultSuccess:
		sc.Success++
		if recorder != nil {
			recorder.IncStageResult(string(stage), metrics.ResultSuccess)
		}
	case StageResultWarning:
		sc.Warning++
		if recorder != nil {
			recorder.IncStageResult(string(stage), metrics.ResultWarning)
		}
	case StageResultFatal:
		sc.Fatal++
		if recorder != nil {
			recorder.IncStageResult(string(stage), metrics.ResultFatal)
		}
	case StageResultCanceled:
		sc.Canceled++
		if recorder != nil {
			recorder.IncStageResult(string(stage), metrics.ResultCanceled)
		}
	}
	r.StageCounts[stage] = sc
}

// DeriveOutcome sets the Outcome field based on recorded errors/warnings.
func (r *BuildReport) DeriveOutcome() {
	if len(r.Errors) > 0 {
		for _, e := range r.Errors {
			var se *StageError
			if errors.As(e, &se) && se.Kind == StageErrorCanceled {
				r.Outcome = OutcomeCanceled
				return
			}
		}
		r.Outcome = OutcomeFailed
		return
	}
	if len(r.Warnings) > 0 {
		r.Outcome = OutcomeWarning
		return
	}
	r.Outcome = OutcomeSuccess
}

// Summary returns a human-readable single-line summary.
func (r *BuildReport) Summary() string {
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("run=%s products=%d states=%d pages=%d artifacts=%d duration=%s errors=%d warnings=%d outcome=%s",
		r.RunID, r.Products, r.States, r.Pages, r.Artifacts, dur.Truncate(time.Millisecond),
		len(r.Errors), len(r.Warnings), string(r.Outcome))
}

// Persist writes build-report.json atomically at the given path. The report
// lives next to the published tree, never inside it, so the tree stays a pure
// function of its inputs.
func (r *BuildReport) Persist(path string) error {
	r.Finish()
	if r.Outcome == "" {
		r.DeriveOutcome()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure report directory: %w", err)
	}
	data, err := json.MarshalIndent(r.serializable(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename report: %w", err)
	}
	return nil
}

// buildReportSerializable mirrors BuildReport with string errors for JSON output.
type buildReportSerializable struct {
	RunID           string                   `json:"run_id"`
	Version         string                   `json:"informer_version"`
	Start           time.Time                `json:"start"`
	End             time.Time                `json:"end"`
	Products        int                      `json:"products"`
	States          int                      `json:"states"`
	Pages           int                      `json:"pages"`
	Artifacts       int                      `json:"artifacts"`
	Errors          []string                 `json:"errors"`
	Warnings        []string                 `json:"warnings"`
	StageDurations  map[string]time.Duration `json:"stage_durations"`
	StageErrorKinds map[string]string        `json:"stage_error_kinds"`
	StageCounts     map[string]StageCount    `json:"stage_counts"`
	Outcome         string                   `json:"outcome"`
}

func (r *BuildReport) serializable() *buildReportSerializable {
	s := &buildReportSerializable{
		RunID:           r.RunID,
		Version:         version.Version,
		Start:           r.Start,
		End:             r.End,
		Products:        r.Products,
		States:          r.States,
		Pages:           r.Pages,
		Artifacts:       r.Artifacts,
		Errors:          make([]string, len(r.Errors)),
		Warnings:        make([]string, len(r.Warnings)),
		StageDurations:  r.StageDurations,
		StageErrorKinds: make(map[string]string, len(r.StageErrorKinds)),
		StageCounts:     make(map[string]StageCount, len(r.StageCounts)),
		Outcome:         string(r.Outcome),
	}
	for i, e := range r.Errors {
		s.Errors[i] = e.Error()
	}
	for i, w := range r.Warnings {
		s.Warnings[i] = w.Error()
	}
	for k, v := range r.StageErrorKinds {
		s.StageErrorKinds[string(k)] = string(v)
	}
	for k, v := range r.StageCounts {
		s.StageCounts[string(k)] = v
	}
	return s
}
