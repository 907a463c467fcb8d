// internal/runner/runner.go
// Package runner drives an evaluation run: it feeds dataset questions through
// a chat provider, processes each response into a display answer, scores the
// batch, and writes the report artifacts.
package runner

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/MahirManghnani/finbench/internal/answer"
	"github.com/MahirManghnani/finbench/internal/appconfig"
	"github.com/MahirManghnani/finbench/internal/dataset"
	"github.com/MahirManghnani/finbench/internal/logging"
	"github.com/MahirManghnani/finbench/internal/prompt"
	"github.com/MahirManghnani/finbench/internal/providers"
	"github.com/MahirManghnani/finbench/internal/ratelimit"
	"github.com/MahirManghnani/finbench/internal/report"
	"github.com/MahirManghnani/finbench/internal/tui"
	"github.com/MahirManghnani/finbench/internal/util"
)

// Options collects the collaborators for one evaluation run.
type Options struct {
	Config   *appconfig.Config
	Provider providers.ChatProvider
	Limiter  *ratelimit.Limiter
	Out      io.Writer
}

// Run evaluates the configured test split and returns the run summary.
// Failures on a single question are logged and recorded as absent answers;
// only quota exhaustion or cancellation ends the run early, and both still
// produce a report over the questions processed so far.
func Run(ctx context.Context, opts Options) (report.RunSummary, error) {
	cfg := opts.Config

	entries, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return report.RunSummary{}, err
	}
	_, testEntries := dataset.Split(entries, cfg.TrainFraction(), cfg.SplitSeed())

	totalQuestions := dataset.QuestionCount(testEntries)
	logging.LogEvent("runner: dataset holds %d test entries with %d questions", len(testEntries), totalQuestions)

	if opts.Limiter != nil {
		if remaining := opts.Limiter.RemainingToday(); remaining >= 0 && totalQuestions > remaining {
			logging.LogEvent("runner: %d questions exceed the remaining daily quota (%d); the run will stop when the quota is spent", totalQuestions, remaining)
		}
	}

	var progress *tui.Progress
	if cfg.Progress {
		progress = tui.Start(totalQuestions)
		defer progress.Finish()
	}

	results, processed := collect(ctx, opts, testEntries, progress)

	pairs := make([]answer.Pair, 0, processed)
	for _, result := range results {
		for i, generated := range result.ProcessedAnswers {
			if generated != nil {
				pairs = append(pairs, answer.Pair{Generated: *generated, Expected: result.ExpectedAnswers[i]})
			}
		}
	}

	metrics := answer.EvaluateBatch(pairs)
	summary := report.NewRunSummary(metrics, processed, totalQuestions, time.Now())

	metricsPath, err := report.Write(cfg.ResultsDirPath(), results, summary)
	if err != nil {
		return summary, err
	}
	logging.LogEvent("runner: wrote metrics to %s", metricsPath)

	if progress != nil {
		progress.Finish()
		progress = nil
	}
	if opts.Out != nil {
		report.PrintSummary(opts.Out, summary)
	}

	return summary, nil
}

// collect walks the test entries and gathers per-entry results until the
// dataset, the question budget, or the daily quota runs out.
func collect(ctx context.Context, opts Options, testEntries []dataset.Entry, progress *tui.Progress) ([]report.EntryResult, int) {
	cfg := opts.Config

	var results []report.EntryResult
	processed := 0

	for _, entry := range testEntries {
		if cfg.MaxQuestions > 0 && processed >= cfg.MaxQuestions {
			logging.LogEvent("runner: reached question budget of %d, stopping", cfg.MaxQuestions)
			break
		}

		result, stop := evaluateEntry(ctx, opts, entry, processed, progress)
		processed += len(result.ModelResponses)
		if len(result.Questions) > 0 {
			results = append(results, result)
		}
		if stop {
			break
		}
	}

	return results, processed
}

// evaluateEntry runs one entry's questions through a fresh chat session. The
// boolean result requests a full stop (quota spent or context cancelled).
func evaluateEntry(ctx context.Context, opts Options, entry dataset.Entry, processedSoFar int, progress *tui.Progress) (report.EntryResult, bool) {
	result := report.EntryResult{EntryID: entry.ID}

	session := opts.Provider.NewSession(prompt.System, []providers.ChatMessage{
		{Role: "user", Content: prompt.Initial},
	})

	for i, qa := range entry.QAPairs {
		result.Questions = append(result.Questions, qa.Question)
		result.ExpectedAnswers = append(result.ExpectedAnswers, qa.Answer)

		if progress != nil {
			progress.Step(processedSoFar+len(result.ModelResponses), entry.ID)
		}

		question := prompt.Question(entry, qa.Question)
		if i > 0 {
			question = prompt.FollowUp(qa.Question)
		}

		response, err := session.Send(ctx, question)
		if err != nil {
			if errors.Is(err, ratelimit.ErrDailyLimit) || ctx.Err() != nil {
				// The question never reached the model; keep it out of the
				// record so the arrays stay parallel with the responses.
				result.Questions = result.Questions[:len(result.Questions)-1]
				result.ExpectedAnswers = result.ExpectedAnswers[:len(result.ExpectedAnswers)-1]
				logging.LogEvent("runner: stopping at %s, saving partial results: %v", entry.ID, err)
				return result, true
			}
			result.ModelResponses = append(result.ModelResponses, "")
			result.ProcessedAnswers = append(result.ProcessedAnswers, nil)
			logging.LogEvent("runner: %s question %d failed: %v", entry.ID, i, err)
			continue
		}

		result.ModelResponses = append(result.ModelResponses, response)
		result.ProcessedAnswers = append(result.ProcessedAnswers, processResponse(entry.ID, response))
	}

	return result, false
}

// processResponse converts a model response to a display answer, recording a
// skipped answer rather than failing the entry.
func processResponse(entryID, response string) *string {
	formatted, err := answer.Process(response)
	if err != nil {
		logging.LogEvent("runner: %s answer skipped: %v (response %s)", entryID, err, util.TruncateRunes(util.FirstLine(response), 120))
		return nil
	}
	return &formatted
}
