package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"contentops/internal/analyzer"
	"contentops/internal/config"
	"contentops/internal/domain"
	"contentops/internal/strategy"
	"contentops/internal/stream"
)

// Deps wires the engine's collaborators. All external I/O arrives through
// interfaces so cycles are testable with mocks.
type Deps struct {
	Telemetry TelemetrySource
	Artifacts ArtifactStore
	Insights  InsightStore
	Activity  ActivityLog
	Gate      CreditGate
	Pipeline  ContentPipeline
	Titles    TitleCompleter
	CMS       CMSPublisher
	Events    EventPublisher
	Analyzer  *analyzer.Analyzer
	Selector  *strategy.Selector
	Logger    *slog.Logger
	Costs     config.CreditsConfig
	Cycle     config.CycleConfig
}

// Engine is the operations cycle controller: analyze, select, execute,
// debit, log — strictly in that order, one synchronous unit of work.
type Engine struct {
	telemetry TelemetrySource
	artifacts ArtifactStore
	insights  InsightStore
	activity  ActivityLog
	gate      CreditGate
	pipeline  ContentPipeline
	titles    TitleCompleter
	cms       CMSPublisher
	events    EventPublisher
	analyzer  *analyzer.Analyzer
	selector  *strategy.Selector
	logger    *slog.Logger
	costs     config.CreditsConfig
	cycle     config.CycleConfig
}

func New(deps Deps) *Engine {
	return &Engine{
		telemetry: deps.Telemetry,
		artifacts: deps.Artifacts,
		insights:  deps.Insights,
		activity:  deps.Activity,
		gate:      deps.Gate,
		pipeline:  deps.Pipeline,
		titles:    deps.Titles,
		cms:       deps.CMS,
		events:    deps.Events,
		analyzer:  deps.Analyzer,
		selector:  deps.Selector,
		logger:    deps.Logger,
		costs:     deps.Costs,
		cycle:     deps.Cycle,
	}
}

// Plan is the outcome of the pre-flight phase: the selected action, its
// driving insight, and the checked cost estimate. The account stays locked
// until Execute or Release runs.
type Plan struct {
	ProjectID     int64
	AccountID     int64
	Action        domain.Action
	Insight       *domain.Insight
	ArtifactCount int
	EstimatedCost int64

	release func()
}

// Release unlocks the account for plans that are abandoned before Execute.
func (p *Plan) Release() {
	if p.release != nil {
		p.release()
		p.release = nil
	}
}

// Prepare runs the unpaid phase of a cycle: telemetry analysis, insight
// persistence, strategy selection, and the credit pre-flight check. Hard
// failures (not-found, insufficient credits) surface here, before any
// streaming channel is opened and before any language-model call.
func (e *Engine) Prepare(ctx context.Context, projectID, accountID int64) (*Plan, error) {
	release := e.gate.Acquire(accountID)
	prepared := false
	defer func() {
		if !prepared {
			release()
		}
	}()

	artifacts, err := e.artifacts.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	rows, err := e.telemetry.FetchWindow(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch telemetry: %w", err)
	}

	insights := e.analyzer.Analyze(projectID, rows, artifacts)
	if len(insights) > 0 {
		if err := e.insights.CreateBatch(ctx, insights); err != nil {
			return nil, fmt.Errorf("store insights: %w", err)
		}
	}

	e.appendActivity(ctx, projectID, domain.ActivityScan,
		fmt.Sprintf("analyzed %d telemetry rows, found %d insights", len(rows), len(insights)),
		map[string]any{"rows": len(rows), "insights": len(insights)})

	decision := e.selector.Select(insights, len(artifacts))

	e.appendActivity(ctx, projectID, domain.ActivityPlan,
		fmt.Sprintf("selected action %s", decision.Action),
		planDetails(decision))

	cost := e.estimatedCost(decision.Action)
	if err := e.gate.Check(ctx, accountID, cost); err != nil {
		return nil, err
	}

	prepared = true
	return &Plan{
		ProjectID:     projectID,
		AccountID:     accountID,
		Action:        decision.Action,
		Insight:       decision.Insight,
		ArtifactCount: len(artifacts),
		EstimatedCost: cost,
		release:       release,
	}, nil
}

// Execute runs the paid phase. The streaming channel is open from here on,
// so every failure is converted into a terminal error frame instead of being
// returned; the stats record what actually happened.
func (e *Engine) Execute(ctx context.Context, plan *Plan, emitter *stream.Emitter) *domain.CycleStats {
	defer plan.Release()
	defer emitter.Close()

	start := time.Now()
	stats := &domain.CycleStats{
		ProjectID: plan.ProjectID,
		Action:    plan.Action,
	}
	if plan.Insight != nil {
		id := plan.Insight.ID
		stats.InsightID = &id
	}

	outcome, err := e.dispatch(ctx, plan, emitter)
	if err != nil {
		e.logger.Error("cycle execution failed",
			"project_id", plan.ProjectID,
			"action", plan.Action,
			"error", err,
		)
		e.appendActivity(ctx, plan.ProjectID, domain.ActivityError, err.Error(), nil)
		emitter.Fail(err.Error())
		stats.Duration = time.Since(start)
		return stats
	}

	stats.ArtifactID = &outcome.ArtifactID
	stats.Generated = true
	stats.Published = outcome.Published

	cost := e.actualCost(plan.Action, outcome.Assets)
	if _, err := e.gate.Debit(ctx, plan.AccountID, cost, debitReason(plan.Action)); err != nil {
		e.logger.Error("debit failed after completed work",
			"account_id", plan.AccountID,
			"cost", cost,
			"error", err,
		)
	} else {
		stats.CreditsUsed = cost
	}

	if plan.Insight != nil {
		if err := e.insights.MarkApplied(ctx, plan.Insight.ID); err != nil {
			e.logger.Warn("mark insight applied failed", "insight_id", plan.Insight.ID, "error", err)
		}
	}

	emitter.Complete(map[string]any{
		"artifactId": outcome.ArtifactID,
		"title":      outcome.Title,
		"wordCount":  outcome.WordCount,
		"published":  outcome.Published,
	}, stats.CreditsUsed)

	stats.Duration = time.Since(start)

	if e.events != nil {
		if err := e.events.PublishCycle(ctx, stats); err != nil {
			e.logger.Warn("publish cycle event failed", "error", err)
		}
	}

	e.logger.Info("cycle completed",
		"project_id", plan.ProjectID,
		"action", plan.Action,
		"artifact_id", outcome.ArtifactID,
		"published", outcome.Published,
		"credits_used", stats.CreditsUsed,
		"duration", stats.Duration,
	)

	return stats
}

// RunCycle is Prepare followed by Execute, for callers that do not need to
// open the streaming channel between the phases.
func (e *Engine) RunCycle(ctx context.Context, projectID, accountID int64, emitter *stream.Emitter) (*domain.CycleStats, error) {
	plan, err := e.Prepare(ctx, projectID, accountID)
	if err != nil {
		return nil, err
	}
	return e.Execute(ctx, plan, emitter), nil
}

func (e *Engine) estimatedCost(action domain.Action) int64 {
	if action == domain.ActionMetaOptimization {
		return e.costs.OptimizationCost
	}
	return e.costs.ArticleCost
}

// actualCost is known only after execution: the base cost plus the
// per-enrichment-asset surcharge.
func (e *Engine) actualCost(action domain.Action, assets int) int64 {
	if action == domain.ActionMetaOptimization {
		return e.costs.OptimizationCost
	}
	return e.costs.ArticleCost + int64(assets)*e.costs.EnrichmentCost
}

func debitReason(action domain.Action) string {
	return "content cycle: " + string(action)
}

func (e *Engine) appendActivity(ctx context.Context, projectID int64, action domain.ActivityAction, message string, details map[string]any) {
	entry := &domain.ActivityLogEntry{
		ProjectID: projectID,
		Action:    action,
		Message:   message,
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = raw
		}
	}
	if err := e.activity.Append(ctx, entry); err != nil {
		e.logger.Warn("append activity failed", "action", action, "error", err)
	}
}

func planDetails(decision strategy.Decision) map[string]any {
	details := map[string]any{"action": string(decision.Action)}
	if decision.Insight != nil {
		details["kind"] = string(decision.Insight.Kind)
		details["query"] = decision.Insight.Query
		details["priority"] = decision.Insight.Priority
	}
	return details
}
