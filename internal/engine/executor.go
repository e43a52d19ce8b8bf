package engine

import (
	"context"
	"fmt"

	"contentops/internal/domain"
	"contentops/internal/pipeline"
	"contentops/internal/stream"
)

// outcome is what an executor hands back to the controller for billing and
// the terminal frame.
type outcome struct {
	ArtifactID int64
	Title      string
	WordCount  int
	Assets     int
	Published  bool
}

func (e *Engine) dispatch(ctx context.Context, plan *Plan, emitter *stream.Emitter) (*outcome, error) {
	switch plan.Action {
	case domain.ActionCreateNew:
		return e.execCreate(ctx, plan, emitter)
	case domain.ActionContentExpansion, domain.ActionInternalLinking:
		return e.execExpand(ctx, plan, emitter)
	case domain.ActionMetaOptimization:
		return e.execOptimize(ctx, plan, emitter)
	default:
		return nil, fmt.Errorf("unknown action %s", plan.Action)
	}
}

// execCreate writes a brand-new article. The artifact row exists before the
// pipeline runs, so a failure mid-generation leaves an inspectable record.
func (e *Engine) execCreate(ctx context.Context, plan *Plan, emitter *stream.Emitter) (*outcome, error) {
	topic := e.cycle.DefaultTopic
	if plan.Insight != nil && plan.Insight.Query != "" {
		topic = plan.Insight.Query
	}

	emitter.Start(topic)

	artifactID, err := e.artifacts.Create(ctx, &domain.ContentArtifact{
		ProjectID: plan.ProjectID,
		Title:     topic,
		Status:    domain.ArtifactGenerating,
	})
	if err != nil {
		return nil, fmt.Errorf("create artifact: %w", err)
	}

	emitter.Progress("Drafting new article", "create", artifactID)

	result, err := e.pipeline.Run(ctx, pipeline.Request{
		Topic:       topic,
		TargetWords: e.cycle.TargetWords,
		Language:    e.cycle.Language,
	}, emitter)
	if err != nil {
		note := err.Error()
		if updateErr := e.artifacts.UpdateStatus(ctx, artifactID, domain.ArtifactFailed, &note); updateErr != nil {
			e.logger.Warn("mark artifact failed errored", "artifact_id", artifactID, "error", updateErr)
		}
		return nil, err
	}

	if err := e.artifacts.UpdateContent(ctx, artifactID, result.Title, result.Body, result.WordCount, len(result.Body)); err != nil {
		return nil, fmt.Errorf("store generated content: %w", err)
	}
	if err := e.artifacts.UpdateStatus(ctx, artifactID, domain.ArtifactCompleted, nil); err != nil {
		return nil, fmt.Errorf("complete artifact: %w", err)
	}

	e.appendActivity(ctx, plan.ProjectID, domain.ActivityGenerate,
		fmt.Sprintf("generated article %q (%d words)", result.Title, result.WordCount),
		map[string]any{"artifact_id": artifactID, "enrichment": result.Enrichment})

	published := e.publishArtifact(ctx, plan.ProjectID, artifactID, emitter)

	return &outcome{
		ArtifactID: artifactID,
		Title:      result.Title,
		WordCount:  result.WordCount,
		Assets:     result.Enrichment.AssetCount(),
		Published:  published,
	}, nil
}

const linkingBrief = "Focus on internal linking: weave in references to the site's related articles on this topic, with descriptive anchor text."

// execExpand appends newly generated material to an existing artifact. The
// internal_linking action runs through here with a linking-focused brief. A
// completed artifact never regresses in status: a failed expansion leaves it
// untouched.
func (e *Engine) execExpand(ctx context.Context, plan *Plan, emitter *stream.Emitter) (*outcome, error) {
	artifact, err := e.targetArtifact(ctx, plan)
	if err != nil {
		return nil, err
	}

	topic := artifact.Title
	if plan.Insight != nil && plan.Insight.Query != "" {
		topic = plan.Insight.Query
	}

	brief := ""
	if plan.Action == domain.ActionInternalLinking {
		brief = linkingBrief
	}

	emitter.Start(artifact.Title)
	emitter.Progress("Expanding existing article", "expand", artifact.ID)

	result, err := e.pipeline.Run(ctx, pipeline.Request{
		Topic:       topic,
		Source:      artifact.Body,
		TargetWords: e.cycle.TargetWords / 2,
		Language:    e.cycle.Language,
		Brief:       brief,
	}, emitter)
	if err != nil {
		return nil, err
	}

	body := artifact.Body + "\n\n" + result.Body
	wordCount := pipeline.WordCount(body)
	if err := e.artifacts.UpdateContent(ctx, artifact.ID, artifact.Title, body, wordCount, len(body)); err != nil {
		return nil, fmt.Errorf("store expanded content: %w", err)
	}

	e.appendActivity(ctx, plan.ProjectID, domain.ActivityUpdate,
		fmt.Sprintf("expanded %q to %d words", artifact.Title, wordCount),
		map[string]any{"artifact_id": artifact.ID, "added_words": result.WordCount})

	published := e.publishArtifact(ctx, plan.ProjectID, artifact.ID, emitter)

	return &outcome{
		ArtifactID: artifact.ID,
		Title:      artifact.Title,
		WordCount:  wordCount,
		Assets:     result.Enrichment.AssetCount(),
		Published:  published,
	}, nil
}

// execOptimize replaces the artifact's title via the narrow title-only
// completion; the full pipeline is not invoked.
func (e *Engine) execOptimize(ctx context.Context, plan *Plan, emitter *stream.Emitter) (*outcome, error) {
	artifact, err := e.targetArtifact(ctx, plan)
	if err != nil {
		return nil, err
	}

	query := artifact.Title
	if plan.Insight != nil && plan.Insight.Query != "" {
		query = plan.Insight.Query
	}

	emitter.Start(artifact.Title)
	emitter.Progress("Optimizing title", "optimize", artifact.ID)

	title, err := e.titles.GenerateTitle(ctx, artifact.Title, query)
	if err != nil {
		return nil, err
	}

	if err := e.artifacts.UpdateContent(ctx, artifact.ID, title, artifact.Body, artifact.WordCount, artifact.CharCount); err != nil {
		return nil, fmt.Errorf("store optimized title: %w", err)
	}

	e.appendActivity(ctx, plan.ProjectID, domain.ActivityOptimize,
		fmt.Sprintf("retitled %q to %q", artifact.Title, title),
		map[string]any{"artifact_id": artifact.ID})

	published := e.publishArtifact(ctx, plan.ProjectID, artifact.ID, emitter)

	return &outcome{
		ArtifactID: artifact.ID,
		Title:      title,
		WordCount:  artifact.WordCount,
		Published:  published,
	}, nil
}

// targetArtifact resolves the artifact an expansion or optimization acts on:
// the insight's reference when present, else the latest completed artifact
// for insight-less fallback runs.
func (e *Engine) targetArtifact(ctx context.Context, plan *Plan) (*domain.ContentArtifact, error) {
	if plan.Insight != nil && plan.Insight.ArtifactID != nil {
		return e.artifacts.Get(ctx, *plan.Insight.ArtifactID)
	}
	return e.artifacts.LatestCompleted(ctx, plan.ProjectID)
}

// publishArtifact attempts the external CMS publish. Failure here is soft:
// it is logged as an error activity and the artifact keeps its completed
// status — generation success and publish success are independent outcomes.
func (e *Engine) publishArtifact(ctx context.Context, projectID, artifactID int64, emitter *stream.Emitter) bool {
	if e.cms == nil {
		return false
	}

	artifact, err := e.artifacts.Get(ctx, artifactID)
	if err != nil {
		e.logger.Warn("load artifact for publish failed", "artifact_id", artifactID, "error", err)
		return false
	}
	if artifact.Status != domain.ArtifactCompleted && artifact.Status != domain.ArtifactPublished {
		return false
	}

	emitter.Progress("Publishing to CMS", "publish", artifactID)

	ref, err := e.cms.Publish(ctx, artifact)
	if err != nil {
		e.logger.Warn("publish failed", "artifact_id", artifactID, "error", err)
		e.appendActivity(ctx, projectID, domain.ActivityError,
			fmt.Sprintf("publish of %q failed: %v", artifact.Title, err),
			map[string]any{"artifact_id": artifactID})
		return false
	}

	if err := e.artifacts.SetExternalRef(ctx, artifactID, ref); err != nil {
		e.logger.Warn("store external ref failed", "artifact_id", artifactID, "error", err)
	}

	e.appendActivity(ctx, projectID, domain.ActivityPublish,
		fmt.Sprintf("published %q", artifact.Title),
		map[string]any{"artifact_id": artifactID, "external_ref": ref})

	return true
}
