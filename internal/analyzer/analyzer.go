package analyzer

import (
	"sort"
	"strings"

	"contentops/internal/domain"
)

// Scoring thresholds and priorities for the telemetry rules.
const (
	linkMagnetPriority = 9.5
	contentGapPriority = 9.0

	lowCTRBase           = 8.0
	strikingDistanceBase = 7.0

	lowCTRImpressionsDivisor   = 10000.0
	strikingImpressionsDivisor = 5000.0
)

// Analyzer converts a window of search-performance rows into scored insight
// candidates. Scoring is deterministic: the same rows and artifact set always
// produce the same insight list.
type Analyzer struct {
	maxRows int
}

// New returns an analyzer that considers at most maxRows telemetry rows,
// picked by impressions, to bound scoring cost.
func New(maxRows int) *Analyzer {
	if maxRows <= 0 {
		maxRows = 20
	}
	return &Analyzer{maxRows: maxRows}
}

// Analyze scores each telemetry row independently and returns insights in
// descending priority order. An empty window yields an empty list.
func (a *Analyzer) Analyze(projectID int64, rows []domain.TelemetryRow, artifacts []domain.ContentArtifact) []domain.Insight {
	rows = a.topByImpressions(rows)

	var insights []domain.Insight
	for _, row := range rows {
		matched := matchArtifact(artifacts, row.Query)

		if row.Position <= 3 && row.Impressions > 1000 && matched != nil {
			insights = append(insights, newInsight(projectID, matched, domain.KindLinkMagnet, linkMagnetPriority, row.Query))
		}

		if row.Position <= 10 && row.CTR < 3.0 && row.Impressions > 100 && matched != nil {
			priority := lowCTRBase + float64(row.Impressions)/lowCTRImpressionsDivisor
			insights = append(insights, newInsight(projectID, matched, domain.KindLowCTR, priority, row.Query))
		}

		if row.Position > 10 && row.Position <= 30 && row.Impressions > 50 {
			if matched != nil {
				priority := strikingDistanceBase + float64(row.Impressions)/strikingImpressionsDivisor
				insights = append(insights, newInsight(projectID, matched, domain.KindStrikingDistance, priority, row.Query))
			} else {
				insights = append(insights, newInsight(projectID, nil, domain.KindContentGap, contentGapPriority, row.Query))
			}
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority > insights[j].Priority
	})

	return insights
}

func (a *Analyzer) topByImpressions(rows []domain.TelemetryRow) []domain.TelemetryRow {
	if len(rows) <= a.maxRows {
		return rows
	}
	sorted := make([]domain.TelemetryRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Impressions > sorted[j].Impressions
	})
	return sorted[:a.maxRows]
}

// matchArtifact returns the first artifact whose title or body contains the
// query, case-insensitively. First match wins; there is no ranking among
// multiple candidates.
func matchArtifact(artifacts []domain.ContentArtifact, query string) *domain.ContentArtifact {
	needle := strings.ToLower(query)
	for i := range artifacts {
		if strings.Contains(strings.ToLower(artifacts[i].Title), needle) ||
			strings.Contains(strings.ToLower(artifacts[i].Body), needle) {
			return &artifacts[i]
		}
	}
	return nil
}

func newInsight(projectID int64, matched *domain.ContentArtifact, kind domain.InsightKind, priority float64, query string) domain.Insight {
	insight := domain.Insight{
		ProjectID:       projectID,
		Kind:            kind,
		Priority:        priority,
		Query:           query,
		SuggestedAction: domain.ActionForKind(kind),
		Status:          domain.InsightPending,
	}
	if matched != nil {
		id := matched.ID
		insight.ArtifactID = &id
	}
	return insight
}
