package searchperf

// apiResponse is the search-performance API response structure.
type apiResponse struct {
	Rows []apiRow `json:"rows"`
}

type apiRow struct {
	Query       string  `json:"query"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	Position    float64 `json:"position"`
	CTR         float64 `json:"ctr"`
}
