package models

// YearCount is one bucket of a per-year histogram. After the aggregation in
// the member service the count always means works per year, regardless of
// which provider the member came from.
type YearCount struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}
