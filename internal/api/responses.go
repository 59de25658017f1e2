package api

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type StatsResponse struct {
	Collections map[string]int `json:"collections"`
	Total       int            `json:"total"`
}
