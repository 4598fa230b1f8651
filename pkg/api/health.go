package api

// HealthResponse ответ GET /health
type HealthResponse struct {
	Status      string  `json:"status"`
	Version     string  `json:"version"`
	Env         string  `json:"env"`
	Database    string  `json:"database"`
	Uptime      float64 `json:"uptime"` // секунды с момента запуска
	DBConnected bool    `json:"dbConnected"`
}

// IndexResponse ответ GET /
type IndexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
