package stub

import "github.com/KasumiMercury/primind-jetlag/internal/domain"

// SeedRequest replaces generated schedules with a canned one until reset.
type SeedRequest struct {
	Schedule domain.Schedule `json:"schedule"`
}

type FailRequest struct {
	Count      int `json:"count"`
	StatusCode int `json:"status_code"`
}

type RequestsResponse struct {
	Requests []domain.ScheduleRequest `json:"requests"`
	Count    int                      `json:"count"`
}
