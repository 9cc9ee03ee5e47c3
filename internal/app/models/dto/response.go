package dto

// The registry API predates this implementation and its envelope shapes are
// fixed: create/fetch/search answer with {status, message, id|data} where
// status repeats the HTTP code, while update answers with {state, message}
// where state is 1 on success and 0 on any business failure.

// SubmitResponse is the create endpoint envelope.
type SubmitResponse struct {
	Status  int    `json:"status" example:"200"`
	Message string `json:"message" example:"Pass added successfully"`
	ID      int64  `json:"id,omitempty" example:"42"`
}

// DataResponse is the fetch/search endpoint envelope. Data is null on a 404
// and an array on search.
type DataResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"Data retrieved successfully"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the envelope for validation and server errors on the
// status-shaped endpoints.
type ErrorResponse struct {
	Status  int         `json:"status" example:"400"`
	Message string      `json:"message" example:"Required fields are missing"`
	Data    interface{} `json:"data,omitempty"`
}

// UpdateResponse is the update endpoint envelope.
type UpdateResponse struct {
	State   int    `json:"state" example:"1"`
	Message string `json:"message" example:"Record updated successfully"`
}

// HealthResponse reports liveness and database connectivity.
type HealthResponse struct {
	Status   string `json:"status" example:"OK"`
	Database string `json:"database" example:"connected"`
}
