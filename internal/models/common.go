package models

// ListResponse is the envelope upstream list endpoints return.
type ListResponse[T any] struct {
	Count   int    `json:"count"`
	Results []T    `json:"results"`
	Message string `json:"message,omitempty"`
}

// Len is the number of results actually carried, which can differ from Count on paginated lists.
func (l *ListResponse[T]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Results)
}

// MessageResponse is the plain acknowledgement some action endpoints send back.
type MessageResponse struct {
	Message string `json:"message"`
}

// Location is a WGS84 coordinate as the upstream API encodes it.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
