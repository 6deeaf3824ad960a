package models

// Error response body shared by the JSON routes.
type ErrorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(msg string) ErrorBody {
	return ErrorBody{Error: msg}
}

type OKBody struct {
	OK bool `json:"ok"`
}

func OKResponse() OKBody {
	return OKBody{OK: true}
}

// ReceivedBody acknowledges a verified webhook delivery.
type ReceivedBody struct {
	Received bool `json:"received"`
}

func ReceivedResponse() ReceivedBody {
	return ReceivedBody{Received: true}
}
