package models

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(data any) Response {
	return Response{Success: true, Data: data}
}

func Message(msg string) Response {
	return Response{Success: true, Message: msg}
}

func Failure(msg string) Response {
	return Response{Success: false, Error: msg}
}

type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Mode      string `json:"mode"`
	Timestamp string `json:"timestamp"`
}
