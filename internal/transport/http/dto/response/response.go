package response

// envelope statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MessageRefreshed marks a payload recomputed for this request instead of served from a memo.
const MessageRefreshed = "refreshed"

// Response is the envelope of every successful answer of the API.
type Response struct {
	Status  string `json:"status" example:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty" example:"refreshed"`
}

// ErrorResponse carries a machine readable code in Error (one of the Code*
// constants) and a human readable Details.
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Error   string `json:"error" example:"not_found"`
	Details string `json:"details,omitempty" example:"painting not found"`
}

func SuccessResponse(data any) Response {
	return Response{
		Status: StatusSuccess,
		Data:   data,
	}
}

func Refreshed(data any) Response {
	r := SuccessResponse(data)
	r.Message = MessageRefreshed
	return r
}

func ErrorResponseWithDetails(code, details string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Error:   code,
		Details: details,
	}
}

// NotFound names the missing thing: NotFound("page") -> "page not found".
func NotFound(what string) ErrorResponse {
	return ErrorResponseWithDetails(CodeNotFound, what+" not found")
}
