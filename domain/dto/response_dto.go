package dto

// Res is the envelope every API response is wrapped in.
type Res struct {
	ResponseCode    string      `json:"responseCode"`
	ResponseMessage string      `json:"responseMessage"`
	Data            interface{} `json:"data,omitempty"`
}

const (
	CodeSuccess      = "200"
	CodeBadRequest   = "400"
	CodeUnauthorized = "401"
	CodeNotFound     = "404"
	CodeConflict     = "409"
	CodeUpstream     = "502"
	CodeInternal     = "500"
)

func Success(data interface{}) Res {
	return Res{ResponseCode: CodeSuccess, ResponseMessage: "Success", Data: data}
}

func Fail(code, message string) Res {
	return Res{ResponseCode: code, ResponseMessage: message}
}
