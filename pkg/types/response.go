package types

// SuccessEnvelope wraps every successful JSON response.
type SuccessEnvelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// PreviewMeta describes a truncated list: Returned of Total items, capped at Limit.
type PreviewMeta struct {
	Limit    int `json:"limit"`
	Returned int `json:"returned"`
	Total    int `json:"total"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
