package wrapper

// ResponseWrapper is the {status, data} envelope the dashboard consumes.
type ResponseWrapper struct {
	Status int         `json:"status"`
	Data   interface{} `json:"data"`
}

type ErrorWrapper struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
