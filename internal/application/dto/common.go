package dto

// Response sobre de respuesta exitosa con datos.
type Response struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// OKResponse respuesta exitosa sin datos.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse cuerpo de error HTTP. Error es el texto que la UI muestra tal cual.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
