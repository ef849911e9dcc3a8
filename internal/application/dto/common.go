package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Envelope cuerpo uniforme de las respuestas exitosas.
type Envelope struct {
	Error bool `json:"error"`
	Data  any  `json:"data"`
}

// OK envuelve data en el sobre de éxito.
func OK(data any) Envelope {
	return Envelope{Error: false, Data: data}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
}
