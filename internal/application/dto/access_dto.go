package dto

// AccessStatusResponse estado de acceso de la cuenta del usuario autenticado.
type AccessStatusResponse struct {
	Status        string `json:"status"` // loading, active, expired, suspended, error
	Role          string `json:"role,omitempty"`
	DaysRemaining *int   `json:"days_remaining"`
}
