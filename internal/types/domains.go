package types

// DomainCheckRequest asks for domain suggestions for a business name.
type DomainCheckRequest struct {
	BusinessName string `json:"business_name" validate:"required,max=100"`
}

// Validate validates the DomainCheckRequest using the validator.
func (r *DomainCheckRequest) Validate() error {
	return validatorInstance().Struct(r)
}

// DomainCheckResponse lists candidate domains and their (simulated) availability.
type DomainCheckResponse struct {
	BusinessName      string          `json:"business_name"`
	DomainSuggestions []string        `json:"domain_suggestions"`
	Availability      map[string]bool `json:"availability"`
	Note              string          `json:"note"`
}
