package request

import (
	"fmt"

	"github.com/CandidateX/sentinel/pkg/app/environment"
	"github.com/mitchellh/mapstructure"
)

type ValidateEnvironmentRequest struct {
	Checks map[string]interface{} `json:"checks" binding:"required"`
}

// Decode maps the loosely typed checks payload onto the typed probe struct.
// Unknown keys are ignored; missing keys keep their zero value and fail the
// corresponding check.
func (r *ValidateEnvironmentRequest) Decode() (environment.Checks, error) {
	var checks environment.Checks
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &checks,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return checks, fmt.Errorf("failed to build checks decoder: %w", err)
	}
	if err := decoder.Decode(r.Checks); err != nil {
		return checks, fmt.Errorf("invalid checks payload: %w", err)
	}
	return checks, nil
}
