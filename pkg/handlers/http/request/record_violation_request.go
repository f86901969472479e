package request

import (
	"fmt"
	"strings"
)

type RecordViolationRequest struct {
	UserID        string                 `json:"user_id" binding:"required"`
	ViolationType string                 `json:"violation_type" binding:"required"`
	Severity      string                 `json:"severity,omitempty"`
	Description   string                 `json:"description,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

func (r *RecordViolationRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("user_id is required")
	}
	if strings.TrimSpace(r.ViolationType) == "" {
		return fmt.Errorf("violation_type is required")
	}
	return nil
}
