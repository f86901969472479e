package request

import (
	"fmt"
	"strings"
)

type CreateSessionRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (r *CreateSessionRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("user_id is required")
	}
	return nil
}
