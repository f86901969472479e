package request

import (
	"fmt"
	"strings"
)

type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if strings.TrimSpace(r.QuestionID) == "" {
		return fmt.Errorf("question_id is required")
	}
	if strings.TrimSpace(r.Answer) == "" {
		return fmt.Errorf("answer is required")
	}
	return nil
}
