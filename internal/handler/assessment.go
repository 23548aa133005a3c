package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gqcars/internal/domain"
	"gqcars/internal/service"
)

// AssessmentHandler handles HTTP requests for the security assessment.
type AssessmentHandler struct {
	assessmentService *service.AssessmentService
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(assessmentService *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
	}
}

// AnswerPayload is one chosen option in an assessment submission.
type AnswerPayload struct {
	QuestionID int    `json:"question_id"`
	Value      string `json:"value"`
	Risk       int    `json:"risk"`
}

// SubmitAssessmentRequest is the HTTP request body for completing the
// assessment.
type SubmitAssessmentRequest struct {
	Answers []AnswerPayload `json:"answers"`
}

// AssessmentStatusResponse reports whether the assessment is completed.
type AssessmentStatusResponse struct {
	Completed bool `json:"completed"`
}

// GetQuestions handles GET /v1/assessment/questions
func (h *AssessmentHandler) GetQuestions(c *gin.Context) {
	respondJSON(c, http.StatusOK, h.assessmentService.Questions())
}

// Submit handles POST /v1/assessment
func (h *AssessmentHandler) Submit(c *gin.Context) {
	var req SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	answers := make(map[int]domain.Answer, len(req.Answers))
	for _, a := range req.Answers {
		answers[a.QuestionID] = domain.Answer{Value: a.Value, Risk: a.Risk}
	}

	assessment, err := h.assessmentService.Complete(c.Request.Context(), answers)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, assessment)
}

// GetCurrent handles GET /v1/assessment
func (h *AssessmentHandler) GetCurrent(c *gin.Context) {
	assessment, err := h.assessmentService.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if assessment == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no assessment completed"})
		return
	}

	respondJSON(c, http.StatusOK, assessment)
}

// GetStatus handles GET /v1/assessment/status
func (h *AssessmentHandler) GetStatus(c *gin.Context) {
	completed, err := h.assessmentService.IsCompleted(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, AssessmentStatusResponse{Completed: completed})
}

// Reset handles DELETE /v1/assessment
func (h *AssessmentHandler) Reset(c *gin.Context) {
	if err := h.assessmentService.Reset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
