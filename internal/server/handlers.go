package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/feedback-quality/internal/schemas"
	"github.com/jonathan/feedback-quality/internal/server/middleware"
	"github.com/jonathan/feedback-quality/internal/types"
)

const (
	maxBodyBytes     = 1 << 20
	maxBatchSize     = 100
	batchConcurrency = 4
)

// EvaluationRequest is a response set plus an optional campaign AI override.
type EvaluationRequest struct {
	types.ResponseSet
	CampaignAIEnabled *bool `json:"campaign_ai_enabled,omitempty"`
}

// EvaluationResponse is returned by POST /evaluations.
type EvaluationResponse struct {
	Quality          types.Quality     `json:"quality"`
	Message          string            `json:"message"`
	Suggestions      []string          `json:"suggestions"`
	QuestionFeedback map[string]string `json:"question_feedback"`
	UsedAI           bool              `json:"used_ai"`
	EvaluationID     string            `json:"evaluation_id,omitempty"`
	RequestID        string            `json:"request_id,omitempty"`
}

// BatchItemResponse is one streamed result of POST /evaluations/batch.
type BatchItemResponse struct {
	Index int `json:"index"`
	EvaluationResponse
}

// handleEvaluate evaluates one response set.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	req, err := decodeEvaluationRequest(body)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.evaluate(r.Context(), req))
}

// handleEvaluateBatch validates every set up front, then streams one SSE
// "result" event per set as each finishes, followed by "complete".
func (s *Server) handleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		s.errorResponse(w, &ErrMalformedBody{Cause: err})
		return
	}
	if len(raw) == 0 || len(raw) > maxBatchSize {
		s.errorResponse(w, &ErrValidation{Field: "(root)", Message: fmt.Sprintf("batch must hold 1 to %d response sets", maxBatchSize)})
		return
	}

	requests := make([]*EvaluationRequest, len(raw))
	for i, doc := range raw {
		req, err := decodeEvaluationRequest(doc)
		if err != nil {
			s.errorResponse(w, &ErrBatchItem{Index: i, Err: err})
			return
		}
		requests[i] = req
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchConcurrency)
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			resp := s.evaluate(ctx, req)
			return sse.WriteEvent("result", BatchItemResponse{Index: i, EvaluationResponse: *resp})
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("batch stream interrupted", zap.Error(err))
		sse.WriteError("stream interrupted")
		return
	}
	sse.WriteComplete(len(requests))
}

// evaluate runs the engine and records the result when a store is configured.
// Store failures are logged and never fail the request.
func (s *Server) evaluate(ctx context.Context, req *EvaluationRequest) *EvaluationResponse {
	set := &req.ResponseSet
	result := s.evaluator.Evaluate(ctx, set, req.CampaignAIEnabled)

	resp := &EvaluationResponse{
		Quality:          result.Quality,
		Message:          result.Message,
		Suggestions:      result.Suggestions,
		QuestionFeedback: result.QuestionFeedback,
		UsedAI:           result.UsedAI,
		RequestID:        middleware.GetRequestID(ctx),
	}

	if s.store != nil {
		id, err := s.store.SaveEvaluation(ctx, set, result)
		if err != nil {
			s.logger.Warn("saving evaluation failed",
				zap.String("target_employee_id", set.TargetEmployeeID),
				zap.Error(err))
		} else {
			resp.EvaluationID = id.String()
		}
	}
	return resp
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrBodyTooLarge{Limit: tooLarge.Limit}
		}
		return nil, &ErrMalformedBody{Cause: err}
	}
	return body, nil
}

// decodeEvaluationRequest checks the document against the JSON schema, then
// decodes it and applies struct validation.
func decodeEvaluationRequest(doc []byte) (*EvaluationRequest, error) {
	if err := schemas.ValidateResponseSet(doc); err != nil {
		return nil, err
	}

	var req EvaluationRequest
	if err := json.Unmarshal(doc, &req); err != nil {
		return nil, &ErrMalformedBody{Cause: err}
	}
	if err := req.ResponseSet.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return nil, err
		}
		return nil, &ErrValidation{Field: "items", Message: err.Error()}
	}
	return &req, nil
}
