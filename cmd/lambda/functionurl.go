package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/pricofy/notes-translator/internal/domain"
	"github.com/pricofy/notes-translator/internal/handler"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// IsFunctionURLEvent checks if the event came through a Lambda function URL.
func IsFunctionURLEvent(event json.RawMessage) bool {
	var probe struct {
		RequestContext struct {
			HTTP struct {
				Method string `json:"method"`
			} `json:"http"`
		} `json:"requestContext"`
	}
	if err := json.Unmarshal(event, &probe); err != nil {
		return false
	}
	return probe.RequestContext.HTTP.Method != ""
}

// handleFunctionURL serves GET (style catalog) and POST (translate).
func (a *app) handleFunctionURL(ctx context.Context, event json.RawMessage) (events.LambdaFunctionURLResponse, error) {
	var req events.LambdaFunctionURLRequest
	if err := json.Unmarshal(event, &req); err != nil {
		return events.LambdaFunctionURLResponse{}, err
	}

	switch req.RequestContext.HTTP.Method {
	case http.MethodGet:
		return jsonResponse(http.StatusOK, map[string][]string{"styles": domain.Styles()})
	case http.MethodPost:
	default:
		return jsonResponse(http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return jsonResponse(http.StatusBadRequest, &domain.Response{
				Category: domain.ValidationError,
				Error:    "invalid request body",
			})
		}
		body = decoded
	}

	var tr domain.Request
	if err := json.Unmarshal(body, &tr); err != nil {
		return jsonResponse(http.StatusBadRequest, &domain.Response{
			Category: domain.ValidationError,
			Error:    "invalid request body",
		})
	}

	resp, err := a.handler.Handle(ctx, tr)
	if err != nil {
		return events.LambdaFunctionURLResponse{}, err
	}
	return jsonResponse(handler.StatusCode(resp.Category), resp)
}

func jsonResponse(status int, v any) (events.LambdaFunctionURLResponse, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return events.LambdaFunctionURLResponse{}, err
	}
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    jsonHeaders,
		Body:       string(b),
	}, nil
}
