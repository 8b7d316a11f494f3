// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package rag

import "github.com/jeranaias/ragchat-tui/internal/model"

// AskRequest is the JSON body sent to the ask endpoint.
type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse is the JSON body returned by the ask endpoint. Either Error is
// set or the answer fields are.
type AskResponse struct {
	Answer     string   `json:"answer,omitempty"`
	Confidence string   `json:"confidence,omitempty"`
	Sources    []string `json:"sources,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// IsError reports whether the service rejected the question.
func (r *AskResponse) IsError() bool {
	return r.Error != ""
}

// ToResult maps a reply (or its absence) to the conversation's Result.
func ToResult(resp *AskResponse, err error) model.Result {
	if err != nil {
		return model.Result{Transport: err}
	}
	if resp == nil {
		return model.Result{Transport: ErrTransport}
	}
	return model.Result{
		Answer:     resp.Answer,
		Confidence: resp.Confidence,
		Sources:    resp.Sources,
		Error:      resp.Error,
	}
}
