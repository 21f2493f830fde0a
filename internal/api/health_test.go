// Copyright (c) 2026 Marvelis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProbes(dbErr, limiterErr error) (liveness, readiness http.HandlerFunc) {
	return NewHealthHandlers(HealthDependencies{
		CheckDatabase: func() error { return dbErr },
		CheckLimiter:  func() error { return limiterErr },
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLivenessAlwaysOK(t *testing.T) {
	liveness, _ := newProbes(nil, nil)

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestReadinessHealthyDependencies(t *testing.T) {
	_, readiness := newProbes(nil, nil)

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "ready", envelope.Data.Status)
}

// A failing dependency degrades the probe with a single 503 status write.
func TestReadinessDegradedDependency(t *testing.T) {
	_, readiness := newProbes(errors.New("connection refused"), nil)

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var envelope struct {
		Data struct {
			Status string `json:"status"`
			Checks []struct {
				Name  string `json:"name"`
				IsOK  bool   `json:"ok"`
				Error string `json:"error"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, "degraded", envelope.Data.Status)
	require.Len(t, envelope.Data.Checks, 2)
	assert.False(t, envelope.Data.Checks[0].IsOK)
	assert.Equal(t, "connection refused", envelope.Data.Checks[0].Error)
	assert.True(t, envelope.Data.Checks[1].IsOK)
}
