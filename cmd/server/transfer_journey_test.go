package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/s3sync/s3sync/internal/models"
)

func TestTransferAuthorizationJourney(t *testing.T) {
	mockStore := new(MockObjectStore)
	e := newTestServer(mockStore, new(MockUsageReader))

	getURL, _ := url.Parse("https://store.example/docs/a.txt?X-Amz-Signature=get")
	putURL, _ := url.Parse("https://store.example/docs/a.txt?X-Amz-Signature=put")
	mockStore.On("PresignGet", mock.Anything, "docs/a.txt", time.Hour).Return(getURL, nil)
	mockStore.On("PresignPut", mock.Anything, "docs/a.txt", time.Hour).Return(putURL, nil)

	// Step A: read grant
	req := httptest.NewRequest(http.MethodGet, "/api/transfer-authorization?key=docs%2Fa.txt&op=read", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var auth models.TransferAuthorization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &auth))
	assert.Equal(t, "docs/a.txt", auth.Key)
	assert.Equal(t, models.OperationRead, auth.Op)
	assert.Equal(t, getURL.String(), auth.URL)
	assert.WithinDuration(t, time.Now().Add(time.Hour), auth.ExpiresAt, time.Minute)

	// Step B: write grant for the same key
	req = httptest.NewRequest(http.MethodGet, "/api/transfer-authorization?key=docs%2Fa.txt&op=write", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &auth))
	assert.Equal(t, models.OperationWrite, auth.Op)
	assert.Equal(t, putURL.String(), auth.URL)

	mockStore.AssertExpectations(t)
}

func TestTransferAuthorizationValidation(t *testing.T) {
	mockStore := new(MockObjectStore)
	e := newTestServer(mockStore, new(MockUsageReader))

	// Missing key
	req := httptest.NewRequest(http.MethodGet, "/api/transfer-authorization?op=read", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown operation
	req = httptest.NewRequest(http.MethodGet, "/api/transfer-authorization?key=a.txt&op=delete", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mockStore.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "PresignPut", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransferAuthorizationPresignFailure(t *testing.T) {
	mockStore := new(MockObjectStore)
	e := newTestServer(mockStore, new(MockUsageReader))

	mockStore.On("PresignGet", mock.Anything, "a.txt", time.Hour).
		Return((*url.URL)(nil), errors.New("credentials rejected"))

	req := httptest.NewRequest(http.MethodGet, "/api/transfer-authorization?key=a.txt&op=read", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
