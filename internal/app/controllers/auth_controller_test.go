package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupEndpoint(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "alice",
		"password": "secret1",
	})

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])

	token := data["token"].(map[string]interface{})
	assert.NotEmpty(t, token["accessToken"])
	assert.Equal(t, "Bearer", token["tokenType"])
	assert.NotEmpty(t, token["refreshToken"])
}

func TestSignupEndpointRejectsShortFields(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "al",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "alice",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSignupEndpointDuplicateUsername(t *testing.T) {
	router := newTestRouter(t)
	signupAndToken(t, router, "alice")

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "alice",
		"password": "another-secret",
	})

	require.Equal(t, http.StatusConflict, recorder.Code)
	body := decodeBody(t, recorder)
	errorDetail := body["error"].(map[string]interface{})
	assert.Equal(t, "RES_002", errorDetail["code"])
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)
	signupAndToken(t, router, "alice")

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "alice",
		"password": "secret1",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})
	token := data["token"].(map[string]interface{})
	assert.NotEmpty(t, token["accessToken"])
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	router := newTestRouter(t)
	signupAndToken(t, router, "alice")

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "alice",
		"password": "wrong-password",
	})

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	body := decodeBody(t, recorder)
	errorDetail := body["error"].(map[string]interface{})
	assert.Equal(t, "AUTH_001", errorDetail["code"])
}

func TestRefreshEndpointRotatesToken(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": "alice",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})
	refreshToken := data["token"].(map[string]interface{})["refreshToken"].(string)

	recorder = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refreshToken": refreshToken,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	// Replaying the consumed token fails.
	recorder = doJSON(t, router, http.MethodPost, "/api/v1/auth/refresh", "", gin.H{
		"refreshToken": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestVerifyEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := signupAndToken(t, router, "alice")

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
}

func TestVerifyEndpointRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodGet, "/api/v1/auth/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/api/v1/auth/verify", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
