package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientMintTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mint", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "0xA", body["address"])
		assert.Equal(t, float64(10), body["amount"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":         true,
			"transactionHash": "0xdeadbeef",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	hash, err := client.MintTokens(context.Background(), "0xA", 10)
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", hash)
}

func TestClientQuestTokenBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/balance", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"balance": 42,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	balance, err := client.QuestTokenBalance(context.Background(), "0xA")
	require.NoError(t, err)
	assert.Equal(t, int64(42), balance)
}

func TestClientUpdateResumeProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/updateResumeProgress", r.URL.Path)

		var progress ResumeProgress
		require.NoError(t, json.NewDecoder(r.Body).Decode(&progress))
		assert.Equal(t, "Aptos Basics", progress.CourseName)
		assert.Equal(t, 913, progress.Score)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":         true,
			"transactionHash": "0xupdate",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	hash, err := client.UpdateResumeProgress(context.Background(), ResumeProgress{
		Address:    "0xA",
		CourseID:   "course-1",
		CourseName: "Aptos Basics",
		Challenges: 4,
		Score:      913,
		Attempts:   6,
		Hints:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, "0xupdate", hash)
}

func TestClientSurfacesServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "No Developer Resume token found for this user.",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.MintResume(context.Background(), "0xA", "Developer Resume 1", "desc", "https://example.com/resume/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No Developer Resume token found")
}

func TestClientRejectsSuccessFalseWith200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "simulation failed",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.MintTokens(context.Background(), "0xA", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation failed")
}
