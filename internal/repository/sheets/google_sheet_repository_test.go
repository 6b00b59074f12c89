package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mamadbah2/tilestock/internal/config"
)

func TestAppendRows(t *testing.T) {
	var gotPath, gotInput string
	var gotBody struct {
		Values [][]interface{} `json:"values"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInput = r.URL.Query().Get("valueInputOption")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId": "sheet-123"}`))
	}))
	defer server.Close()

	repo, err := NewGoogleSheetRepository(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-123", Range: "LowStock!A:F"}, nil,
		option.WithEndpoint(server.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)

	err = repo.AppendRows(context.Background(), [][]interface{}{
		{"2024-03-01 10:00", 1, "Carrara", "Godown", 3, ""},
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotPath, "/v4/spreadsheets/sheet-123/values/"), gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ":append"), gotPath)
	assert.Equal(t, "USER_ENTERED", gotInput)
	require.Len(t, gotBody.Values, 1)
	assert.Equal(t, "Carrara", gotBody.Values[0][2])
}

func TestAppendRowsEmptyIsNoop(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	repo, err := NewGoogleSheetRepository(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-123", Range: "LowStock!A:F"}, nil,
		option.WithEndpoint(server.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)

	require.NoError(t, repo.AppendRows(context.Background(), nil))
	assert.False(t, called)
}

func TestAppendRowsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 403, "message": "denied"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	repo, err := NewGoogleSheetRepository(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-123", Range: "LowStock!A:F"}, nil,
		option.WithEndpoint(server.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)

	err = repo.AppendRows(context.Background(), [][]interface{}{{"x"}})
	assert.ErrorContains(t, err, "LowStock!A:F")
}

func TestNewRepositoryRequiresRange(t *testing.T) {
	_, err := NewGoogleSheetRepository(context.Background(), config.SheetsConfig{SpreadsheetID: "x"}, nil, option.WithoutAuthentication())
	assert.Error(t, err)
}
