package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocloud/autocloud-api/pkg/config"
	appErrors "github.com/autocloud/autocloud-api/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(config.GoogleConfig{
		DriveBaseURL:   server.URL,
		OAuthBaseURL:   server.URL,
		GmailBaseURL:   server.URL,
		ListPageSize:   2,
		RequestTimeout: 5 * time.Second,
	}, nil)
	return client, server
}

func TestListAllFilesFollowsPagination(t *testing.T) {
	var tokens []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/files", r.URL.Path)
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		require.Equal(t, "trashed = false", r.URL.Query().Get("q"))
		require.Equal(t, "2", r.URL.Query().Get("pageSize"))

		token := r.URL.Query().Get("pageToken")
		tokens = append(tokens, token)

		w.Header().Set("Content-Type", "application/json")
		if token == "" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"nextPageToken": "page-2",
				"files": []map[string]interface{}{
					{"id": "f1", "name": "a.txt", "mimeType": "text/plain", "size": "100", "modifiedTime": "2026-01-01T00:00:00Z"},
					{"id": "f2", "name": "b.txt", "mimeType": "text/plain", "size": "200"},
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"files": []map[string]interface{}{
				{"id": "f3", "name": "c.txt", "quotaBytesUsed": "300"},
			},
		})
	}))

	records, err := client.ListAllFiles(context.Background(), "token-1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"", "page-2"}, tokens)

	assert.Equal(t, int64(100), records[0].SizeBytes)
	require.NotNil(t, records[0].ModifiedTime)
	assert.Nil(t, records[1].ModifiedTime)

	// A record with no size string falls back to quotaBytesUsed, and a
	// missing MIME type is normalized.
	assert.Equal(t, int64(300), records[2].SizeBytes)
	assert.Equal(t, "unknown", records[2].MimeType)
}

func TestListAllFilesMapsUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ListAllFiles(context.Background(), "expired")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrTokenExpired.Code, appErr.Code)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
}

func TestTrashFilePatchesTrashedFlag(t *testing.T) {
	var gotBody map[string]bool
	var gotMethod, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.TrashFile(context.Background(), "t", "file-9"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/files/file-9", gotPath)
	assert.Equal(t, map[string]bool{"trashed": true}, gotBody)

	require.NoError(t, client.UntrashFile(context.Background(), "t", "file-9"))
	assert.Equal(t, map[string]bool{"trashed": false}, gotBody)
}

func TestFileTrashedMapsNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FileTrashed(context.Background(), "t", "gone")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestFileTrashedReadsFlag(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "f1", "trashed": true})
	}))

	trashed, err := client.FileTrashed(context.Background(), "t", "f1")
	require.NoError(t, err)
	assert.True(t, trashed)
}

func TestAboutParsesStringQuota(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/about", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"storageQuota": map[string]string{
				"limit":         "16106127360",
				"usage":         "1073741824",
				"usageInDrive":  "536870912",
				"usageInGmail":  "268435456",
				"usageInPhotos": "268435456",
			},
		})
	}))

	quota, err := client.About(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, int64(16106127360), quota.Limit)
	assert.Equal(t, int64(1073741824), quota.Usage)
	assert.Equal(t, int64(536870912), quota.UsageInDrive)
}

func TestGetUserInfo(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/userinfo", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id": "g-1", "email": "owner@example.com", "name": "Owner",
		})
	}))

	info, err := client.GetUserInfo(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", info.Email)
}

func TestClientObserverReceivesSamples(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"files": []interface{}{}})
	}))

	var endpoints []string
	var sawErr bool
	client.SetObserver(func(endpoint string, err error, duration time.Duration) {
		endpoints = append(endpoints, endpoint)
		sawErr = sawErr || err != nil
	})

	_, err := client.ListAllFiles(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"files.list"}, endpoints)
	assert.False(t, sawErr)
}
