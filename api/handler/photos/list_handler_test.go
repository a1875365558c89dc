package photos

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/handleme/gallery/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListApproved_OnlyApproved(t *testing.T) {
	env := newTestEnv(t)

	approved := env.createPhoto(t, models.PhotoStatusApproved)
	env.createPhoto(t, models.PhotoStatusPending)
	env.createPhoto(t, models.PhotoStatusRejected)

	w := env.do(t, http.MethodGet, "/api/v1/photos", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "success", resp.Status)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "newest", data["sort"])
	assert.Equal(t, float64(1), data["count"])

	photos := data["photos"].([]interface{})
	require.Len(t, photos, 1)
	first := photos[0].(map[string]interface{})
	assert.Equal(t, approved.Identifier, first["id"])
	assert.Equal(t, "http://localhost:3000/photos/file/"+approved.ImagePath, first["url"])
}

func TestListApproved_SortEcho(t *testing.T) {
	env := newTestEnv(t)
	env.createPhoto(t, models.PhotoStatusApproved)

	w := env.do(t, http.MethodGet, "/api/v1/photos?sort=likes", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w.Body.Bytes())
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "likes", data["sort"])
}

func TestGetFile_StreamsBlob(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.SaveNew(context.Background(), "submissions/a.jpg", strings.NewReader("blob"), 4, "image/jpeg"))

	w := env.do(t, http.MethodGet, "/photos/file/submissions/a.jpg", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "blob", w.Body.String())
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
}

func TestGetFile_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/photos/file/submissions/missing.jpg", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetFile_RejectsTraversal(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/photos/file/..%2Fsecrets.txt", nil, "")
	assert.NotEqual(t, http.StatusOK, w.Code)
}
