package photos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/handleme/gallery/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likeBody(photoID, fingerprint string) string {
	return fmt.Sprintf(`{"photo_id":%q,"anon_fingerprint":%q}`, photoID, fingerprint)
}

func decodeJSON(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestLikePhoto_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{}`,
		likeBody("", "fp-1"),
		likeBody("photo-1", ""),
		`not json`,
	} {
		w := env.do(t, http.MethodPost, "/api/v1/photos/like", strings.NewReader(body), "application/json")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := decodeJSON(t, w.Body.Bytes())
		assert.Equal(t, false, resp["ok"])
		assert.Equal(t, "Missing photo_id or anon_fingerprint", resp["error"])
	}
}

func TestLikePhoto_UnknownPhoto(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/photos/like",
		strings.NewReader(likeBody("no-such-photo", "fp-1")), "application/json")
	assert.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeJSON(t, w.Body.Bytes())
	assert.Equal(t, false, resp["ok"])
	assert.Equal(t, "Photo not found", resp["error"])
}

func TestLikePhoto_FirstLike(t *testing.T) {
	env := newTestEnv(t)
	record := env.createPhoto(t, models.PhotoStatusApproved)

	w := env.do(t, http.MethodPost, "/api/v1/photos/like",
		strings.NewReader(likeBody(record.Identifier, "fp-1")), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON(t, w.Body.Bytes())
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, true, resp["incremented"])
	assert.Equal(t, float64(1), resp["like_count"])
}

func TestLikePhoto_DuplicateIsOkNotIncremented(t *testing.T) {
	env := newTestEnv(t)
	record := env.createPhoto(t, models.PhotoStatusApproved)

	w := env.do(t, http.MethodPost, "/api/v1/photos/like",
		strings.NewReader(likeBody(record.Identifier, "fp-1")), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/photos/like",
		strings.NewReader(likeBody(record.Identifier, "fp-1")), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON(t, w.Body.Bytes())
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, false, resp["incremented"])
	assert.Equal(t, float64(1), resp["like_count"])

	var stored models.Photo
	require.NoError(t, env.db.First(&stored, record.ID).Error)
	assert.Equal(t, int64(1), stored.LikeCount)
}
