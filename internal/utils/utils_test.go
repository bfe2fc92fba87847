package utils_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"plp-bookstore/internal/models"
	"plp-bookstore/internal/utils"
)

func TestJWT_RoundTrip(t *testing.T) {
	utils.InitJwtSecret("test-secret")

	token, err := utils.GenerateJWT("user-42")
	require.NoError(t, err)

	claims, err := utils.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestIssueToken_SessionIDs(t *testing.T) {
	utils.InitJwtSecret("test-secret")

	first, claims, err := utils.IssueToken("user-42")
	require.NoError(t, err)
	_, other, err := utils.IssueToken("user-42")
	require.NoError(t, err)

	assert.NotEmpty(t, claims.ID)
	assert.NotEqual(t, claims.ID, other.ID)

	parsed, err := utils.ParseJWT(first)
	require.NoError(t, err)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.Equal(t, "user-42", parsed.Subject)
}

func TestJWT_RejectsForeignSignature(t *testing.T) {
	utils.InitJwtSecret("one")
	token, err := utils.GenerateJWT("user-42")
	require.NoError(t, err)

	utils.InitJwtSecret("two")
	_, err = utils.ParseJWT(token)
	assert.Error(t, err)
}

func TestRunID(t *testing.T) {
	assert.Empty(t, utils.RunIDFromContext(context.Background()))

	ctx, id := utils.WithRunID(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, utils.RunIDFromContext(ctx))

	ctx = utils.ContextWithRunID(ctx, "session-1")
	assert.Equal(t, "session-1", utils.RunIDFromContext(ctx))
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	utils.JSONError(w, "Book not found", http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Book not found", body["error"])
}

func TestLogger_Log(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("inserts audit entry", func(mt *mtest.T) {
		logger := utils.Logger{Collection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		ctx, _ := utils.WithRunID(context.Background())
		err := logger.Log(ctx, "book", "UPDATE", "script", bson.M{"title": "Clean Code"})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "insert", evt.CommandName)
	})

	mt.Run("nil collection discards", func(mt *mtest.T) {
		logger := utils.Logger{}
		assert.NoError(mt, logger.Log(context.Background(), "book", "DELETE", "script", nil))
	})
}

func TestExportData(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	utils.ExportData(context.Background(), logger, []models.AuditLog{
		{Entity: "book", Action: "UPDATE", RunID: "run-1", PerformedBy: "script"},
		{Entity: "index", Action: "CREATE_INDEX", PerformedBy: "admin-1"},
	})

	out := buf.String()
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("msg=audit")))
	assert.Contains(t, out, "action=UPDATE")
	assert.Contains(t, out, "run_id=run-1")
	assert.Contains(t, out, "performed_by=admin-1")
}
