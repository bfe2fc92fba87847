package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"plp-bookstore/internal/models"
)

func TestReportsHandler(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	if mt.Client != nil {
		defer mt.Client.Disconnect(context.Background())
	}

	mt.Run("average price by genre", func(mt *mtest.T) {
		router := newTestRouter(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Fiction"}, {Key: "avgPrice", Value: 20.0}},
		))

		req := httptest.NewRequest(http.MethodGet, "/reports/genres/avg-price", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		var got []models.GenreAvgPrice
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			mt.Fatalf("decode: %v", err)
		}
		if len(got) != 1 || got[0].Genre != "Fiction" || got[0].AvgPrice == nil || *got[0].AvgPrice != 20 {
			mt.Errorf("unexpected report %+v", got)
		}
	})

	mt.Run("null average is rendered as null", func(mt *mtest.T) {
		router := newTestRouter(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Poetry"}, {Key: "avgPrice", Value: nil}},
		))

		req := httptest.NewRequest(http.MethodGet, "/reports/genres/avg-price", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if body := strings.TrimSpace(w.Body.String()); body != `[{"genre":"Poetry","avgPrice":null}]` {
			mt.Errorf("unexpected body %s", body)
		}
	})

	mt.Run("top author of empty collection", func(mt *mtest.T) {
		router := newTestRouter(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		req := httptest.NewRequest(http.MethodGet, "/reports/authors/top", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			mt.Errorf("expected status NotFound, got %v", w.Code)
		}
	})

	mt.Run("decades", func(mt *mtest.T) {
		router := newTestRouter(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "1980s"}, {Key: "count", Value: int32(1)}},
			bson.D{{Key: "_id", Value: "1990s"}, {Key: "count", Value: int32(1)}},
		))

		req := httptest.NewRequest(http.MethodGet, "/reports/decades", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		var got []models.DecadeCount
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			mt.Fatalf("decode: %v", err)
		}
		if len(got) != 2 || got[0].Decade != "1980s" || got[1].Decade != "1990s" {
			mt.Errorf("unexpected report %+v", got)
		}
	})
}
