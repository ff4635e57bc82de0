package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/api/option"

	"github.com/hingaguru/farmdesk/internal/domain/models"
)

func TestTransactionRow(t *testing.T) {
	farm := primitive.NewObjectID()
	tx := models.Transaction{
		ID:         primitive.NewObjectID(),
		OwnerID:    primitive.NewObjectID(),
		Type:       models.TransactionExpense,
		Amount:     12000,
		Date:       time.Date(2025, 4, 2, 15, 0, 0, 0, time.UTC),
		Category:   "seeds",
		FarmlandID: &farm,
		Currency:   "RWF",
	}

	row := TransactionRow(tx)
	require.Len(t, row, 10)
	require.Equal(t, "2025-04-02", row[0])
	require.Equal(t, "expense", row[3])
	require.Equal(t, int64(12000), row[5])
	require.Equal(t, farm.Hex(), row[7])
	require.Equal(t, "", row[8])
}

func TestLedger_AppendTransactionPostsValues(t *testing.T) {
	var (
		path string
		body struct {
			Values [][]any `json:"values"`
		}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"spreadsheetId":"sheet-1"}`))
	}))
	defer srv.Close()

	ledger, err := newLedger(context.Background(), "sheet-1", nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	err = ledger.AppendTransaction(context.Background(), models.Transaction{
		ID:       primitive.NewObjectID(),
		OwnerID:  primitive.NewObjectID(),
		Type:     models.TransactionIncome,
		Amount:   5000,
		Date:     time.Now(),
		Category: "sales",
		Currency: "RWF",
		Note:     `=HYPERLINK("http://example.com","paid")`,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(path, "/v4/spreadsheets/sheet-1/values/"), path)
	require.True(t, strings.HasSuffix(path, ":append"), path)
	require.Len(t, body.Values, 1)
	require.Equal(t, "income", body.Values[0][3])
	// stored as text, never evaluated
	require.Equal(t, `=HYPERLINK("http://example.com","paid")`, body.Values[0][9])
}

func TestLedger_AppendSurfacesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"denied"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	ledger, err := newLedger(context.Background(), "sheet-1", nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	err = ledger.AppendSnapshot(context.Background(), models.SummarySnapshot{OwnerID: primitive.NewObjectID()})
	require.ErrorContains(t, err, SnapshotsRange)
}
