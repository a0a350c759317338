package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// putTransaction fires one authenticated transaction request and
// returns the status code plus decoded envelope.
func (a *testApp) putTransaction(t *testing.T, walletID, body string) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPut, a.server.URL+"/api/v1/wallets/"+walletID, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

// TestConcurrent_SameTransactionID verifies that racing first attempts
// with one transaction id commit exactly once. Losers get either a
// conflict (retry-required) or the replayed committed outcome; the
// wallet is never double-credited.
func TestConcurrent_SameTransactionID(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	walletID := app.registerPlayer(t, "racer")
	txID := uuid.New()
	body := txBody(txID, "DEPOSIT", "100.00")

	concurrency := 32
	var wg sync.WaitGroup
	var fresh, replayed, conflicts atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, envelope := app.putTransaction(t, walletID, body)
			switch status {
			case http.StatusCreated:
				fresh.Add(1)
			case http.StatusOK:
				if envelope["data"].(map[string]interface{})["repeated"] == true {
					replayed.Add(1)
				}
			case http.StatusPreconditionFailed:
				conflicts.Add(1)
			default:
				t.Errorf("unexpected status %d: %v", status, envelope)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), fresh.Load(), "exactly one attempt must commit")
	assert.Equal(t, int64(concurrency-1), replayed.Load()+conflicts.Load())

	// A subsequent replay of the id returns the single committed outcome.
	status, envelope := app.putTransaction(t, walletID, body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, envelope["data"].(map[string]interface{})["repeated"])

	// Balance reflects exactly one deposit.
	status, envelope = app.do(t, http.MethodGet, "/api/v1/wallets/"+walletID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "100", envelope["data"].(map[string]interface{})["balance"])
}

// TestConcurrent_DistinctIDsWithRetry verifies no update is lost when
// concurrent writers with distinct transaction ids target one wallet:
// each caller retries on conflict and the final balance is the sum of
// all deposits.
func TestConcurrent_DistinctIDsWithRetry(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	walletID := app.registerPlayer(t, "summer")

	concurrency := 16
	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			body := txBody(uuid.New(), "DEPOSIT", "10.00")
			for attempt := 0; attempt < 50; attempt++ {
				status, _ := app.putTransaction(t, walletID, body)
				if status == http.StatusCreated || status == http.StatusOK {
					return
				}
				if status != http.StatusPreconditionFailed {
					t.Errorf("unexpected status %d", status)
					return
				}
			}
			t.Errorf("deposit %d never committed", idx)
		}(i)
	}
	wg.Wait()

	status, envelope := app.do(t, http.MethodGet, "/api/v1/wallets/"+walletID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "160", envelope["data"].(map[string]interface{})["balance"])
}

// TestConcurrent_IndependentWallets verifies transactions on different
// wallets never interfere: every first attempt commits without
// conflicts.
func TestConcurrent_IndependentWallets(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	concurrency := 8
	walletIDs := make([]string, concurrency)
	for i := range walletIDs {
		walletIDs[i] = app.registerPlayer(t, fmt.Sprintf("player-%d", i))
	}

	var wg sync.WaitGroup
	var committed atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			status, _ := app.putTransaction(t, walletIDs[idx], txBody(uuid.New(), "DEPOSIT", "42.00"))
			if status == http.StatusCreated {
				committed.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(concurrency), committed.Load(), "independent wallets must not conflict")

	for _, walletID := range walletIDs {
		status, envelope := app.do(t, http.MethodGet, "/api/v1/wallets/"+walletID, "")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "42", envelope["data"].(map[string]interface{})["balance"])
	}
}
