package public_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/nprav/blockchain/app/services/node/handlers"
	"github.com/nprav/blockchain/foundation/blockchain/ledger"
	"github.com/nprav/blockchain/foundation/blockchain/peer"
	"github.com/nprav/blockchain/foundation/blockchain/pow"
	"github.com/nprav/blockchain/foundation/blockchain/state"
	"github.com/nprav/blockchain/foundation/events"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// publicTests holds the mux for the public API tests.
type publicTests struct {
	app http.Handler
}

func newPublicTests() publicTests {
	st := state.New(state.Config{
		MinerAddress: "miner-under-test",
		Host:         "0.0.0.0:9080",
		Verifier: pow.NewVerifier("mod-seven", func(lastProof uint64, proof uint64) bool {
			return proof != 0 && proof%7 == 0
		}),
		KnownPeers: peer.NewSet(),
	})

	return publicTests{
		app: handlers.PublicMux(handlers.MuxConfig{
			Shutdown: make(chan os.Signal, 1),
			Log:      zap.NewNop().Sugar(),
			State:    st,
			Evts:     events.New(),
		}),
	}
}

func Test_Public(t *testing.T) {
	pt := newPublicTests()

	t.Run("submitTransaction201", pt.submitTransaction201)
	t.Run("submitTransaction400", pt.submitTransaction400)
	t.Run("mineAndChain200", pt.mineAndChain200)
	t.Run("resolve200", pt.resolve200)
}

// submitTransaction201 submits a well formed transaction.
func (pt publicTests) submitTransaction201(t *testing.T) {
	body := `{"sender":"ana","recipient":"bob","amount":3.5}`

	r := httptest.NewRequest(http.MethodPost, "/v1/tx/add", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	pt.app.ServeHTTP(w, r)

	t.Log("Given the need to submit a transaction over the public API.")
	{
		t.Logf("\tTest 0:\tWhen posting a well formed transaction.")
		{
			if w.Code != http.StatusCreated {
				t.Fatalf("\t%s\tTest 0:\tShould receive a status code of 201, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a status code of 201.", success)

			var got struct {
				Message string `json:"message"`
				Block   uint64 `json:"block"`
			}
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to decode the response: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to decode the response.", success)

			if got.Block != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould report next block index 1, got %d.", failed, got.Block)
			}
			t.Logf("\t%s\tTest 0:\tShould report next block index 1.", success)
		}
	}
}

// submitTransaction400 covers missing fields and bad amounts.
func (pt publicTests) submitTransaction400(t *testing.T) {
	t.Log("Given the need to reject malformed transactions.")
	{
		t.Logf("\tTest 0:\tWhen posting a transaction with missing fields.")
		{
			body := `{"sender":"ana"}`

			r := httptest.NewRequest(http.MethodPost, "/v1/tx/add", bytes.NewBufferString(body))
			w := httptest.NewRecorder()
			pt.app.ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 0:\tShould receive a status code of 400, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a status code of 400.", success)

			var got struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to decode the response: %v", failed, err)
			}
			if len(got.Fields) == 0 {
				t.Fatalf("\t%s\tTest 0:\tShould report the offending fields.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould report the offending fields.", success)
		}

		t.Logf("\tTest 1:\tWhen posting a transaction with a non numeric amount.")
		{
			body := `{"sender":"ana","recipient":"bob","amount":"lots"}`

			r := httptest.NewRequest(http.MethodPost, "/v1/tx/add", bytes.NewBufferString(body))
			w := httptest.NewRecorder()
			pt.app.ServeHTTP(w, r)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest 1:\tShould receive a status code of 400, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 1:\tShould receive a status code of 400.", success)
		}
	}
}

// mineAndChain200 mines a block and reads the chain back.
func (pt publicTests) mineAndChain200(t *testing.T) {
	t.Log("Given the need to mine and read the chain over the public API.")
	{
		t.Logf("\tTest 0:\tWhen requesting a mine followed by the chain.")
		{
			r := httptest.NewRequest(http.MethodGet, "/v1/mine", nil)
			w := httptest.NewRecorder()
			pt.app.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould receive a status code of 200 for mine, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a status code of 200 for mine.", success)

			r = httptest.NewRequest(http.MethodGet, "/v1/chain/list", nil)
			w = httptest.NewRecorder()
			pt.app.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould receive a status code of 200 for the chain, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a status code of 200 for the chain.", success)

			var got struct {
				Chain  []ledger.Block `json:"chain"`
				Length int            `json:"length"`
			}
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to decode the response: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to decode the response.", success)

			if got.Length < 2 || len(got.Chain) != got.Length {
				t.Fatalf("\t%s\tTest 0:\tShould report a chain grown past genesis, got length %d.", failed, got.Length)
			}
			t.Logf("\t%s\tTest 0:\tShould report a chain grown past genesis.", success)
		}
	}
}

// resolve200 runs conflict resolution with no known peers.
func (pt publicTests) resolve200(t *testing.T) {
	t.Log("Given the need to run conflict resolution over the public API.")
	{
		t.Logf("\tTest 0:\tWhen no peers are known.")
		{
			r := httptest.NewRequest(http.MethodGet, "/v1/resolve", nil)
			w := httptest.NewRecorder()
			pt.app.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest 0:\tShould receive a status code of 200, got %d.", failed, w.Code)
			}
			t.Logf("\t%s\tTest 0:\tShould receive a status code of 200.", success)

			var got struct {
				Message  string `json:"message"`
				Replaced bool   `json:"replaced"`
			}
			if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to decode the response: %v", failed, err)
			}
			if got.Replaced {
				t.Fatalf("\t%s\tTest 0:\tShould keep the local chain authoritative.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould keep the local chain authoritative.", success)
		}
	}
}
