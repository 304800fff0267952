package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testKey          = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"
	decimalsSelector = "0x313ce567"
	balanceSelector  = "0x70a08231"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newRPCServer answers eth_call for decimals() and balanceOf(address).
func newRPCServer(t *testing.T, decimals int64, balance *big.Int) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode rpc request: %v", err)
			return
		}

		resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
		switch req.Method {
		case "eth_chainId":
			resp["result"] = "0x539"
		case "eth_call":
			var call map[string]interface{}
			_ = json.Unmarshal(req.Params[0], &call)
			data, _ := call["input"].(string)
			if data == "" {
				data, _ = call["data"].(string)
			}
			switch {
			case strings.HasPrefix(data, decimalsSelector):
				resp["result"] = fmt.Sprintf("0x%064x", decimals)
			case strings.HasPrefix(data, balanceSelector):
				resp["result"] = fmt.Sprintf("0x%064x", balance)
			default:
				resp["error"] = map[string]interface{}{"code": -32000, "message": "execution reverted"}
			}
		default:
			resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGateway(t *testing.T, rpcURL string) *EthGateway {
	g, err := NewEthGateway(context.Background(), Config{
		RPCURL:             rpcURL,
		ChainID:            1337,
		PrivateKey:         "0x" + testKey,
		TokenAddress:       "0x1111111111111111111111111111111111111111",
		DistributorAddress: "0x2222222222222222222222222222222222222222",
		MarketplaceAddress: "0x3333333333333333333333333333333333333333",
		Timeout:            5 * time.Second,
	}, http.DefaultClient, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

func TestEthGatewayGetBalance(t *testing.T) {
	srv := newRPCServer(t, 6, big.NewInt(2500000))
	g := newTestGateway(t, srv.URL)

	assert.Equal(t, uint8(6), g.Decimals())

	bal, err := g.GetBalance(context.Background(), "0xabcdef0123456789abcdef0123456789abcdef01")
	require.NoError(t, err)
	assert.Equal(t, "2500000", bal.Raw)
	assert.Equal(t, "2.5", bal.Formatted)
}

func TestEthGatewayRejectsBadInput(t *testing.T) {
	srv := newRPCServer(t, 18, big.NewInt(0))
	g := newTestGateway(t, srv.URL)
	ctx := context.Background()

	_, err := g.GetBalance(ctx, "not-an-address")
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = g.Mint(ctx, "0xabcdef0123456789abcdef0123456789abcdef01", 0, "VOLUNTEERING", "x")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = g.Redeem(ctx, "0xabcdef0123456789abcdef0123456789abcdef01", "r1", 10, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestNewEthGatewayValidatesConfig(t *testing.T) {
	_, err := NewEthGateway(context.Background(), Config{
		RPCURL:       "http://127.0.0.1:1",
		PrivateKey:   testKey,
		TokenAddress: "nope",
	}, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
