package suirpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcHandler func(method string, params []json.RawMessage) (result any, rpcErr *Error)

func newTestServer(t *testing.T, handler rpcHandler) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64            `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, rpcErr := handler(req.Method, req.Params)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL, Config{Timeout: 5 * time.Second})
	require.NoError(t, err)
	return client
}

func TestGetObject(t *testing.T) {
	client := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		assert.Equal(t, "sui_getObject", method)
		require.Len(t, params, 2)
		assert.JSONEq(t, `"0x6"`, string(params[0]))
		assert.JSONEq(t, `{"showContent":true}`, string(params[1]))
		return json.RawMessage(`{
			"data": {
				"objectId": "0x6",
				"version": "12",
				"digest": "11111111111111111111111111111111",
				"owner": {"Shared": {"initial_shared_version": 1}},
				"content": {"dataType": "moveObject", "type": "0x2::clock::Clock", "fields": {"timestamp_ms": "1"}}
			}
		}`), nil
	})

	obj, err := client.GetObject(context.Background(), "0x6", ObjectDataOptions{ShowContent: true})
	require.NoError(t, err)
	assert.Equal(t, sui.ClockObjectID, obj.ObjectID)
	assert.EqualValues(t, 12, obj.Version)
	assert.True(t, obj.Owner.IsShared())
	assert.EqualValues(t, 1, obj.Owner.Shared.InitialSharedVersion)
	assert.True(t, obj.Content.IsMoveObject())
	assert.JSONEq(t, `{"timestamp_ms": "1"}`, string(obj.Content.Fields))
}

func TestGetObjectNotFound(t *testing.T) {
	client := newTestServer(t, func(string, []json.RawMessage) (any, *Error) {
		return json.RawMessage(`{"error": {"code": "notExists", "object_id": "0x9"}}`), nil
	})
	_, err := client.GetObject(context.Background(), "0x9", ObjectDataOptions{})
	assert.ErrorIs(t, err, errs.NotFound)
}

func TestRPCError(t *testing.T) {
	client := newTestServer(t, func(string, []json.RawMessage) (any, *Error) {
		return nil, &Error{Code: -32602, Message: "invalid params"}
	})
	_, err := client.GetReferenceGasPrice(context.Background())
	require.Error(t, err)

	var rpcErr *Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32602, rpcErr.Code)
}

func TestOwnerVariants(t *testing.T) {
	var immutable ObjectOwner
	require.NoError(t, json.Unmarshal([]byte(`"Immutable"`), &immutable))
	assert.True(t, immutable.Immutable)
	assert.False(t, immutable.IsShared())

	var owned ObjectOwner
	require.NoError(t, json.Unmarshal([]byte(`{"AddressOwner": "0x2"}`), &owned))
	require.NotNil(t, owned.AddressOwner)
	assert.Equal(t, sui.MustParseAddress("0x2"), *owned.AddressOwner)
}

func TestExecuteTransactionBlock(t *testing.T) {
	client := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		assert.Equal(t, "sui_executeTransactionBlock", method)
		require.Len(t, params, 4)
		assert.JSONEq(t, `"AAA="`, string(params[0]))
		assert.JSONEq(t, `["sig"]`, string(params[1]))
		assert.JSONEq(t, `"WaitForLocalExecution"`, string(params[3]))
		return json.RawMessage(`{"digest": "D1", "effects": {"status": {"status": "success"}}}`), nil
	})

	resp, err := client.ExecuteTransactionBlock(context.Background(), "AAA=", []string{"sig"}, TransactionBlockResponseOptions{ShowEffects: true})
	require.NoError(t, err)
	assert.Equal(t, "D1", resp.Digest)
	assert.True(t, resp.Succeeded())
}

func TestGetCoinsAndBalance(t *testing.T) {
	client := newTestServer(t, func(method string, params []json.RawMessage) (any, *Error) {
		switch method {
		case "suix_getCoins":
			return json.RawMessage(`{
				"data": [{"coinType": "0x2::sui::SUI", "coinObjectId": "0xc1", "version": "3", "digest": "11111111111111111111111111111111", "balance": "1000"}],
				"nextCursor": null,
				"hasNextPage": false
			}`), nil
		case "suix_getBalance":
			assert.JSONEq(t, `"0x2::sui::SUI"`, string(params[1]))
			return json.RawMessage(`{"coinType": "0x2::sui::SUI", "coinObjectCount": 1, "totalBalance": "1000"}`), nil
		}
		return nil, &Error{Code: -32601, Message: "method not found"}
	})

	page, err := client.GetCoins(context.Background(), "0x2", SUICoinType, nil, nil)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.EqualValues(t, 1000, page.Data[0].Balance)
	assert.EqualValues(t, 3, page.Data[0].Ref().Version)

	balance, err := client.GetBalance(context.Background(), "0x2", SUICoinType)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, balance.TotalBalance)
}
