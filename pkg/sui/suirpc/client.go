// Package suirpc is a minimal Sui JSON-RPC client over fasthttp.
package suirpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/pkg/httpclient"
	"github.com/gaze-network/event-horizon/pkg/logger"
	"github.com/gaze-network/event-horizon/pkg/logger/slogx"
	"github.com/gaze-network/event-horizon/pkg/sui"
)

type Config struct {
	Timeout time.Duration
	Debug   bool
}

type Client struct {
	http   *httpclient.Client
	nextID atomic.Uint64
	debug  bool
}

func New(url string, config ...Config) (*Client, error) {
	var cf Config
	if len(config) > 0 {
		cf = config[0]
	}
	httpClient, err := httpclient.New(url, httpclient.Config{
		Debug:   cf.Debug,
		Timeout: cf.Timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &Client{http: httpClient, debug: cf.Debug}, nil
}

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// Error is a JSON-RPC error object returned by the fullnode.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("sui rpc error %d: %s", e.Code, e.Message)
}

// Call invokes a JSON-RPC method and decodes the result into out.
func (c *Client) Call(ctx context.Context, method string, out any, params ...any) error {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrapf(err, "can't marshal %s request", method)
	}

	start := time.Now()
	resp, err := c.http.Post(ctx, "", httpclient.RequestOptions{Body: body})
	if err != nil {
		return errors.Wrapf(err, "%s request failed", method)
	}
	if code := resp.StatusCode(); code >= 400 {
		return errors.Errorf("%s request failed with status %d: %s", method, code, string(resp.Body()))
	}

	var rpcResp response
	if err := resp.UnmarshalBody(&rpcResp); err != nil {
		return errors.Wrapf(err, "can't decode %s response", method)
	}
	if rpcResp.Error != nil {
		return errors.WithStack(rpcResp.Error)
	}

	if c.debug {
		logger.DebugContext(ctx, "Sui JSON-RPC call completed",
			slogx.String("package", "suirpc"),
			slogx.String("method", method),
			slog.Duration("latency", time.Since(start)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return errors.Wrapf(err, "can't unmarshal %s result", method)
	}
	return nil
}

// GetObject returns an object. A deleted or missing object is errs.NotFound.
func (c *Client) GetObject(ctx context.Context, id string, opts ObjectDataOptions) (*ObjectData, error) {
	var resp ObjectResponse
	if err := c.Call(ctx, "sui_getObject", &resp, id, opts); err != nil {
		return nil, errors.WithStack(err)
	}
	data, err := resp.Object()
	if err != nil {
		return nil, errors.Wrapf(err, "object %s", id)
	}
	return data, nil
}

func (c *Client) MultiGetObjects(ctx context.Context, ids []string, opts ObjectDataOptions) ([]ObjectResponse, error) {
	var resp []ObjectResponse
	if err := c.Call(ctx, "sui_multiGetObjects", &resp, ids, opts); err != nil {
		return nil, errors.WithStack(err)
	}
	return resp, nil
}

// GetOwnedObjects returns one page of objects owned by an address.
func (c *Client) GetOwnedObjects(ctx context.Context, owner string, query ObjectResponseQuery, cursor *string, limit *uint) (*ObjectsPage, error) {
	var page ObjectsPage
	if err := c.Call(ctx, "suix_getOwnedObjects", &page, owner, query, cursor, limit); err != nil {
		return nil, errors.WithStack(err)
	}
	return &page, nil
}

// GetCoins returns one page of coins of coinType owned by an address.
// An empty coinType means SUI.
func (c *Client) GetCoins(ctx context.Context, owner string, coinType string, cursor *string, limit *uint) (*CoinPage, error) {
	var coinTypeParam *string
	if coinType != "" {
		coinTypeParam = &coinType
	}
	var page CoinPage
	if err := c.Call(ctx, "suix_getCoins", &page, owner, coinTypeParam, cursor, limit); err != nil {
		return nil, errors.WithStack(err)
	}
	return &page, nil
}

func (c *Client) GetBalance(ctx context.Context, owner string, coinType string) (*Balance, error) {
	var coinTypeParam *string
	if coinType != "" {
		coinTypeParam = &coinType
	}
	var balance Balance
	if err := c.Call(ctx, "suix_getBalance", &balance, owner, coinTypeParam); err != nil {
		return nil, errors.WithStack(err)
	}
	return &balance, nil
}

func (c *Client) GetReferenceGasPrice(ctx context.Context) (uint64, error) {
	var price sui.Uint64
	if err := c.Call(ctx, "suix_getReferenceGasPrice", &price); err != nil {
		return 0, errors.WithStack(err)
	}
	return uint64(price), nil
}

// ExecuteTransactionBlock submits signed transaction bytes (both base64) and
// waits for local execution.
func (c *Client) ExecuteTransactionBlock(ctx context.Context, txBytes string, signatures []string, opts TransactionBlockResponseOptions) (*TransactionBlockResponse, error) {
	var resp TransactionBlockResponse
	if err := c.Call(ctx, "sui_executeTransactionBlock", &resp, txBytes, signatures, opts, RequestTypeWaitForLocalExecution); err != nil {
		return nil, errors.WithStack(err)
	}
	if resp.Digest == "" {
		return nil, errors.Wrap(errs.SomethingWentWrong, "transaction response without digest")
	}
	return &resp, nil
}
