package wallet

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"testing"

	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/gaze-network/event-horizon/pkg/sui/ptb"
	"github.com/gaze-network/event-horizon/pkg/sui/suirpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	platformID = sui.MustParseAddress("0xa1")
	ticketID   = sui.MustParseAddress("0x71c")
	target     = ptb.Target{Package: sui.MustParseAddress("0x1"), Module: "event_mgnt_sc", Function: "buy_ticket"}
)

type fakeRPC struct {
	objects    map[sui.ObjectID]suirpc.ObjectResponse
	coinPages  []suirpc.CoinPage
	gasPrice   uint64
	failStatus string

	executedTx  []byte
	executedSig string
}

func (f *fakeRPC) MultiGetObjects(_ context.Context, ids []string, _ suirpc.ObjectDataOptions) ([]suirpc.ObjectResponse, error) {
	out := make([]suirpc.ObjectResponse, 0, len(ids))
	for _, id := range ids {
		resp, ok := f.objects[sui.MustParseAddress(id)]
		if !ok {
			resp = suirpc.ObjectResponse{Error: &suirpc.ObjectResponseError{Code: "notExists", ObjectID: id}}
		}
		out = append(out, resp)
	}
	return out, nil
}

func (f *fakeRPC) GetCoins(_ context.Context, _ string, _ string, cursor *string, _ *uint) (*suirpc.CoinPage, error) {
	idx := 0
	if cursor != nil {
		idx = int((*cursor)[0] - '0')
	}
	page := f.coinPages[idx]
	return &page, nil
}

func (f *fakeRPC) GetReferenceGasPrice(context.Context) (uint64, error) {
	return f.gasPrice, nil
}

func (f *fakeRPC) ExecuteTransactionBlock(_ context.Context, txBytes string, signatures []string, _ suirpc.TransactionBlockResponseOptions) (*suirpc.TransactionBlockResponse, error) {
	raw, err := base64.StdEncoding.DecodeString(txBytes)
	if err != nil {
		return nil, err
	}
	f.executedTx = raw
	f.executedSig = signatures[0]

	status := suirpc.ExecutionStatusSuccess
	var reason string
	if f.failStatus != "" {
		status, reason = "failure", f.failStatus
	}
	return &suirpc.TransactionBlockResponse{
		Digest:  "9xDigest",
		Effects: &suirpc.TransactionBlockEffects{Status: suirpc.ExecutionStatus{Status: status, Error: reason}},
	}, nil
}

func coin(id string, balance uint64) suirpc.Coin {
	return suirpc.Coin{
		CoinType:     suirpc.SUICoinType,
		CoinObjectID: sui.MustParseAddress(id),
		Version:      1,
		Balance:      sui.Uint64(balance),
	}
}

func newFakeRPC() *fakeRPC {
	next := "1"
	return &fakeRPC{
		objects: map[sui.ObjectID]suirpc.ObjectResponse{
			platformID: {Data: &suirpc.ObjectData{
				ObjectID: platformID,
				Version:  40,
				Owner:    &suirpc.ObjectOwner{Shared: &suirpc.SharedOwner{InitialSharedVersion: 3}},
			}},
			ticketID: {Data: &suirpc.ObjectData{
				ObjectID: ticketID,
				Version:  12,
				Owner:    &suirpc.ObjectOwner{AddressOwner: &sui.Address{}},
			}},
		},
		coinPages: []suirpc.CoinPage{
			{Data: []suirpc.Coin{coin("0xc01", 600)}, NextCursor: &next, HasNextPage: true},
			{Data: []suirpc.Coin{coin("0xc02", 600), coin("0xc03", 600)}},
		},
		gasPrice: 750,
	}
}

func newTestKeypair(t *testing.T) *sui.Keypair {
	t.Helper()
	keypair, err := sui.NewKeypairFromSeed(bytes.Repeat([]byte{0x11}, ed25519.SeedSize))
	require.NoError(t, err)
	return keypair
}

func connectSigner(t *testing.T, rpc RPC, budget uint64) (*Session, sui.Address) {
	t.Helper()
	keypair := newTestKeypair(t)
	secret, err := keypair.SecretKey()
	require.NoError(t, err)
	session, err := Connect(Config{PrivateKey: secret, GasBudget: budget}, rpc)
	require.NoError(t, err)
	return session, keypair.Address()
}

func TestConnect(t *testing.T) {
	t.Run("disconnected", func(t *testing.T) {
		session, err := Connect(Config{}, newFakeRPC())
		require.NoError(t, err)
		_, ok := session.Address()
		assert.False(t, ok)
		assert.False(t, session.CanSign())
	})
	t.Run("read_only", func(t *testing.T) {
		session, err := Connect(Config{Address: "0xabc"}, newFakeRPC())
		require.NoError(t, err)
		address, ok := session.Address()
		assert.True(t, ok)
		assert.Equal(t, sui.MustParseAddress("0xabc").String(), address)
		assert.False(t, session.CanSign())

		_, err = session.Execute(context.Background(), ptb.NewBuilder())
		assert.ErrorIs(t, err, errs.Unauthorized)
	})
	t.Run("signer", func(t *testing.T) {
		session, expected := connectSigner(t, newFakeRPC(), 1000)
		address, ok := session.Address()
		assert.True(t, ok)
		assert.Equal(t, expected.String(), address)
		assert.True(t, session.CanSign())
	})
	t.Run("address_mismatch", func(t *testing.T) {
		secret, err := newTestKeypair(t).SecretKey()
		require.NoError(t, err)
		_, err = Connect(Config{PrivateKey: secret, Address: "0xabc"}, newFakeRPC())
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("invalid_key", func(t *testing.T) {
		_, err := Connect(Config{PrivateKey: "suiprivkey1invalid"}, newFakeRPC())
		assert.Error(t, err)
	})
}

func TestShutdown(t *testing.T) {
	session, _ := connectSigner(t, newFakeRPC(), 1000)
	require.NoError(t, session.Shutdown())
	assert.False(t, session.CanSign())
	_, ok := session.Address()
	assert.False(t, ok)
}

func TestExecute(t *testing.T) {
	rpc := newFakeRPC()
	session, sender := connectSigner(t, rpc, 1000)

	tx := ptb.NewBuilder()
	payment := tx.SplitGas(500)
	tx.MoveCall(target, tx.Object(platformID, true), tx.Object(ticketID, true), payment)

	result, err := session.Execute(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, "9xDigest", result.Digest)
	assert.Empty(t, tx.UnresolvedObjects())

	// budget 1000 plus 500 split from gas needs the first three coins.
	expected, err := tx.Build(sender, ptb.GasData{
		Payment: []sui.ObjectRef{coin("0xc01", 0).Ref(), coin("0xc02", 0).Ref(), coin("0xc03", 0).Ref()},
		Price:   750,
		Budget:  1000,
	})
	require.NoError(t, err)
	assert.Equal(t, expected, rpc.executedTx)

	sig, err := base64.StdEncoding.DecodeString(rpc.executedSig)
	require.NoError(t, err)
	require.Len(t, sig, 1+ed25519.SignatureSize+ed25519.PublicKeySize)
	assert.Equal(t, byte(0x00), sig[0])
	digest := sui.TransactionDigest(rpc.executedTx)
	pub := ed25519.PublicKey(sig[1+ed25519.SignatureSize:])
	assert.True(t, ed25519.Verify(pub, digest[:], sig[1:1+ed25519.SignatureSize]))
}

func TestExecuteErrors(t *testing.T) {
	newTx := func() *ptb.Builder {
		tx := ptb.NewBuilder()
		tx.MoveCall(target, tx.Object(platformID, true))
		return tx
	}

	t.Run("insufficient_gas", func(t *testing.T) {
		session, _ := connectSigner(t, newFakeRPC(), 5000)
		_, err := session.Execute(context.Background(), newTx())
		assert.ErrorIs(t, err, errs.InsufficientFunds)
	})
	t.Run("missing_object", func(t *testing.T) {
		rpc := newFakeRPC()
		delete(rpc.objects, platformID)
		session, _ := connectSigner(t, rpc, 1000)
		_, err := session.Execute(context.Background(), newTx())
		assert.ErrorIs(t, err, errs.NotFound)
	})
	t.Run("execution_failure", func(t *testing.T) {
		rpc := newFakeRPC()
		rpc.failStatus = "MoveAbort(ESoldOut)"
		session, _ := connectSigner(t, rpc, 1000)
		_, err := session.Execute(context.Background(), newTx())
		assert.ErrorIs(t, err, errs.SomethingWentWrong)
		assert.ErrorContains(t, err, "MoveAbort(ESoldOut)")
	})
}
