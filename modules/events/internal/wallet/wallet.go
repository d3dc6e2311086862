// Package wallet holds the connected wallet of the service: its address and,
// when a private key is configured, the signer used to submit transactions.
package wallet

import (
	"context"
	"encoding/base64"
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/modules/events/internal/dispatcher"
	"github.com/gaze-network/event-horizon/pkg/logger"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/gaze-network/event-horizon/pkg/sui/ptb"
	"github.com/gaze-network/event-horizon/pkg/sui/suirpc"
	"golang.org/x/sync/errgroup"
)

// maxGasCoins is the maximum number of gas payment objects of a transaction.
const maxGasCoins = 255

// RPC is the subset of the Sui JSON-RPC used to submit transactions.
type RPC interface {
	MultiGetObjects(ctx context.Context, ids []string, opts suirpc.ObjectDataOptions) ([]suirpc.ObjectResponse, error)
	GetCoins(ctx context.Context, owner string, coinType string, cursor *string, limit *uint) (*suirpc.CoinPage, error)
	GetReferenceGasPrice(ctx context.Context) (uint64, error)
	ExecuteTransactionBlock(ctx context.Context, txBytes string, signatures []string, opts suirpc.TransactionBlockResponseOptions) (*suirpc.TransactionBlockResponse, error)
}

type Config struct {
	// PrivateKey is a bech32 `suiprivkey1...` key. Empty means read-only.
	PrivateKey string

	// Address of a read-only session. Must match the key when both are set.
	Address string

	// GasBudget in MIST of every transaction.
	GasBudget uint64
}

var _ dispatcher.Submitter = (*Session)(nil)

// Session is the connected wallet. A session without address is
// disconnected: it has no tickets and can't sign.
type Session struct {
	rpc       RPC
	gasBudget uint64

	mu      sync.RWMutex
	address *sui.Address
	keypair *sui.Keypair
}

// Connect creates a session from config.
func Connect(config Config, rpc RPC) (*Session, error) {
	s := &Session{rpc: rpc, gasBudget: config.GasBudget}

	if config.PrivateKey != "" {
		keypair, err := sui.ParseSecretKey(config.PrivateKey)
		if err != nil {
			return nil, errors.Wrap(err, "invalid wallet private key")
		}
		address := keypair.Address()
		if config.Address != "" && !sui.EqualAddress(config.Address, address.String()) {
			keypair.Zero()
			return nil, errors.Wrapf(errs.InvalidArgument, "wallet address %s doesn't match private key address %s", config.Address, address)
		}
		s.keypair = keypair
		s.address = &address
		return s, nil
	}

	if config.Address != "" {
		address, err := sui.ParseAddress(config.Address)
		if err != nil {
			return nil, errors.Wrap(err, "invalid wallet address")
		}
		s.address = &address
	}
	return s, nil
}

// Address returns the connected address, if any.
func (s *Session) Address() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.address == nil {
		return "", false
	}
	return s.address.String(), true
}

// CanSign reports whether the session holds a signing key.
func (s *Session) CanSign() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keypair != nil
}

// Shutdown disconnects the session and wipes the key.
func (s *Session) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keypair != nil {
		s.keypair.Zero()
		s.keypair = nil
	}
	s.address = nil
	return nil
}

// Execute resolves the transaction inputs, pays gas from the wallet's SUI
// coins, signs and submits the transaction and waits for local execution.
func (s *Session) Execute(ctx context.Context, tx *ptb.Builder) (dispatcher.TxResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.keypair == nil || s.address == nil {
		return dispatcher.TxResult{}, errors.Wrap(errs.Unauthorized, "wallet session can't sign transactions")
	}
	sender := *s.address

	var (
		gasPrice   uint64
		gasPayment []sui.ObjectRef
		gasNeeded  = s.gasBudget + tx.GasSpend()
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return errors.WithStack(s.resolveObjects(gctx, tx))
	})
	group.Go(func() (err error) {
		gasPrice, err = s.rpc.GetReferenceGasPrice(gctx)
		return errors.Wrap(err, "can't get reference gas price")
	})
	group.Go(func() (err error) {
		gasPayment, err = s.selectGasCoins(gctx, sender, gasNeeded)
		return errors.WithStack(err)
	})
	if err := group.Wait(); err != nil {
		return dispatcher.TxResult{}, errors.WithStack(err)
	}

	txBytes, err := tx.Build(sender, ptb.GasData{
		Payment: gasPayment,
		Owner:   sender,
		Price:   gasPrice,
		Budget:  s.gasBudget,
	})
	if err != nil {
		return dispatcher.TxResult{}, errors.Wrap(err, "can't build transaction")
	}

	signature := s.keypair.SignTransaction(txBytes)
	resp, err := s.rpc.ExecuteTransactionBlock(ctx,
		base64.StdEncoding.EncodeToString(txBytes),
		[]string{signature},
		suirpc.TransactionBlockResponseOptions{ShowEffects: true},
	)
	if err != nil {
		return dispatcher.TxResult{}, errors.Wrap(err, "can't execute transaction")
	}
	if !resp.Succeeded() {
		var reason string
		if resp.Effects != nil {
			reason = resp.Effects.Status.Error
		}
		return dispatcher.TxResult{}, errors.Wrapf(errs.SomethingWentWrong, "transaction %s failed: %s", resp.Digest, reason)
	}

	logger.DebugContext(ctx, "Transaction executed",
		slog.String("digest", resp.Digest),
		slog.String("sender", sender.String()),
	)
	return dispatcher.TxResult{Digest: resp.Digest}, nil
}

// resolveObjects pins owned objects at their latest version and shared
// objects at their initial shared version.
func (s *Session) resolveObjects(ctx context.Context, tx *ptb.Builder) error {
	requests := tx.UnresolvedObjects()
	if len(requests) == 0 {
		return nil
	}
	ids := make([]string, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ID.String())
	}

	responses, err := s.rpc.MultiGetObjects(ctx, ids, suirpc.ObjectDataOptions{ShowOwner: true})
	if err != nil {
		return errors.Wrap(err, "can't get transaction input objects")
	}
	if len(responses) != len(requests) {
		return errors.Wrapf(errs.SomethingWentWrong, "expected %d objects, got %d", len(requests), len(responses))
	}

	for i, resp := range responses {
		id := requests[i].ID
		data, err := resp.Object()
		if err != nil {
			return errors.Wrapf(err, "input object %s", id)
		}
		arg := ptb.ImmOrOwnedObject(data.Ref())
		if data.Owner.IsShared() {
			arg = ptb.SharedObject(id, data.Owner.Shared.InitialSharedVersion.Uint64(), requests[i].Mutable)
		}
		if err := tx.ResolveObject(id, arg); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

// selectGasCoins picks SUI coins until their balance covers amount.
func (s *Session) selectGasCoins(ctx context.Context, owner sui.Address, amount uint64) ([]sui.ObjectRef, error) {
	var (
		coins  []sui.ObjectRef
		total  uint64
		cursor *string
	)
	for {
		page, err := s.rpc.GetCoins(ctx, owner.String(), suirpc.SUICoinType, cursor, nil)
		if err != nil {
			return nil, errors.Wrap(err, "can't get gas coins")
		}
		for _, coin := range page.Data {
			coins = append(coins, coin.Ref())
			total += coin.Balance.Uint64()
			if total >= amount {
				return coins, nil
			}
			if len(coins) >= maxGasCoins {
				return nil, errors.Wrapf(errs.InsufficientFunds, "gas needs more than %d coins", maxGasCoins)
			}
		}
		if !page.HasNextPage || page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}
	return nil, errors.Wrapf(errs.InsufficientFunds, "balance %d MIST doesn't cover %d MIST", total, amount)
}
