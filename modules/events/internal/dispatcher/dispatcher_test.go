package dispatcher

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/gaze-network/event-horizon/pkg/sui/bcs"
	"github.com/gaze-network/event-horizon/pkg/sui/ptb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPackageID  = "0xeeea3e14b44ebc4db154f243ecfc6cbdbee8390b4c01a6b8cf893a4d5514a65c"
	testPlatformID = "0xa1"
	testEventID    = "0xe1"
	testTicketID   = "0x71c"
	testCapID      = "0xc1"
)

type recordingSubmitter struct {
	txs []*ptb.Builder
	err error
}

func (s *recordingSubmitter) Execute(_ context.Context, tx *ptb.Builder) (TxResult, error) {
	s.txs = append(s.txs, tx)
	if s.err != nil {
		return TxResult{}, s.err
	}
	return TxResult{Digest: "digest"}, nil
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *recordingSubmitter) {
	t.Helper()
	submitter := &recordingSubmitter{}
	d, err := New(testPackageID, testPlatformID, submitter)
	require.NoError(t, err)
	return d, submitter
}

// singleCall returns the only Move call of tx and checks its target.
func singleCall(t *testing.T, tx *ptb.Builder, function string) ptb.MoveCall {
	t.Helper()
	calls := tx.MoveCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, sui.MustParseAddress(testPackageID), calls[0].Target.Package)
	assert.Equal(t, MoveModule, calls[0].Target.Module)
	assert.Equal(t, function, calls[0].Target.Function)
	return calls[0]
}

func assertObject(t *testing.T, tx *ptb.Builder, arg ptb.Argument, id string, mutable bool) {
	t.Helper()
	obj, ok := tx.ObjectValue(arg)
	require.True(t, ok, "argument must be an object input")
	assert.Equal(t, sui.MustParseAddress(id), obj.ID)
	assert.Equal(t, mutable, obj.Mutable)
}

func assertPure(t *testing.T, tx *ptb.Builder, arg ptb.Argument, expected []byte) {
	t.Helper()
	value, ok := tx.PureValue(arg)
	require.True(t, ok, "argument must be a pure input")
	assert.Equal(t, expected, value)
}

func addressBytes(s string) []byte {
	addr := sui.MustParseAddress(s)
	return addr[:]
}

func TestInitializePlatform(t *testing.T) {
	d, submitter := newTestDispatcher(t)
	result, err := d.InitializePlatform(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "digest", result.Digest)

	require.Len(t, submitter.txs, 1)
	call := singleCall(t, submitter.txs[0], FuncInitializePlatform)
	assert.Empty(t, call.Arguments)
}

func TestCreateEvent(t *testing.T) {
	d, _ := newTestDispatcher(t)
	tx, err := d.BuildCreateEvent(CreateEventParams{
		Name:        "Sui Builders",
		Description: "Meetup",
		Timestamp:   1717000000000,
		Location:    "Bangkok",
		IsPaid:      true,
		ImageURL:    "img",
		TicketTypes: []TicketTypeParams{
			{Name: "GA", Description: "General", Price: 1_000_000_000, MaxSupply: 100, ImageURL: "ga"},
			{Name: "VIP", Description: "Front row", Price: 5_000_000_000, MaxSupply: 10, ImageURL: "vip"},
		},
	})
	require.NoError(t, err)

	call := singleCall(t, tx, FuncCreateEvent)
	require.Len(t, call.Arguments, 12)
	assertObject(t, tx, call.Arguments[0], testPlatformID, true)
	assertPure(t, tx, call.Arguments[1], bcs.String("Sui Builders"))
	assertPure(t, tx, call.Arguments[2], bcs.String("Meetup"))
	assertPure(t, tx, call.Arguments[3], bcs.U64(1717000000000))
	assertPure(t, tx, call.Arguments[4], bcs.String("Bangkok"))
	assertPure(t, tx, call.Arguments[5], bcs.Bool(true))
	assertPure(t, tx, call.Arguments[6], bcs.String("img"))
	assertPure(t, tx, call.Arguments[7], bcs.Strings([]string{"GA", "VIP"}))
	assertPure(t, tx, call.Arguments[8], bcs.Strings([]string{"General", "Front row"}))
	assertPure(t, tx, call.Arguments[9], bcs.U64s([]uint64{1_000_000_000, 5_000_000_000}))
	assertPure(t, tx, call.Arguments[10], bcs.U64s([]uint64{100, 10}))
	assertPure(t, tx, call.Arguments[11], bcs.Strings([]string{"ga", "vip"}))

	t.Run("no_ticket_types", func(t *testing.T) {
		_, err := d.BuildCreateEvent(CreateEventParams{Name: "empty"})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestPurchaseTicket(t *testing.T) {
	d, _ := newTestDispatcher(t)
	tx, err := d.BuildPurchaseTicket(PurchaseParams{
		EventID:      testEventID,
		TicketTypeID: 1,
		Price:        2_500_000_000,
	})
	require.NoError(t, err)

	call := singleCall(t, tx, FuncBuyTicket)
	require.Len(t, call.Arguments, 4)
	assertObject(t, tx, call.Arguments[0], testPlatformID, true)
	assertPure(t, tx, call.Arguments[1], addressBytes(testEventID))
	assert.Equal(t, ptb.ArgumentNestedResult, call.Arguments[2].Kind, "payment is the coin split from gas")
	assertPure(t, tx, call.Arguments[3], bcs.U64(1))
	assert.EqualValues(t, 2_500_000_000, tx.GasSpend())
}

func TestObjectIntents(t *testing.T) {
	d, _ := newTestDispatcher(t)

	t.Run("mark_attended", func(t *testing.T) {
		tx, err := d.BuildMarkAttended(testTicketID, testCapID)
		require.NoError(t, err)
		call := singleCall(t, tx, FuncMarkAttended)
		require.Len(t, call.Arguments, 3)
		assertObject(t, tx, call.Arguments[0], testPlatformID, true)
		assertObject(t, tx, call.Arguments[1], testTicketID, true)
		assertObject(t, tx, call.Arguments[2], testCapID, false)
	})

	t.Run("close_event", func(t *testing.T) {
		tx, err := d.BuildCloseEvent(testEventID, testCapID)
		require.NoError(t, err)
		call := singleCall(t, tx, FuncCloseEvent)
		require.Len(t, call.Arguments, 3)
		assertObject(t, tx, call.Arguments[0], testPlatformID, true)
		assertPure(t, tx, call.Arguments[1], addressBytes(testEventID))
		assertObject(t, tx, call.Arguments[2], testCapID, false)
	})

	t.Run("claim_poap", func(t *testing.T) {
		tx, err := d.BuildClaimPoap(testTicketID)
		require.NoError(t, err)
		call := singleCall(t, tx, FuncClaimPoap)
		require.Len(t, call.Arguments, 2)
		assertObject(t, tx, call.Arguments[0], testPlatformID, true)
		assertObject(t, tx, call.Arguments[1], testTicketID, true)
	})

	t.Run("withdraw_revenue", func(t *testing.T) {
		tx, err := d.BuildWithdrawRevenue(testEventID)
		require.NoError(t, err)
		call := singleCall(t, tx, FuncWithdrawRevenue)
		require.Len(t, call.Arguments, 3)
		assertObject(t, tx, call.Arguments[0], testPlatformID, true)
		assertPure(t, tx, call.Arguments[1], addressBytes(testEventID))
		assertObject(t, tx, call.Arguments[2], "0x6", false)

		unresolved := tx.UnresolvedObjects()
		require.Len(t, unresolved, 1, "clock is resolved up front")
		assert.Equal(t, sui.MustParseAddress(testPlatformID), unresolved[0].ID)
	})

	t.Run("transfer_ticket", func(t *testing.T) {
		tx, err := d.BuildTransferTicket(testTicketID, "0xb0b")
		require.NoError(t, err)
		call := singleCall(t, tx, FuncTransferTicket)
		require.Len(t, call.Arguments, 3)
		assertObject(t, tx, call.Arguments[0], testPlatformID, true)
		assertObject(t, tx, call.Arguments[1], testTicketID, true)
		assertPure(t, tx, call.Arguments[2], addressBytes("0xb0b"))
	})

	t.Run("update_platform_admin", func(t *testing.T) {
		tx, err := d.BuildUpdatePlatformAdmin("0xb0b")
		require.NoError(t, err)
		call := singleCall(t, tx, FuncUpdatePlatformAdmin)
		require.Len(t, call.Arguments, 2)
		assertObject(t, tx, call.Arguments[0], testPlatformID, true)
		assertPure(t, tx, call.Arguments[1], addressBytes("0xb0b"))
	})

	t.Run("update_event", func(t *testing.T) {
		tx, err := d.BuildUpdateEvent(UpdateEventParams{
			EventID:     testEventID,
			Name:        "New name",
			Description: "New description",
			Timestamp:   42,
			Location:    "Online",
			IsPaid:      false,
		})
		require.NoError(t, err)
		call := singleCall(t, tx, FuncUpdateEvent)
		require.Len(t, call.Arguments, 7)
		assertObject(t, tx, call.Arguments[0], testPlatformID, true)
		assertPure(t, tx, call.Arguments[1], addressBytes(testEventID))
		assertPure(t, tx, call.Arguments[2], bcs.String("New name"))
		assertPure(t, tx, call.Arguments[3], bcs.String("New description"))
		assertPure(t, tx, call.Arguments[4], bcs.U64(42))
		assertPure(t, tx, call.Arguments[5], bcs.String("Online"))
		assertPure(t, tx, call.Arguments[6], bcs.Bool(false))
	})
}

func TestInvalidIDs(t *testing.T) {
	d, submitter := newTestDispatcher(t)

	_, err := d.ClaimPoap(context.Background(), "not-hex")
	assert.ErrorIs(t, err, errs.InvalidArgument)
	_, err = d.TransferTicket(context.Background(), testTicketID, "")
	assert.ErrorIs(t, err, errs.InvalidArgument)
	assert.Empty(t, submitter.txs, "nothing is submitted on invalid input")
}

func TestSubmitError(t *testing.T) {
	d, submitter := newTestDispatcher(t)
	submitter.err = errors.Wrap(errs.Unauthorized, "read-only session")

	_, err := d.ClaimPoap(context.Background(), testTicketID)
	assert.ErrorIs(t, err, errs.Unauthorized)
}

func TestNew(t *testing.T) {
	_, err := New("nope", testPlatformID, &recordingSubmitter{})
	assert.Error(t, err)
	_, err = New(testPackageID, testPlatformID, nil)
	assert.ErrorIs(t, err, errs.InvalidArgument)
}
