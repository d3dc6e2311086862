package transform

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawEvent() entity.RawEvent {
	return entity.RawEvent{
		ID:          "0xe1",
		Name:        "Sui Builders",
		Description: "Meetup",
		Location:    "Bangkok",
		Timestamp:   1717000000000,
		CoverImg:    "https://img/e1.png",
		Organizer:   "0xorg",
		IsPaid:      true,
		TicketTypes: []entity.RawTicketType{
			{Name: "GA", Price: 2_500_000_000, MaxTickets: 100, TicketsSold: 40, CoverImg: "https://img/ga.png"},
			{Name: "VIP", Price: 10_000_000_000, MaxTickets: 10, TicketsSold: 10},
		},
	}
}

func TestEvents(t *testing.T) {
	events := Events([]entity.RawEvent{rawEvent(), {ID: "0xe2"}})
	require.Len(t, events, 2)

	event := events[0]
	assert.Equal(t, "0xe1", event.ID)
	assert.Equal(t, "Sui Builders", event.Name)
	assert.Equal(t, time.UnixMilli(1717000000000), event.Timestamp)
	assert.Equal(t, "https://img/e1.png", event.ImageURL)
	assert.True(t, event.IsPaid)
	assert.False(t, event.Closed)

	require.Len(t, event.TicketTypes, 2)
	assert.Equal(t, entity.TicketType{
		ID:              0,
		Name:            "GA",
		Price:           "2.5",
		MaxSupply:       100,
		RemainingSupply: 60,
		ImageURL:        "https://img/ga.png",
	}, event.TicketTypes[0])
	assert.Equal(t, 1, event.TicketTypes[1].ID)
	assert.Equal(t, "10", event.TicketTypes[1].Price)
	assert.Zero(t, event.TicketTypes[1].RemainingSupply)

	t.Run("missing_fields", func(t *testing.T) {
		empty := events[1]
		assert.Equal(t, "0xe2", empty.ID)
		assert.Empty(t, empty.Name)
		assert.Empty(t, empty.TicketTypes)
		assert.Equal(t, time.UnixMilli(0), empty.Timestamp)
	})

	t.Run("empty_input", func(t *testing.T) {
		assert.Empty(t, Events(nil))
	})
}

func TestTicketTypeSupply(t *testing.T) {
	testcases := []struct {
		name      string
		max, sold sui.Uint64
		remaining uint64
	}{
		{"unsold", 10, 0, 10},
		{"partially_sold", 10, 3, 7},
		{"sold_out", 10, 10, 0},
		{"oversold_is_clamped", 10, 12, 0},
		{"no_supply", 0, 0, 0},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			tt := TicketType(0, entity.RawTicketType{MaxTickets: tc.max, TicketsSold: tc.sold})
			assert.Equal(t, tc.remaining, tt.RemainingSupply)
			assert.LessOrEqual(t, tt.RemainingSupply, tt.MaxSupply)
		})
	}
}

func TestTickets(t *testing.T) {
	events := Events([]entity.RawEvent{rawEvent()})
	tickets := Tickets([]entity.RawTicket{
		{ID: "0xt1", EventID: "0xe1", TicketType: 1, Owner: "0xme", Attended: true},
		{ID: "0xt2", EventID: "0xgone"},
	}, events)
	require.Len(t, tickets, 2)

	assert.Equal(t, entity.Ticket{
		ID:           "0xt1",
		EventID:      "0xe1",
		TicketTypeID: 1,
		EventName:    entity.KnownEventName("Sui Builders"),
		Owner:        "0xme",
		Attended:     true,
	}, tickets[0])

	assert.False(t, tickets[1].EventName.IsKnown())
	assert.Equal(t, "Unknown Event", tickets[1].EventName.String())
}

func TestPoaps(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	events := Events([]entity.RawEvent{rawEvent()})
	poaps := Poaps([]entity.RawPoap{
		{ID: "0xp1", EventID: "0xe1"},
		{ID: "0xp2", EventID: "0xgone"},
	}, events, now)
	require.Len(t, poaps, 2)

	assert.Equal(t, entity.KnownEventName("Sui Builders"), poaps[0].EventName)
	assert.Equal(t, "https://img/e1.png", poaps[0].ImageURL)
	assert.Equal(t, now, poaps[0].ClaimedAt)

	assert.Equal(t, entity.UnknownEventName, poaps[1].EventName)
	assert.Empty(t, poaps[1].ImageURL)
	assert.Equal(t, now, poaps[1].ClaimedAt)
}

func TestEventNameJSON(t *testing.T) {
	known, err := json.Marshal(entity.KnownEventName(""))
	require.NoError(t, err)
	assert.JSONEq(t, `""`, string(known), "empty name is distinct from unknown")

	unknown, err := json.Marshal(entity.UnknownEventName)
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(unknown))
}

func TestPrice(t *testing.T) {
	t.Run("mist_to_sui", func(t *testing.T) {
		testcases := []struct {
			mist     uint64
			expected string
		}{
			{0, "0"},
			{1, "0.000000001"},
			{1_000_000_000, "1"},
			{2_500_000_000, "2.5"},
			{18446744073709551615, "18446744073.709551615"},
		}
		for _, tc := range testcases {
			assert.Equal(t, tc.expected, MistToSui(tc.mist))
		}
	})

	t.Run("sui_to_mist", func(t *testing.T) {
		testcases := []struct {
			sui      string
			expected uint64
		}{
			{"0", 0},
			{"1", 1_000_000_000},
			{"2.5", 2_500_000_000},
			{" 0.1 ", 100_000_000},
			{"0.0000000019", 1}, // truncated toward zero
			{"0.0000000001", 0},
		}
		for _, tc := range testcases {
			mist, err := SuiToMist(tc.sui)
			require.NoError(t, err, tc.sui)
			assert.Equal(t, tc.expected, mist, tc.sui)
		}
	})

	t.Run("sui_to_mist_errors", func(t *testing.T) {
		for _, invalid := range []string{"", "abc", "-1"} {
			_, err := SuiToMist(invalid)
			assert.ErrorIs(t, err, errs.InvalidArgument, invalid)
		}
		_, err := SuiToMist("18446744074")
		assert.ErrorIs(t, err, errs.OverflowUint64)
	})

	t.Run("round_trip", func(t *testing.T) {
		for _, price := range []string{"2.50", "0.1", "100", "0.000000001"} {
			mist, err := SuiToMist(price)
			require.NoError(t, err)
			expected := decimal.RequireFromString(price)
			actual := decimal.RequireFromString(MistToSui(mist))
			assert.True(t, expected.Equal(actual), "%s != %s", expected, actual)
			assert.Equal(t, expected.StringFixed(2), actual.StringFixed(2))
		}
	})
}
