package sui

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/modules/events/config"
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/gaze-network/event-horizon/pkg/sui/suirpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPackageID  = "0xeeea3e14b44ebc4db154f243ecfc6cbdbee8390b4c01a6b8cf893a4d5514a65c"
	testPlatformID = "0xa1"
	testUser       = "0x0000000000000000000000000000000000000000000000000000000000000b0b"
)

const platformContent = `{
  "dataType": "moveObject",
  "type": "0xeeea::event_mgnt_sc::Platform",
  "fields": {
    "id": {"id": "0xa1"},
    "events": {
      "type": "0x2::vec_map::VecMap<0x2::object::ID, 0xeeea::event_mgnt_sc::Event>",
      "fields": {"contents": [
        {"type": "0x2::vec_map::Entry", "fields": {"key": "0xe1", "value": {"type": "0xeeea::event_mgnt_sc::Event", "fields": {
          "id": {"id": "0xe1"},
          "name": "Sui Builders Night",
          "description": "Meetup",
          "location": "Bangkok",
          "timestamp": "1735689600000",
          "cover_img": "https://img/e1.png",
          "organizer": "0xorg",
          "is_paid": true,
          "closed": false,
          "ticket_type": [
            {"type": "0xeeea::event_mgnt_sc::TicketType", "fields": {"name": "GA", "description": "General", "price": "1500000000", "max_tickets": "100", "tickets_sold": "3", "cover_img": ""}}
          ]
        }}}},
        {"type": "0x2::vec_map::Entry", "fields": {"key": "0xe2", "value": {"type": "0xeeea::event_mgnt_sc::Event", "fields": {
          "id": {"id": "0xe2"},
          "name": "Closed Event",
          "timestamp": 0,
          "closed": true,
          "ticket_type": []
        }}}}
      ]}
    },
    "users": {
      "type": "0x2::vec_map::VecMap<address, 0xeeea::event_mgnt_sc::User>",
      "fields": {"contents": [
        {"type": "0x2::vec_map::Entry", "fields": {"key": "` + testUser + `", "value": {"type": "0xeeea::event_mgnt_sc::User", "fields": {
          "tickets": [
            {"id": {"id": "0x71c"}, "event_id": "0xe1", "ticket_type": "0", "owner": "` + testUser + `", "attended": true, "poap_claimed": false},
            {"type": "0xeeea::event_mgnt_sc::Ticket", "fields": {"id": {"id": "0x71d"}, "event_id": "0xe2", "ticket_type": "1", "owner": "` + testUser + `", "attended": false, "poap_claimed": false}}
          ],
          "poaps": [
            {"type": "0xeeea::event_mgnt_sc::POAP", "fields": {"id": {"id": "0xp1"}, "event_id": "0xe1"}}
          ]
        }}}}
      ]}
    }
  }
}`

type fakeRPC struct {
	platform    *suirpc.ObjectData
	ownedPages  map[string][]suirpc.ObjectsPage
	balance     uint64
	structTypes []string
}

func (f *fakeRPC) GetObject(_ context.Context, id string, _ suirpc.ObjectDataOptions) (*suirpc.ObjectData, error) {
	if f.platform == nil || !sui.EqualAddress(id, testPlatformID) {
		return nil, errs.NotFound
	}
	return f.platform, nil
}

func (f *fakeRPC) GetOwnedObjects(_ context.Context, _ string, query suirpc.ObjectResponseQuery, cursor *string, _ *uint) (*suirpc.ObjectsPage, error) {
	structType := query.Filter.StructType
	f.structTypes = append(f.structTypes, structType)
	name := structType[strings.LastIndex(structType, "::")+2:]
	idx := 0
	if cursor != nil {
		idx = int((*cursor)[0] - '0')
	}
	pages := f.ownedPages[name]
	if idx >= len(pages) {
		return &suirpc.ObjectsPage{}, nil
	}
	page := pages[idx]
	return &page, nil
}

func (f *fakeRPC) GetBalance(context.Context, string, string) (*suirpc.Balance, error) {
	return &suirpc.Balance{CoinType: suirpc.SUICoinType, TotalBalance: sui.Uint64(f.balance)}, nil
}

func moveObject(t *testing.T, content string) *suirpc.ObjectData {
	t.Helper()
	var c suirpc.MoveContent
	require.NoError(t, json.Unmarshal([]byte(content), &c))
	return &suirpc.ObjectData{ObjectID: sui.MustParseAddress(testPlatformID), Version: 1, Content: &c}
}

func ownedObject(t *testing.T, fields string) suirpc.ObjectResponse {
	t.Helper()
	return suirpc.ObjectResponse{Data: &suirpc.ObjectData{
		Content: &suirpc.MoveContent{DataType: "moveObject", Fields: json.RawMessage(fields)},
	}}
}

func newTestRepository(t *testing.T, rpc RPC, source string) *Repository {
	t.Helper()
	repo, err := NewRepository(rpc, config.Config{
		PackageID:       testPackageID,
		PlatformID:      testPlatformID,
		OwnershipSource: source,
	})
	require.NoError(t, err)
	return repo
}

func TestNewRepository(t *testing.T) {
	_, err := NewRepository(&fakeRPC{}, config.Config{PackageID: testPackageID, PlatformID: testPlatformID, OwnershipSource: "indexer"})
	assert.ErrorIs(t, err, errs.Unsupported)

	_, err = NewRepository(&fakeRPC{}, config.Config{PackageID: "package", PlatformID: testPlatformID})
	assert.Error(t, err)

	repo, err := NewRepository(&fakeRPC{}, config.Config{PackageID: testPackageID, PlatformID: testPlatformID})
	require.NoError(t, err)
	assert.Equal(t, config.OwnershipSourceOwnedObjects, repo.ownershipSource)
}

func TestGetEvents(t *testing.T) {
	repo := newTestRepository(t, &fakeRPC{platform: moveObject(t, platformContent)}, "")

	events, err := repo.GetEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, entity.RawEvent{
		ID:          "0xe1",
		Name:        "Sui Builders Night",
		Description: "Meetup",
		Location:    "Bangkok",
		Timestamp:   1735689600000,
		CoverImg:    "https://img/e1.png",
		Organizer:   "0xorg",
		IsPaid:      true,
		TicketTypes: []entity.RawTicketType{{
			Name:        "GA",
			Description: "General",
			Price:       1500000000,
			MaxTickets:  100,
			TicketsSold: 3,
		}},
	}, events[0])
	assert.Equal(t, "0xe2", events[1].ID)
	assert.True(t, events[1].Closed)
	assert.Empty(t, events[1].TicketTypes)
}

func TestGetEventsNotMoveObject(t *testing.T) {
	platform := &suirpc.ObjectData{Content: &suirpc.MoveContent{DataType: "package"}}
	repo := newTestRepository(t, &fakeRPC{platform: platform}, "")

	events, err := repo.GetEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NotNil(t, events)
}

func TestGetEventsMissingPlatform(t *testing.T) {
	repo := newTestRepository(t, &fakeRPC{}, "")
	_, err := repo.GetEvents(context.Background())
	assert.ErrorIs(t, err, errs.NotFound)
}

func TestPlatformOwnership(t *testing.T) {
	repo := newTestRepository(t, &fakeRPC{platform: moveObject(t, platformContent)}, config.OwnershipSourcePlatform)
	ctx := context.Background()

	tickets, err := repo.GetUserTickets(ctx, "0xb0b")
	require.NoError(t, err)
	assert.Equal(t, []entity.RawTicket{
		{ID: "0x71c", EventID: "0xe1", TicketType: 0, Owner: testUser, Attended: true},
		{ID: "0x71d", EventID: "0xe2", TicketType: 1, Owner: testUser},
	}, tickets)

	poaps, err := repo.GetUserPoaps(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, []entity.RawPoap{{ID: "0xp1", EventID: "0xe1"}}, poaps)

	t.Run("unknown_user", func(t *testing.T) {
		tickets, err := repo.GetUserTickets(ctx, "0xdead")
		require.NoError(t, err)
		assert.Empty(t, tickets)
	})
}

func TestOwnedObjectsOwnership(t *testing.T) {
	next := "1"
	rpc := &fakeRPC{ownedPages: map[string][]suirpc.ObjectsPage{
		TicketStruct: {
			{
				Data:        []suirpc.ObjectResponse{ownedObject(t, `{"id": {"id": "0x71c"}, "event_id": "0xe1", "ticket_type": "2", "owner": "0xb0b", "attended": false, "poap_claimed": true}`)},
				NextCursor:  &next,
				HasNextPage: true,
			},
			{
				Data: []suirpc.ObjectResponse{
					{Error: &suirpc.ObjectResponseError{Code: "deleted"}},
					ownedObject(t, `{"id": {"id": "0x71d"}, "event_id": "0xe2", "ticket_type": 0, "owner": "0xb0b"}`),
				},
			},
		},
		PoapStruct: {
			{Data: []suirpc.ObjectResponse{ownedObject(t, `{"id": {"id": "0xp1"}, "event_id": "0xe1"}`)}},
		},
	}}
	repo := newTestRepository(t, rpc, config.OwnershipSourceOwnedObjects)
	ctx := context.Background()

	tickets, err := repo.GetUserTickets(ctx, "0xb0b")
	require.NoError(t, err)
	assert.Equal(t, []entity.RawTicket{
		{ID: "0x71c", EventID: "0xe1", TicketType: 2, Owner: "0xb0b", PoapClaimed: true},
		{ID: "0x71d", EventID: "0xe2", TicketType: 0, Owner: "0xb0b"},
	}, tickets)

	poaps, err := repo.GetUserPoaps(ctx, "0xb0b")
	require.NoError(t, err)
	assert.Equal(t, []entity.RawPoap{{ID: "0xp1", EventID: "0xe1"}}, poaps)

	packageID := sui.MustParseAddress(testPackageID).String()
	assert.Equal(t, []string{
		packageID + "::event_mgnt_sc::Ticket",
		packageID + "::event_mgnt_sc::Ticket",
		packageID + "::event_mgnt_sc::POAP",
	}, rpc.structTypes)
}

func TestGetBalance(t *testing.T) {
	repo := newTestRepository(t, &fakeRPC{balance: 42}, "")
	balance, err := repo.GetBalance(context.Background(), "0xb0b")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), balance)
}
