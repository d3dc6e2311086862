package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActionKind string

const (
	ActionInitializePlatform  ActionKind = "initialize_platform"
	ActionCreateEvent         ActionKind = "create_event"
	ActionPurchaseTicket      ActionKind = "buy_ticket"
	ActionMarkAttended        ActionKind = "mark_attended"
	ActionCloseEvent          ActionKind = "close_event"
	ActionClaimPoap           ActionKind = "claim_poap"
	ActionWithdrawRevenue     ActionKind = "withdraw_revenue"
	ActionTransferTicket      ActionKind = "transfer_ticket"
	ActionUpdatePlatformAdmin ActionKind = "update_platform_admin"
	ActionUpdateEvent         ActionKind = "update_event"
)

// ActionResult is the outcome of a mutating action. A failed action has a
// user-facing Message and no Digest.
type ActionResult struct {
	Success bool
	Digest  string
	Message string
}

// Action is a journal entry of a submitted transaction.
type Action struct {
	ID        uuid.UUID
	Kind      ActionKind
	Sender    string
	Target    string // event or ticket id
	Digest    string
	Success   bool
	Message   string
	CreatedAt time.Time
}

// EventDraft is the input of event creation and update.
type EventDraft struct {
	Name        string
	Description string
	Location    string
	Timestamp   time.Time
	IsPaid      bool
	ImageURL    string
}

type TicketTypeDraft struct {
	Name        string
	Description string
	Price       string // decimal SUI
	MaxSupply   uint64
	ImageURL    string
}
