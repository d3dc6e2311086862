package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/modules/events/internal/dispatcher"
	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/gaze-network/event-horizon/modules/events/internal/metrics"
	"github.com/gaze-network/event-horizon/modules/events/internal/transform"
	"github.com/gaze-network/event-horizon/pkg/logger"
	"github.com/gaze-network/event-horizon/pkg/logger/slogx"
	"github.com/gaze-network/event-horizon/pkg/sui"
	"github.com/google/uuid"
)

// User-facing messages of failed actions.
const (
	MsgEventNotFound       = "Event not found"
	MsgTicketTypeNotFound  = "Ticket type not found"
	MsgTicketNotFound      = "Ticket not found in your wallet"
	MsgEventClosed         = "Event is closed"
	MsgSoldOut             = "Ticket type is sold out"
	MsgWalletNotConnected  = "Connect a wallet first"
	MsgWalletCannotSign    = "Connected wallet can't sign transactions"
	MsgInsufficientBalance = "Insufficient balance. Please add more SUI to your wallet"
	MsgPoapClaimed         = "POAP already claimed"
	MsgNotAttended         = "Ticket is not marked as attended"
	MsgInvalidRecipient    = "Invalid recipient address"
	MsgInvalidAddress      = "Invalid address"
	MsgMissingCap          = "Organizer capability is required"
	MsgMissingName         = "Event name is required"
	MsgMissingTicketTypes  = "At least one ticket type is required"
	MsgInvalidTimestamp    = "Invalid event date"
	MsgTransactionFailed   = "Transaction failed"
)

func failed(message string) entity.ActionResult {
	return entity.ActionResult{Message: message}
}

// reject fails an action before anything is submitted.
func (s *Store) reject(ctx context.Context, kind entity.ActionKind, message string) entity.ActionResult {
	metrics.RecordAction(string(kind), false)
	logger.WarnContext(ctx, "Rejected action", slog.String("action", string(kind)), slog.String("reason", message))
	return failed(message)
}

// execute submits an intent, journals the attempt and refreshes the store on
// success. A refresh failure doesn't fail the action.
func (s *Store) execute(ctx context.Context, kind entity.ActionKind, target string, submit func(context.Context) (dispatcher.TxResult, error)) entity.ActionResult {
	ctx = logger.WithContext(ctx, slog.String("action", string(kind)), slog.String("target", target))
	sender, _ := s.wallet.Address()

	tx, err := submit(ctx)
	action := entity.Action{
		ID:        uuid.New(),
		Kind:      kind,
		Sender:    sender,
		Target:    target,
		Digest:    tx.Digest,
		Success:   err == nil,
		CreatedAt: s.now(),
	}
	if err != nil {
		action.Message = failureMessage(err)
	}
	if jerr := s.journal.RecordAction(ctx, action); jerr != nil {
		logger.ErrorContext(ctx, "Can't record action", slogx.Error(jerr))
	}
	metrics.RecordAction(string(kind), err == nil)

	if err != nil {
		logger.ErrorContext(ctx, "Action failed", slogx.Error(err))
		return failed(action.Message)
	}
	logger.InfoContext(ctx, "Action submitted", slog.String("digest", tx.Digest))

	if err := s.Refresh(ctx); err != nil {
		logger.WarnContext(ctx, "Can't refresh after action", slogx.Error(err))
	}
	return entity.ActionResult{Success: true, Digest: tx.Digest}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, errs.Unauthorized):
		return MsgWalletCannotSign
	case errors.Is(err, errs.InsufficientFunds):
		return MsgInsufficientBalance
	case errors.Is(err, errs.InvalidArgument):
		return fmt.Sprintf("%s: invalid arguments", MsgTransactionFailed)
	case errors.Is(err, errs.Timeout):
		return fmt.Sprintf("%s: timeout", MsgTransactionFailed)
	}
	return MsgTransactionFailed
}

// PurchaseTicket buys one ticket of ticketTypeID (its position in the event)
// with the price split from the gas coin. paymentRef is the coin the caller
// selected for payment; it is only logged.
func (s *Store) PurchaseTicket(ctx context.Context, eventID string, ticketTypeID int, paymentRef string) entity.ActionResult {
	defer s.begin()()
	kind := entity.ActionPurchaseTicket

	event, ok := s.GetEventByID(eventID)
	if !ok {
		return s.reject(ctx, kind, MsgEventNotFound)
	}
	ticketType, ok := event.TicketType(ticketTypeID)
	if !ok {
		return s.reject(ctx, kind, MsgTicketTypeNotFound)
	}
	if event.Closed {
		return s.reject(ctx, kind, MsgEventClosed)
	}
	if ticketType.RemainingSupply == 0 {
		return s.reject(ctx, kind, MsgSoldOut)
	}
	owner, connected := s.wallet.Address()
	if !connected {
		return s.reject(ctx, kind, MsgWalletNotConnected)
	}
	price, err := transform.SuiToMist(ticketType.Price)
	if err != nil {
		logger.ErrorContext(ctx, "Invalid ticket price", slog.String("price", ticketType.Price), slogx.Error(err))
		return s.reject(ctx, kind, MsgTransactionFailed)
	}

	balance, err := s.chain.GetBalance(ctx, owner)
	switch {
	case err != nil:
		logger.WarnContext(ctx, "Can't read balance, skipped balance check", slogx.Error(err))
	case balance < price+s.config.GasReserve:
		needed := transform.MistToSui(price + s.config.GasReserve)
		return s.reject(ctx, kind, fmt.Sprintf("%s. Needed: %s SUI (including gas)", MsgInsufficientBalance, needed))
	}

	logger.DebugContext(ctx, "Purchasing ticket",
		slog.String("event", eventID),
		slog.Int("ticketType", ticketTypeID),
		slog.String("payment", paymentRef),
		slog.Uint64("price", price),
	)
	return s.execute(ctx, kind, eventID, func(ctx context.Context) (dispatcher.TxResult, error) {
		return s.dispatcher.PurchaseTicket(ctx, dispatcher.PurchaseParams{
			EventID:      eventID,
			TicketTypeID: uint64(ticketTypeID),
			Price:        price,
		})
	})
}

// CreateEvent creates an event with its ticket types. Prices are decimal SUI.
func (s *Store) CreateEvent(ctx context.Context, draft entity.EventDraft, ticketTypes []entity.TicketTypeDraft) entity.ActionResult {
	defer s.begin()()
	kind := entity.ActionCreateEvent

	if msg, ok := validateDraft(draft); !ok {
		return s.reject(ctx, kind, msg)
	}
	if len(ticketTypes) == 0 {
		return s.reject(ctx, kind, MsgMissingTicketTypes)
	}
	params := dispatcher.CreateEventParams{
		Name:        draft.Name,
		Description: draft.Description,
		Timestamp:   uint64(draft.Timestamp.UnixMilli()),
		Location:    draft.Location,
		IsPaid:      draft.IsPaid,
		ImageURL:    draft.ImageURL,
		TicketTypes: make([]dispatcher.TicketTypeParams, 0, len(ticketTypes)),
	}
	for _, t := range ticketTypes {
		price, err := transform.SuiToMist(t.Price)
		if err != nil {
			return s.reject(ctx, kind, fmt.Sprintf("Invalid price %q for ticket type %q", t.Price, t.Name))
		}
		params.TicketTypes = append(params.TicketTypes, dispatcher.TicketTypeParams{
			Name:        t.Name,
			Description: t.Description,
			Price:       price,
			MaxSupply:   t.MaxSupply,
			ImageURL:    t.ImageURL,
		})
	}

	return s.execute(ctx, kind, draft.Name, func(ctx context.Context) (dispatcher.TxResult, error) {
		return s.dispatcher.CreateEvent(ctx, params)
	})
}

// UpdateEvent replaces the details of an event. Ticket types are unchanged.
func (s *Store) UpdateEvent(ctx context.Context, eventID string, draft entity.EventDraft) entity.ActionResult {
	defer s.begin()()
	kind := entity.ActionUpdateEvent

	if _, ok := s.GetEventByID(eventID); !ok {
		return s.reject(ctx, kind, MsgEventNotFound)
	}
	if msg, ok := validateDraft(draft); !ok {
		return s.reject(ctx, kind, msg)
	}
	return s.execute(ctx, kind, eventID, func(ctx context.Context) (dispatcher.TxResult, error) {
		return s.dispatcher.UpdateEvent(ctx, dispatcher.UpdateEventParams{
			EventID:     eventID,
			Name:        draft.Name,
			Description: draft.Description,
			Timestamp:   uint64(draft.Timestamp.UnixMilli()),
			Location:    draft.Location,
			IsPaid:      draft.IsPaid,
		})
	})
}

func validateDraft(draft entity.EventDraft) (string, bool) {
	if strings.TrimSpace(draft.Name) == "" {
		return MsgMissingName, false
	}
	if draft.Timestamp.IsZero() || draft.Timestamp.UnixMilli() < 0 {
		return MsgInvalidTimestamp, false
	}
	return "", true
}

// MarkAttended marks any ticket as attended. capID is the organizer
// capability of the ticket's event.
func (s *Store) MarkAttended(ctx context.Context, ticketID, capID string) entity.ActionResult {
	defer s.begin()()
	kind := entity.ActionMarkAttended

	if strings.TrimSpace(ticketID) == "" {
		return s.reject(ctx, kind, MsgTicketNotFound)
	}
	if strings.TrimSpace(capID) == "" {
		return s.reject(ctx, kind, MsgMissingCap)
	}
	return s.execute(ctx, kind, ticketID, func(ctx context.Context) (dispatcher.TxResult, error) {
		return s.dispatcher.MarkAttended(ctx, ticketID, capID)
	})
}

// ClaimPoap claims the POAP of an attended ticket of the connected wallet.
func (s *Store) ClaimPoap(ctx context.Context, ticketID string) entity.ActionResult {
	defer s.begin()()
	kind := entity.ActionClaimPoap

	ticket, ok := s.userTicket(ticketID)
	if !ok {
		return s.reject(ctx, kind, MsgTicketNotFound)
	}
	if ticket.PoapClaimed {
		return s.reject(ctx, kind, MsgPoapClaimed)
	}
	if !ticket.Attended {
		return s.reject(ctx, kind, MsgNotAttended)
	}
	return s.execute(ctx, kind, ticketID, func(ctx context.Context) (dispatcher.TxResult, error) {
		return s.dispatcher.ClaimPoap(ctx, ticketID)
	})
}

// TransferEventTicket sends a ticket of the connected wallet to recipient.
func (s *Store) TransferEventTicket(ctx context.Context, ticketID, recipient string) entity.ActionResult {
	defer s.begin()()
	kind := entity.ActionTransferTicket

	if _, ok := s.userTicket(ticketID); !ok {
		return s.reject(ctx, kind, MsgTicketNotFound)
	}
	if _, err := sui.ParseAddress(recipient); err != nil {
		return s.reject(ctx, kind, MsgInvalidRecipient)
	}
	return s.execute(ctx, kind, ticketID, func(ctx context.Context) (dispatcher.TxResult, error) {
		return s.dispatcher.TransferTicket(ctx, ticketID, recipient)
	})
}

// CloseEvent stops ticket sales of an event.
func (s *Store) CloseEvent(ctx context.Context, eventID, capID string) entity.ActionResult {
	defer s.begin()()
	kind := entity.ActionCloseEvent

	event, ok := s.GetEventByID(eventID)
	if !ok {
		return s.reject(ctx, kind, MsgEventNotFound)
	}
	if event.Closed {
		return s.reject(ctx, kind, MsgEventClosed)
	}
	if strings.TrimSpace(capID) == "" {
		return s.reject(ctx, kind, MsgMissingCap)
	}
	return s.execute(ctx, kind, eventID, func(ctx context.Context) (dispatcher.TxResult, error) {
		return s.dispatcher.CloseEvent(ctx, eventID, capID)
	})
}

// WithdrawRevenue withdraws the ticket sales of an event to its organizer.
func (s *Store) WithdrawRevenue(ctx context.Context, eventID string) entity.ActionResult {
	defer s.begin()()
	kind := entity.ActionWithdrawRevenue

	if _, ok := s.GetEventByID(eventID); !ok {
		return s.reject(ctx, kind, MsgEventNotFound)
	}
	return s.execute(ctx, kind, eventID, func(ctx context.Context) (dispatcher.TxResult, error) {
		return s.dispatcher.WithdrawRevenue(ctx, eventID)
	})
}

func (s *Store) InitializePlatform(ctx context.Context) entity.ActionResult {
	defer s.begin()()
	return s.execute(ctx, entity.ActionInitializePlatform, "", s.dispatcher.InitializePlatform)
}

// UpdatePlatformAdmin hands the platform administration over to newAdmin.
func (s *Store) UpdatePlatformAdmin(ctx context.Context, newAdmin string) entity.ActionResult {
	defer s.begin()()
	kind := entity.ActionUpdatePlatformAdmin

	if _, err := sui.ParseAddress(newAdmin); err != nil {
		return s.reject(ctx, kind, MsgInvalidAddress)
	}
	return s.execute(ctx, kind, newAdmin, func(ctx context.Context) (dispatcher.TxResult, error) {
		return s.dispatcher.UpdatePlatformAdmin(ctx, newAdmin)
	})
}
