package events

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gaze-network/event-horizon/core"
	"github.com/gaze-network/event-horizon/internal/config"
	"github.com/gaze-network/event-horizon/internal/postgres"
	"github.com/gaze-network/event-horizon/modules/events/api/httphandler"
	"github.com/gaze-network/event-horizon/modules/events/datagateway"
	"github.com/gaze-network/event-horizon/modules/events/internal/dispatcher"
	"github.com/gaze-network/event-horizon/modules/events/internal/store"
	"github.com/gaze-network/event-horizon/modules/events/internal/wallet"
	"github.com/gaze-network/event-horizon/modules/events/repository/memory"
	eventspostgres "github.com/gaze-network/event-horizon/modules/events/repository/postgres"
	eventssui "github.com/gaze-network/event-horizon/modules/events/repository/sui"
	"github.com/gaze-network/event-horizon/pkg/logger"
	"github.com/gaze-network/event-horizon/pkg/logger/slogx"
	"github.com/gaze-network/event-horizon/pkg/sui/suirpc"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
)

func New(injector do.Injector) (core.Worker, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	rpc := do.MustInvoke[*suirpc.Client](injector)

	moduleConf := conf.Modules.Events
	if moduleConf.PackageID == "" {
		moduleConf.PackageID = DefaultPackageID
	}

	// Wallet session lives in the injector so it is dropped on shutdown.
	do.Provide(injector, func(i do.Injector) (*wallet.Session, error) {
		session, err := wallet.Connect(wallet.Config{
			PrivateKey: conf.Wallet.PrivateKey,
			Address:    conf.Wallet.Address,
			GasBudget:  moduleConf.GasBudget,
		}, rpc)
		if err != nil {
			return nil, errors.Wrap(err, "can't connect wallet")
		}
		return session, nil
	})
	session, err := do.Invoke[*wallet.Session](injector)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if address, ok := session.Address(); ok {
		logger.InfoContext(ctx, "Wallet connected", slogx.String("address", address), slogx.Bool("can_sign", session.CanSign()))
	} else {
		logger.WarnContext(ctx, "No wallet configured, running without a session")
	}

	chain, err := eventssui.NewRepository(rpc, moduleConf)
	if err != nil {
		if errors.Is(err, errs.InvalidArgument) || errors.Is(err, errs.Unsupported) {
			return nil, errors.Wrap(err, "invalid events module configuration")
		}
		return nil, errors.Wrap(err, "can't create chain repository")
	}

	txDispatcher, err := dispatcher.New(moduleConf.PackageID, moduleConf.PlatformID, session)
	if err != nil {
		return nil, errors.Wrap(err, "can't create action dispatcher")
	}

	var journal datagateway.ActionJournal
	var cleanupFuncs []func(context.Context) error
	switch strings.ToLower(moduleConf.Database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, moduleConf.Postgres)
		if err != nil {
			if errors.Is(err, errs.InvalidArgument) {
				return nil, errors.Wrap(err, "Invalid Postgres configuration for events module")
			}
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		journal = eventspostgres.NewRepository(pg)
	case "", "none", "memory":
		journal = memory.NewJournal(memory.DefaultCapacity)
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for events module is not supported", moduleConf.Database)
	}

	eventStore := store.New(chain, txDispatcher, session, journal, store.Config{
		GasReserve: moduleConf.GasBudget,
	})

	// Mount API
	httpServer := do.MustInvoke[*fiber.App](injector)
	handler := httphandler.New(eventStore, journal, session)
	if err := handler.Mount(httpServer); err != nil {
		return nil, errors.Wrap(err, "can't mount events API")
	}
	logger.InfoContext(ctx, "Mounted HTTP handler")

	var interval time.Duration
	if !conf.APIOnly {
		interval = moduleConf.RefreshInterval
	}
	return NewWorker(eventStore, interval, cleanupFuncs...), nil
}
