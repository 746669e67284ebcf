package bootstrap

import (
	"context"
	"log"
	"time"

	"notekeeper-be/internal/config"
	"notekeeper-be/internal/controller"
	"notekeeper-be/internal/handler"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/repository/memory"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/internal/service"
	"notekeeper-be/internal/websocket"
	"notekeeper-be/pkg/changeset"
	"notekeeper-be/pkg/clock"
	"notekeeper-be/pkg/listview"

	pktNats "notekeeper-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NotebookController controller.INotebookController
	NoteController     controller.INoteController
	ViewController     controller.IViewController
	NoticeController   controller.INoticeController

	// WebSockets
	ViewHandler  *handler.ViewHandler
	WebSocketHub *websocket.Hub

	// Background Services (Exposed for main.go to run)
	Synchronizer    *listview.Synchronizer
	ChangeBus       *changeset.Bus
	ActivityService service.IActivityService

	Guard  fiber.Handler
	Logger logger.ILogger

	closers []func()
}

// NewContainer wires the application. db may be nil when the memory store is
// selected.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger, Guard: serverutils.JwtMiddleware(cfg.App.JwtSecret)}

	// 1. Change bus and store
	bus := changeset.NewBus(logger.NewWatermillAdapter(sysLogger))
	c.ChangeBus = bus

	var uowFactory unitofwork.RepositoryFactory
	if cfg.Database.Driver == "memory" || db == nil {
		log.Printf("[INFO] Using in-memory store")
		uowFactory = memory.NewRepositoryFactory(memory.NewDatabase(), bus)
	} else {
		uowFactory = unitofwork.NewRepositoryFactory(db, bus)
	}

	// 2. Infrastructure
	var publisher service.IPublisherService = service.NewNoopPublisher()
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			activityLogger := logger.NewIsolatedLogger("logs/activity.log")
			c.ActivityService = service.NewActivityService(natsSub, activityLogger)
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
			rdb = nil
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.ViewLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	c.WebSocketHub = wsHub

	// 3. Services
	clk := clock.NewMonotonic()
	noticeService := service.NewNoticeService(cfg.Views.NoticeLogSize, sysLogger)
	drafts := service.NewDraftStore(24 * time.Hour)

	synchronizer := listview.NewSynchronizer(service.NewListViewSource(uowFactory), listview.Config{
		IdleTTL:   cfg.Views.IdleTTL,
		Observers: []listview.Observer{wsHub},
		OnError: func(viewId string, err error) {
			noticeService.Record("refresh view", "list could not be refreshed", err)
		},
	})
	c.Synchronizer = synchronizer

	notebookService := service.NewNotebookService(uowFactory, publisher, noticeService, clk, sysLogger)
	noteService := service.NewNoteService(uowFactory, publisher, noticeService, drafts, clk, cfg.Views.NotesDescending(), sysLogger)
	viewService := service.NewViewService(synchronizer, uowFactory, cfg.Views.NotesDescending())

	// 4. Controllers
	c.NotebookController = controller.NewNotebookController(notebookService, noteService)
	c.NoteController = controller.NewNoteController(noteService)
	c.ViewController = controller.NewViewController(viewService)
	c.NoticeController = controller.NewNoticeController(noticeService)
	c.ViewHandler = handler.NewViewHandler(synchronizer, wsHub, cfg.App.JwtSecret, wsLogger)

	return c
}

// Start runs the background workers until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.Synchronizer.Start(ctx, c.ChangeBus); err != nil {
		return err
	}

	if c.ActivityService != nil {
		if err := c.ActivityService.Start(ctx); err != nil {
			log.Printf("[WARN] Activity subscriber not started: %v", err)
		}
	}
	return nil
}

func (c *Container) Close() {
	c.Synchronizer.CloseAll()
	for _, closeFn := range c.closers {
		closeFn()
	}
	_ = c.ChangeBus.Close()
	_ = c.Logger.Sync()
}
