package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/fitclub/gym-services/configs"
	"github.com/fitclub/gym-services/internal/accesssvc/broker"
	"github.com/fitclub/gym-services/internal/accesssvc/db"
	"github.com/fitclub/gym-services/internal/accesssvc/events"
	handlers "github.com/fitclub/gym-services/internal/accesssvc/handlers"
	"github.com/fitclub/gym-services/internal/accesssvc/photos"
	"github.com/fitclub/gym-services/internal/accesssvc/service"
	"github.com/fitclub/gym-services/internal/accesssvc/store"
	mongodb "github.com/fitclub/gym-services/internal/db"
	"github.com/fitclub/gym-services/internal/localdate"
	nats "github.com/fitclub/gym-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "access"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func buildClock() *localdate.Clock {
	if v := os.Getenv("TIME_OFFSET_MINUTES"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid TIME_OFFSET_MINUTES value: %v", err)
		}
		return localdate.NewFixedOffsetClock(offset)
	}

	clock, err := localdate.NewZoneClock(os.Getenv("MEMBERSHIP_STATUS_TIMEZONE"))
	if err != nil {
		log.Fatalf("Failed to load time zone: %v", err)
	}
	return clock
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	clock := buildClock()
	log.Infof("calendar clock ready, zone %s", clock.Zone())

	uidLength := 0
	if v := os.Getenv("CARD_UID_LENGTH"); v != "" {
		uidLength, err = strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid CARD_UID_LENGTH value: %v", err)
		}
	}

	cardStore := store.NewCardStore(dbpool)
	cardService := service.NewCardService(cardStore)

	membershipStore := store.NewMembershipStore(dbpool)
	membershipService := service.NewMembershipService(membershipStore)

	athleteStore := store.NewAthleteStore(dbpool)
	accessLogStore := store.NewAccessLogStore(dbpool)
	athleteService := service.NewAthleteService(athleteStore, accessLogStore)

	refreshService := service.NewRefreshService(membershipStore, clock)

	// Connect to NATS for the live access feed
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	accessBroker := broker.NewBroker(n.Conn)

	// kiosk reader diagnostics, optional
	recorder := events.NewRecorder(nil, 0)
	if os.Getenv("ENABLE_CARD_EVENTS") == "true" {
		mdb, cancel, err := mongodb.ConnectToDB(os.Getenv("MONGODB_URI"))
		if err != nil {
			log.Fatalf("Failed to connect to Mongo: %v", err)
		}
		defer cancel()

		if err := mongodb.EnsureTTLIndex(context.Background(), mdb, events.Collection); err != nil {
			log.Fatalf("Failed to ensure card events TTL index: %v", err)
		}
		recorder = events.NewRecorder(mdb, 0)
		log.Printf("card event diagnostics enabled")
	}

	accessService := service.NewAccessService(
		cardStore, membershipStore, accessLogStore,
		photos.NewPublicResolverFromEnv(), clock, accessBroker, uidLength)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(accessService, athleteService, cardService, membershipService, refreshService, recorder, clock)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("ACCESS_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
