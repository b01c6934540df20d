// refreshjob runs the membership status refresher once and exits.
// For schedulers that exec a binary instead of calling the cron
// endpoint on the access service.
package main

import (
	"context"
	"os"
	"time"

	config "github.com/fitclub/gym-services/configs"
	"github.com/fitclub/gym-services/internal/accesssvc/db"
	"github.com/fitclub/gym-services/internal/accesssvc/service"
	"github.com/fitclub/gym-services/internal/accesssvc/store"
	"github.com/fitclub/gym-services/internal/localdate"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "refresh"

func init() {
	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_job_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	clock, err := localdate.NewZoneClock(os.Getenv("MEMBERSHIP_STATUS_TIMEZONE"))
	if err != nil {
		log.Fatalf("Failed to load time zone: %v", err)
	}

	membershipStore := store.NewMembershipStore(dbpool)
	refresher := service.NewRefreshService(membershipStore, clock)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := refresher.Refresh(ctx, service.RefreshOptions{})
	if err != nil {
		log.Fatalf("membership status refresh failed: %v", err)
	}

	log.Infof("membership status refresh done: effective %s (%s), %d marked expired, %d marked active",
		result.EffectiveDate, result.TimeZone, result.MarkedExpired, result.MarkedActive)
}
