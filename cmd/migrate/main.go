package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"spiceroute-services/internal/config"
	"spiceroute-services/internal/firebase"
	"spiceroute-services/internal/jsonstore"
	"spiceroute-services/internal/logger"
	"spiceroute-services/internal/migration"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// migrate runs the one-shot legacy data migrations. Jobs are invoked
// sequentially as administrative operations, never as part of request
// serving:
//
//	migrate -job json      copy the JSON data files into Firestore
//	migrate -job rtdb      copy the Realtime Database tree into Firestore
//	migrate -job backfill  attach historical orders to customer accounts
//	migrate -job all       run the three jobs in that order
func main() {
	os.Exit(run())
}

func run() int {
	job := flag.String("job", "all", "migration job: json, rtdb, backfill, or all")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	clients, err := firebase.New(ctx, cfg)
	if err != nil {
		log.Fatal("firebase init failed", zap.Error(err))
	}
	defer clients.Close()

	store, err := jsonstore.New(cfg.DataDir)
	if err != nil {
		log.Fatal("data directory unavailable", zap.Error(err))
	}

	exitCode := 0
	runJob := func(name string, fn func() migration.Summary) {
		log.Info("migration started", zap.String("job", name))
		summary := fn()
		printSummary(name, summary)
		if !summary.Success {
			exitCode = 1
		}
	}

	switch *job {
	case "json":
		runJob("json", func() migration.Summary {
			return migration.MigrateJSONFiles(ctx, clients.Firestore, cfg.DataDir, log)
		})
	case "rtdb":
		requireRTDB(clients, log)
		runJob("rtdb", func() migration.Summary {
			return migration.MigrateRealtimeDatabase(ctx, clients.RTDB, clients.Firestore, log)
		})
	case "backfill":
		runJob("backfill", func() migration.Summary {
			return migration.BackfillCustomerOrders(ctx, clients.Firestore, store, log)
		})
	case "all":
		runJob("json", func() migration.Summary {
			return migration.MigrateJSONFiles(ctx, clients.Firestore, cfg.DataDir, log)
		})
		if clients.RTDB != nil {
			runJob("rtdb", func() migration.Summary {
				return migration.MigrateRealtimeDatabase(ctx, clients.RTDB, clients.Firestore, log)
			})
		} else {
			log.Info("rtdb job skipped (FIREBASE_DATABASE_URL is empty)")
		}
		runJob("backfill", func() migration.Summary {
			return migration.BackfillCustomerOrders(ctx, clients.Firestore, store, log)
		})
	default:
		fmt.Fprintf(os.Stderr, "unknown job %q\n", *job)
		flag.Usage()
		return 2
	}

	return exitCode
}

func requireRTDB(clients *firebase.Clients, log *zap.Logger) {
	if clients.RTDB == nil {
		log.Fatal("rtdb job needs FIREBASE_DATABASE_URL")
	}
}

func printSummary(name string, summary migration.Summary) {
	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Printf("%s: %s\n", name, out)
}
