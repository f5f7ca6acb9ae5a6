package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"spiceroute-services/internal/config"
)

// Clients bundles the Firestore and Realtime Database handles used by the
// migration jobs. The Realtime Database is the legacy store being phased out;
// Firestore is the destination.
type Clients struct {
	Firestore *firestore.Client
	RTDB      *db.Client
}

func New(ctx context.Context, cfg config.Config) (*Clients, error) {
	if cfg.FirebaseProjectID == "" {
		return nil, fmt.Errorf("firebase project id is required")
	}

	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   cfg.FirebaseProjectID,
		DatabaseURL: cfg.FirebaseDatabaseURL,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}

	clients := &Clients{Firestore: fs}
	if cfg.FirebaseDatabaseURL != "" {
		rtdb, err := app.Database(ctx)
		if err != nil {
			fs.Close()
			return nil, fmt.Errorf("init realtime database: %w", err)
		}
		clients.RTDB = rtdb
	}
	return clients, nil
}

func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
