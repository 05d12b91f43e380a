package auth

import (
	"context"
	"fmt"
	"os"
	"sync"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

var (
	firebaseOnce sync.Once
	firebaseAuth *fbauth.Client
	firebaseErr  error
	projectID    string
)

// firebaseClient initializes the Firebase Auth client on first use. The
// credentials JSON blob is read straight from the environment, no key file.
func firebaseClient(ctx context.Context) (*fbauth.Client, error) {
	firebaseOnce.Do(func() {
		credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
		if credsJSON == "" {
			firebaseErr = fmt.Errorf("FIREBASE_CREDENTIALS_JSON must be set")
			return
		}

		projectID = os.Getenv("FIREBASE_PROJECT_ID")
		if projectID == "" {
			firebaseErr = fmt.Errorf("FIREBASE_PROJECT_ID must be set")
			return
		}

		opt := option.WithCredentialsJSON([]byte(credsJSON))
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
		if err != nil {
			firebaseErr = fmt.Errorf("error initializing Firebase app: %w", err)
			return
		}

		firebaseAuth, firebaseErr = app.Auth(ctx)
	})
	return firebaseAuth, firebaseErr
}
