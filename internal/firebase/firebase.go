package firebase

import (
	"context"
	"fmt"

	firebaseSDK "firebase.google.com/go"
	"google.golang.org/api/option"
)

// FirebaseApp is a global variable to hold the initialized Firebase App object
var FirebaseApp *firebaseSDK.App
var FirebaseContext context.Context

// Initialize sets up FirebaseApp from a service account credentials file. It must be called before
// repository.NewFirebaseRepository.
func Initialize(ctx context.Context, credentialsFile string) error {
	if credentialsFile == "" {
		return fmt.Errorf("no firebase credentials file configured")
	}

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebaseSDK.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing firebase app: %w", err)
	}

	FirebaseApp = app
	FirebaseContext = ctx
	return nil
}
