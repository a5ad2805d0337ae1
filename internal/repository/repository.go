package repository

import (
	"context"
	"fmt"
	"log"
	"sync"

	"edemy/internal/firebase"
	"edemy/internal/models"

	firebaseAuth "firebase.google.com/go/auth"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirebaseRepository struct {
	authClient      *firebaseAuth.Client
	firestoreClient *firestore.Client

	// listenerCtx scopes the snapshot listeners; Close cancels it.
	listenerCtx   context.Context
	stopListeners context.CancelFunc

	coursesLock *sync.RWMutex
	courses     map[string]*models.Course
}

// NewFirebaseRepository connects to Firebase Auth and Firestore using the app set up by
// firebase.Initialize, and blocks until the course catalog has been loaded.
func NewFirebaseRepository() (*FirebaseRepository, error) {
	if firebase.FirebaseApp == nil {
		return nil, fmt.Errorf("firebase app is not initialized")
	}

	fr := &FirebaseRepository{
		coursesLock: &sync.RWMutex{},
		courses:     make(map[string]*models.Course),
	}
	fr.listenerCtx, fr.stopListeners = context.WithCancel(firebase.FirebaseContext)

	authClient, err := firebase.FirebaseApp.Auth(firebase.FirebaseContext)
	if err != nil {
		return nil, fmt.Errorf("Auth client error: %v\n", err)
	}
	fr.authClient = authClient

	firestoreClient, err := firebase.FirebaseApp.Firestore(firebase.FirebaseContext)
	if err != nil {
		return nil, fmt.Errorf("Firestore client error: %v\n", err)
	}
	fr.firestoreClient = firestoreClient

	// Execute the listeners sequentially, in case later listeners need to utilize data fetched
	// by previous listeners
	initFns := []func() error{fr.initializeCoursesListener}
	for _, initFn := range initFns {
		if err := initFn(); err != nil {
			fr.Close()
			return nil, err
		}
	}

	log.Printf("✅ Successfully created Firebase repository client")
	return fr, nil
}

// Close stops the snapshot listeners and closes the Firestore client.
func (fr *FirebaseRepository) Close() error {
	fr.stopListeners()
	if fr.firestoreClient == nil {
		return nil
	}
	return fr.firestoreClient.Close()
}

// createCollectionInitializer calls handleDocs with the full result set of the query every time it changes.
// ready receives nil once the first snapshot has been handled, or the error that prevented it. The call
// blocks until the listener context is cancelled or the listener fails.
func (fr *FirebaseRepository) createCollectionInitializer(query firestore.Query, ready chan<- error, handleDocs func(docs []*firestore.DocumentSnapshot) error) error {
	it := query.Snapshots(fr.listenerCtx)
	defer it.Stop()

	first := true
	signal := func(err error) {
		if first {
			first = false
			ready <- err
		}
	}

	for {
		snap, err := it.Next()
		if err != nil {
			if code := status.Code(err); code == codes.Canceled || code == codes.DeadlineExceeded || fr.listenerCtx.Err() != nil {
				signal(err)
				return nil
			}
			signal(err)
			return err
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			signal(err)
			return err
		}

		if err := handleDocs(docs); err != nil {
			signal(err)
			return err
		}
		signal(nil)
	}
}

// isNotFound reports whether a Firestore error means the document does not exist.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
