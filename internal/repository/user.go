package repository

import (
	"context"
	"fmt"
	"time"

	"edemy/internal/models"
	"edemy/internal/qerrors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	firebaseAuth "firebase.google.com/go/auth"
)

// VerifySessionCookie verifies that the given session cookie is valid and returns the associated User if valid.
func (fr *FirebaseRepository) VerifySessionCookie(ctx context.Context, sessionCookie string) (*models.User, error) {
	decoded, err := fr.authClient.VerifySessionCookieAndCheckRevoked(ctx, sessionCookie)
	if err != nil {
		return nil, fmt.Errorf("error verifying cookie: %v\n", err)
	}

	user, err := fr.GetUserByID(ctx, decoded.UID)
	if err != nil {
		return nil, fmt.Errorf("error getting user from cookie: %w", err)
	}

	return user, nil
}

// CreateSessionCookie exchanges an ID token for a session cookie. This also verifies the ID token.
func (fr *FirebaseRepository) CreateSessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error) {
	return fr.authClient.SessionCookie(ctx, idToken, expiresIn)
}

// RevokeSessions invalidates every session cookie issued to the user.
func (fr *FirebaseRepository) RevokeSessions(ctx context.Context, userID string) error {
	return fr.authClient.RevokeRefreshTokens(ctx, userID)
}

func (fr *FirebaseRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := validateID(id); err != nil {
		return nil, qerrors.UserNotFoundError
	}

	fbUser, err := fr.authClient.GetUser(ctx, id)
	if err != nil {
		return nil, qerrors.UserNotFoundError
	}

	isAdmin, err := fr.isAdmin(ctx, fbUser.UID)
	if err != nil {
		return nil, err
	}

	return fbUserToUserRecord(fbUser, isAdmin), nil
}

func (fr *FirebaseRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	admins, err := fr.adminIDs(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0)
	iter := fr.authClient.Users(ctx, "")
	for {
		fbUser, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing user_mgt: %s\n", err)
		}

		users = append(users, fbUserToUserRecord(fbUser.UserRecord, admins[fbUser.UID]))
	}

	return users, nil
}

// ClaimAdmin grants the admin role to the user. Only the first admin can be claimed this way; after that
// only an existing admin may claim it again.
func (fr *FirebaseRepository) ClaimAdmin(ctx context.Context, userID string) error {
	if err := validateID(userID); err != nil {
		return qerrors.UserNotFoundError
	}

	roles := fr.firestoreClient.Collection(models.FirestoreAdminRolesCollection)
	return fr.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(roles.Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			own, err := tx.Get(roles.Doc(userID))
			if isNotFound(err) {
				return qerrors.NotAdminError
			}
			if err != nil {
				return err
			}
			if !own.Exists() {
				return qerrors.NotAdminError
			}
		}
		return tx.Set(roles.Doc(userID), map[string]interface{}{"isAdmin": true})
	})
}

// isAdmin reports whether an admin role document exists for the user.
func (fr *FirebaseRepository) isAdmin(ctx context.Context, userID string) (bool, error) {
	doc, err := fr.firestoreClient.Collection(models.FirestoreAdminRolesCollection).Doc(userID).Get(ctx)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error getting admin role for %s: %w", userID, err)
	}
	return doc.Exists(), nil
}

func (fr *FirebaseRepository) adminIDs(ctx context.Context) (map[string]bool, error) {
	refs, err := fr.firestoreClient.Collection(models.FirestoreAdminRolesCollection).DocumentRefs(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("error listing admin roles: %w", err)
	}
	admins := make(map[string]bool, len(refs))
	for _, ref := range refs {
		admins[ref.ID] = true
	}
	return admins, nil
}

// Helpers

// fbUserToUserRecord converts a Firebase UserRecord into a User.
func fbUserToUserRecord(fbUser *firebaseAuth.UserRecord, isAdmin bool) *models.User {
	profile := &models.Profile{IsAdmin: isAdmin}
	if fbUser.UserInfo != nil {
		profile.DisplayName = fbUser.DisplayName
		profile.Email = fbUser.Email
		profile.PhotoURL = fbUser.PhotoURL
	}

	user := &models.User{
		ID:       fbUser.UID,
		Profile:  profile,
		Disabled: fbUser.Disabled,
	}
	if fbUser.UserMetadata != nil {
		user.CreationTimestamp = fbUser.UserMetadata.CreationTimestamp
		user.LastLogInTimestamp = fbUser.UserMetadata.LastLogInTimestamp
	}
	return user
}
