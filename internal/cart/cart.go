package cart

import (
	"context"
	"encoding/json"

	"github.com/golang/glog"
)

// KeyPrefix is the key under which a student's cart is stored, followed by their user ID.
const KeyPrefix = "edemy-cart"

// Store holds each student's cart: an ordered list of course IDs without duplicates. Carts live outside the
// document store and are best effort. A lost or corrupt cart reads as empty.
type Store interface {
	Get(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID string, courseID string) ([]string, error)
	Remove(ctx context.Context, userID string, courseID string) ([]string, error)
	Clear(ctx context.Context, userID string) error
}

// Key returns the storage key of the user's cart.
func Key(userID string) string {
	return KeyPrefix + ":" + userID
}

// Decode parses a stored cart. Anything that is not a JSON array of strings is an empty cart.
func Decode(raw string) []string {
	if raw == "" {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		glog.Warningf("discarding corrupt cart %q: %v\n", raw, err)
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return dedupe(ids)
}

// Encode serializes a cart for storage.
func Encode(ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		// A slice of strings always marshals.
		return "[]"
	}
	return string(raw)
}

func add(ids []string, courseID string) []string {
	for _, id := range ids {
		if id == courseID {
			return ids
		}
	}
	return append(ids, courseID)
}

func remove(ids []string, courseID string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != courseID {
			out = append(out, id)
		}
	}
	return out
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
