// Package keyset claims natural keys in a store-side set. The set is the
// uniqueness arbiter across concurrent writers: SADD adds a member at most once.
package keyset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/nearby/internal/db"
)

// maxListedConflicts caps how many conflicting keys go into an error message.
const maxListedConflicts = 5

type store interface {
	SAddEach(ctx context.Context, key string, members []string) ([]bool, error)
	SRem(ctx context.Context, key string, members ...string) (int, error)
}

// Claim adds every member to the set at key. If any member is already present
// the members this call added are removed again and the returned error wraps
// db.ErrKeyExists. Either all members are claimed or none are.
func Claim(ctx context.Context, s store, key string, members []string) error {
	if len(members) == 0 {
		return nil
	}

	added, err := s.SAddEach(ctx, key, members)

	var claimed, conflicts []string
	for i, ok := range added {
		if ok {
			claimed = append(claimed, members[i])
		} else {
			conflicts = append(conflicts, members[i])
		}
	}
	if err != nil {
		// a partial claim has no records behind it
		claimErr := fmt.Errorf("claim: %w", err)
		if relErr := Release(ctx, s, key, claimed); relErr != nil {
			return errors.Join(claimErr, relErr)
		}
		return claimErr
	}
	if len(conflicts) == 0 {
		return nil
	}

	conflictErr := fmt.Errorf("%w: %d conflicting keys (%s)",
		db.ErrKeyExists, len(conflicts), listKeys(conflicts))
	if err := Release(ctx, s, key, claimed); err != nil {
		return errors.Join(conflictErr, err)
	}
	return conflictErr
}

// Release removes previously claimed members.
func Release(ctx context.Context, s store, key string, members []string) error {
	if len(members) == 0 {
		return nil
	}
	if _, err := s.SRem(ctx, key, members...); err != nil {
		return fmt.Errorf("release claims: %w", err)
	}
	return nil
}

func listKeys(keys []string) string {
	shown := keys
	if len(shown) > maxListedConflicts {
		shown = shown[:maxListedConflicts]
	}
	quoted := make([]string, len(shown))
	for i, k := range shown {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	out := strings.Join(quoted, ", ")
	if len(keys) > len(shown) {
		out += ", ..."
	}
	return out
}
