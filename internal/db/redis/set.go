package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/nearby/internal/db"
)

// SAdd adds members to a set and returns how many were new.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) (int, error) {
	if len(members) == 0 {
		return 0, nil
	}
	cmd := s.b().Sadd().Key(key).Member(members...).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSAdd, Err: err}
	}
	return int(n), nil
}

// SAddEach issues one SADD per member in a single DoMulti round-trip. The
// result reports, per member, whether this call added it; SADD is atomic per
// member, so concurrent callers never both see true for the same member.
// Replies are independent: on error the flags of the members that did
// succeed are still returned so the caller can undo them.
func (s *Store) SAddEach(ctx context.Context, key string, members []string) ([]bool, error) {
	if len(members) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(members))
	for i, m := range members {
		cmds[i] = s.b().Sadd().Key(key).Member(m).Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	added := make([]bool, len(members))
	var firstErr error
	for i, res := range results {
		n, err := res.AsInt64()
		if err != nil {
			if firstErr == nil {
				firstErr = &db.Error{Op: db.OpSAdd, Err: fmt.Errorf("member %s: %w", members[i], err)}
			}
			continue
		}
		added[i] = n == 1
	}
	return added, firstErr
}

// SRem removes members from a set and returns how many were present.
func (s *Store) SRem(ctx context.Context, key string, members ...string) (int, error) {
	if len(members) == 0 {
		return 0, nil
	}
	cmd := s.b().Srem().Key(key).Member(members...).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSRem, Err: err}
	}
	return int(n), nil
}

// SMembers returns all members of a set. Order is unspecified.
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	cmd := s.b().Smembers().Key(key).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	return members, nil
}

// SMIsMember reports membership for each of members.
func (s *Store) SMIsMember(ctx context.Context, key string, members []string) ([]bool, error) {
	if len(members) == 0 {
		return nil, nil
	}
	cmd := s.b().Smismember().Key(key).Member(members...).Build()
	flags, err := s.do(ctx, cmd).AsIntSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSMIsMember, Err: err}
	}
	if len(flags) != len(members) {
		return nil, &db.Error{
			Op:  db.OpSMIsMember,
			Err: fmt.Errorf("expected %d replies, got %d", len(members), len(flags)),
		}
	}
	out := make([]bool, len(flags))
	for i, f := range flags {
		out[i] = f == 1
	}
	return out, nil
}

// SCard returns the set cardinality. A missing key yields 0.
func (s *Store) SCard(ctx context.Context, key string) (int, error) {
	cmd := s.b().Scard().Key(key).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSCard, Err: err}
	}
	return int(n), nil
}
