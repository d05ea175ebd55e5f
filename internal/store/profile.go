package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/existflow/upcycle/internal/catalog"
	"github.com/existflow/upcycle/internal/docstore"
	"github.com/existflow/upcycle/internal/logger"
	"github.com/existflow/upcycle/internal/model"
)

// LoadProfile fetches the bound user's profile and rebuilds the badge
// roster from the catalog. A missing profile document keeps the defaults.
func (s *Store) LoadProfile(ctx context.Context) error {
	uid, gen := s.session()
	if uid == "" {
		return ErrNoSession
	}

	doc, err := s.docs.Get(ctx, docstore.Users, uid)
	if errors.Is(err, docstore.ErrNotFound) {
		doc = docstore.Document{ID: uid, Fields: map[string]any{}}
	} else if err != nil {
		s.warn("Failed to load profile", CollectionProfile, err)
		return fmt.Errorf("load profile: %w", err)
	}

	profile := decodeProfile(doc, uid)
	badges := rosterFor(profile.ClaimedBadges)

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return nil
	}
	s.profile = profile
	s.badges = badges
	s.mu.Unlock()

	s.notify(CollectionProfile)
	return nil
}

func rosterFor(claimed []string) []model.Badge {
	set := make(map[string]bool, len(claimed))
	for _, id := range claimed {
		set[id] = true
	}
	badges := catalog.Badges()
	for i := range badges {
		badges[i].Claimed = set[badges[i].ID]
	}
	return badges
}

// Profile returns a copy of the bound user's profile
func (s *Store) Profile() model.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.profile
	p.ClaimedBadges = cloneSlice(p.ClaimedBadges)
	return p
}

// Points returns the bound user's points
func (s *Store) Points() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Points
}

// Badges returns the badge roster with the user's claims applied
func (s *Store) Badges() []model.Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.badges)
}

// SetPoints overwrites the user's points. The local value only changes
// after the remote write succeeded.
func (s *Store) SetPoints(ctx context.Context, points int) error {
	uid, gen := s.session()
	if uid == "" {
		return ErrNoSession
	}

	if err := s.docs.Update(ctx, docstore.Users, uid, map[string]any{"points": points}); err != nil {
		s.warn("Failed to update points", CollectionProfile, err, logger.F("points", points))
		return fmt.Errorf("set points: %w", err)
	}

	s.mu.Lock()
	if s.generation == gen {
		s.profile.Points = points
	}
	s.mu.Unlock()

	s.notify(CollectionProfile)
	return nil
}

// ClaimBadge claims a badge the user has enough points for. It reports
// false without touching anything when the badge is unknown, already
// claimed or out of reach. The roster flips before the claimed list is
// written, so a failed write leaves the badge claimed locally.
func (s *Store) ClaimBadge(ctx context.Context, badgeID string) (bool, error) {
	uid, _ := s.session()
	if uid == "" {
		return false, ErrNoSession
	}

	s.mu.Lock()
	idx := -1
	for i, b := range s.badges {
		if b.ID == badgeID {
			idx = i
			break
		}
	}
	if idx < 0 || !s.badges[idx].Claimable(s.profile.Points) {
		s.mu.Unlock()
		return false, nil
	}
	s.badges[idx].Claimed = true
	claimed := make([]string, 0, len(s.badges))
	for _, b := range s.badges {
		if b.Claimed {
			claimed = append(claimed, b.ID)
		}
	}
	s.profile.ClaimedBadges = claimed
	badge := s.badges[idx]
	s.mu.Unlock()

	s.notify(CollectionProfile)

	if err := s.docs.Update(ctx, docstore.Users, uid, map[string]any{"claimedBadges": claimed}); err != nil {
		s.warn("Failed to save claimed badges", CollectionProfile, err, logger.F("badge", badgeID))
		return true, fmt.Errorf("claim badge: %w", err)
	}

	s.record(ctx, model.ActivityBadgeUnlock, "Lencana "+badge.Name, "Berhasil mengklaim lencana "+badge.Name)
	return true, nil
}

// EnsureProfile creates the profile document of a new account. An
// existing profile is left alone. It reports whether a document was written.
func (s *Store) EnsureProfile(ctx context.Context, userID, username, email string) (bool, error) {
	if userID == "" {
		return false, ErrNoSession
	}

	_, err := s.docs.Get(ctx, docstore.Users, userID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return false, fmt.Errorf("check profile: %w", err)
	}

	if username == "" {
		username = model.DefaultUsername
	}
	fields := newProfileFields(userID, username, email, s.now().UnixMilli())
	if err := s.docs.Set(ctx, docstore.Users, userID, fields); err != nil {
		return false, fmt.Errorf("create profile: %w", err)
	}

	if s.UserID() == userID {
		if err := s.LoadProfile(ctx); err != nil {
			return true, err
		}
	}
	return true, nil
}
