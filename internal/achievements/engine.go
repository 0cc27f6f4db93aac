package achievements

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/metrics"
	"github.com/yukikurage/academic-hub-api/internal/models"
)

// Store persists grants. Insert must be a no-op for an existing (user, type) pair.
type Store interface {
	Exists(ctx context.Context, userID uint64, achievementType string) (bool, error)
	Insert(ctx context.Context, userID uint64, achievementType string, earnedAt time.Time) (bool, error)
	ListByUser(ctx context.Context, userID uint64) ([]models.Achievement, error)
}

// CountFunc returns the authoritative count of a domain for a user.
type CountFunc func(ctx context.Context, userID uint64) (int64, error)

// Counters maps each domain to its count source.
type Counters map[Domain]CountFunc

// Earned is a grant joined with its catalog entry.
type Earned struct {
	Definition
	EarnedAt time.Time `json:"earned_at"`
}

// Engine grants achievements after engagement events.
// Check methods never fail the caller; errors are logged and the partial result returned.
type Engine struct {
	store    Store
	counters Counters
	log      *logger.Logger
	now      func() time.Time
}

func NewEngine(store Store, counters Counters, log *logger.Logger) *Engine {
	return &Engine{
		store:    store,
		counters: counters,
		log:      log,
		now:      time.Now,
	}
}

// GrantIfNew stores the achievement unless the user already holds it.
// Unknown types are ignored.
func (e *Engine) GrantIfNew(ctx context.Context, userID uint64, t Type) (bool, error) {
	if _, ok := Lookup(t); !ok {
		return false, nil
	}

	exists, err := e.store.Exists(ctx, userID, string(t))
	if err != nil {
		return false, fmt.Errorf("failed to check achievement %s: %w", t, err)
	}
	if exists {
		return false, nil
	}

	inserted, err := e.store.Insert(ctx, userID, string(t), e.now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to grant achievement %s: %w", t, err)
	}
	if inserted {
		metrics.AchievementsGranted.WithLabelValues(string(t)).Inc()
		e.log.Info("achievement granted", "user_id", userID, "achievement", string(t))
	}
	return inserted, nil
}

func (e *Engine) CheckBookmarks(ctx context.Context, userID uint64) []Definition {
	return e.check(ctx, userID, DomainBookmarks)
}

func (e *Engine) CheckDownloads(ctx context.Context, userID uint64) []Definition {
	return e.check(ctx, userID, DomainDownloads)
}

func (e *Engine) CheckUploads(ctx context.Context, userID uint64) []Definition {
	return e.check(ctx, userID, DomainUploads)
}

// CheckGoals evaluates both goal creation and goal completion badges.
func (e *Engine) CheckGoals(ctx context.Context, userID uint64) []Definition {
	return e.check(ctx, userID, DomainGoalsCreated, DomainGoalsCompleted)
}

func (e *Engine) CheckProfile(ctx context.Context, userID uint64) []Definition {
	return e.check(ctx, userID, DomainProfile)
}

func (e *Engine) CheckForum(ctx context.Context, userID uint64) []Definition {
	return e.check(ctx, userID, DomainForum)
}

func (e *Engine) check(ctx context.Context, userID uint64, domains ...Domain) []Definition {
	granted := []Definition{}

	for _, domain := range domains {
		count, err := e.count(ctx, userID, domain)
		if err != nil {
			e.log.Warn("achievement count failed", "user_id", userID, "domain", string(domain), "error", err)
			continue
		}

		for _, def := range ByDomain(domain) {
			if count < def.Threshold {
				continue
			}
			ok, err := e.GrantIfNew(ctx, userID, def.Type)
			if err != nil {
				e.log.Warn("achievement grant failed", "user_id", userID, "achievement", string(def.Type), "error", err)
				continue
			}
			if ok {
				granted = append(granted, def)
			}
		}
	}

	return granted
}

func (e *Engine) count(ctx context.Context, userID uint64, domain Domain) (int64, error) {
	counter, ok := e.counters[domain]
	if !ok {
		return 0, fmt.Errorf("no counter registered for domain %s", domain)
	}
	return counter(ctx, userID)
}

// List returns the user's grants with catalog display data, oldest first.
// Stored types missing from the catalog are skipped.
func (e *Engine) List(ctx context.Context, userID uint64) ([]Earned, error) {
	grants, err := e.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	earned := make([]Earned, 0, len(grants))
	for _, g := range grants {
		def, ok := Lookup(Type(g.Type))
		if !ok {
			continue
		}
		earned = append(earned, Earned{Definition: def, EarnedAt: g.EarnedAt})
	}
	return earned, nil
}
