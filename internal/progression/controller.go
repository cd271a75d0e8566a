package progression

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/verte-zerg/moneydetectives/internal/economy"
	"github.com/verte-zerg/moneydetectives/internal/leaderboard"
	"github.com/verte-zerg/moneydetectives/internal/model"
)

// Persister loads and saves snapshots.
type Persister interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// KV is a key/value store that can write several keys in one transaction.
type KV interface {
	GetAll(ctx context.Context, keys []string) (map[string]string, error)
	PutAll(ctx context.Context, values map[string]string) error
}

// KVPersister stores snapshots as the persisted key set.
type KVPersister struct {
	kv KV
}

// NewKVPersister wraps a key/value store.
func NewKVPersister(kv KV) *KVPersister {
	return &KVPersister{kv: kv}
}

// Load implements Persister. On a read error the default snapshot is
// returned with the error.
func (p *KVPersister) Load(ctx context.Context) (Snapshot, error) {
	values, err := p.kv.GetAll(ctx, Keys)
	if err != nil {
		return DefaultSnapshot(), fmt.Errorf("load progress: %w", err)
	}
	return Decode(values)
}

// Save implements Persister. All keys are written together.
func (p *KVPersister) Save(ctx context.Context, snap Snapshot) error {
	values, err := Encode(snap)
	if err != nil {
		return err
	}
	if err := p.kv.PutAll(ctx, values); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Controller funnels progression changes through State and persists the
// result after each one. Save failures are logged and exposed by SaveErr;
// the in-memory state is kept.
type Controller struct {
	state     *State
	persister Persister
	now       func() time.Time
	saveErr   error
}

// NewController loads saved progress. Load failures fall back to defaults.
func NewController(ctx context.Context, p Persister) *Controller {
	snap, err := p.Load(ctx)
	if err != nil {
		log.Printf("failed to load progress, using defaults where needed: %v", err)
	}
	return &Controller{
		state:     FromSnapshot(snap),
		persister: p,
		now:       time.Now,
	}
}

// SetClock overrides the time source used for leaderboard timestamps.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// SaveErr returns the error of the most recent save, or nil.
func (c *Controller) SaveErr() error {
	return c.saveErr
}

// Wallet returns the star balance.
func (c *Controller) Wallet() int { return c.state.Wallet() }

// Rank returns the current tier.
func (c *Controller) Rank() economy.Rank { return c.state.Rank() }

// Progress returns the progress toward the next tier.
func (c *Controller) Progress() economy.Progress { return c.state.Progress() }

// Avatar returns the equipped outfit.
func (c *Controller) Avatar() model.AvatarConfig { return c.state.Avatar() }

// Leaderboard returns the board.
func (c *Controller) Leaderboard() leaderboard.Board { return c.state.Leaderboard() }

// PlayerName returns the stored player name.
func (c *Controller) PlayerName() string { return c.state.PlayerName() }

// Purchased returns owned item keys.
func (c *Controller) Purchased() []string { return c.state.Purchased() }

// Owns reports whether the item is free or bought.
func (c *Controller) Owns(item model.StoreItem) bool { return c.state.Owns(item) }

// Equipped reports whether the item is worn.
func (c *Controller) Equipped(item model.StoreItem) bool { return c.state.Equipped(item) }

// CanAfford reports whether the wallet covers the item.
func (c *Controller) CanAfford(item model.StoreItem) bool { return c.state.CanAfford(item) }

// SetPlayerName stores the player's name.
func (c *Controller) SetPlayerName(ctx context.Context, name string) {
	c.state.SetPlayerName(name)
	c.save(ctx)
}

// Select equips or buys an item. Unaffordable items are a no-op.
func (c *Controller) Select(ctx context.Context, item model.StoreItem) (Outcome, error) {
	outcome, err := c.state.Select(item)
	if err != nil {
		return outcome, err
	}
	if outcome != OutcomeUnaffordable {
		c.save(ctx)
	}
	return outcome, nil
}

// CompleteSession folds a finished game into the wallet and leaderboard.
func (c *Controller) CompleteSession(ctx context.Context, finalScore int) (model.LeaderboardEntry, error) {
	entry, err := c.state.CompleteSession(finalScore, c.now())
	if err != nil {
		return model.LeaderboardEntry{}, err
	}
	c.save(ctx)
	return entry, nil
}

func (c *Controller) save(ctx context.Context) {
	c.saveErr = c.persister.Save(ctx, c.state.Snapshot())
	if c.saveErr != nil {
		log.Printf("progress not saved: %v", c.saveErr)
	}
}
