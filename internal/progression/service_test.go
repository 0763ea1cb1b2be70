package progression

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/riftborn/internal/config"
	"github.com/udisondev/riftborn/internal/data"
)

func newTestService(t *testing.T, shards int) (*Service, *Save) {
	t.Helper()
	svc := NewService(NewMemoryRepository(), config.Progression{StartingShards: shards, ShardsPerRun: 50})
	save, err := svc.CreateSave(context.Background(), data.ClassWarrior)
	require.NoError(t, err)
	return svc, save
}

func TestService_CreateSave(t *testing.T) {
	svc, save := newTestService(t, 300)

	assert.NotEqual(t, uuid.Nil, save.ID)
	assert.Equal(t, 300, save.Shards)
	assert.Empty(t, save.Talents)

	_, err := svc.CreateSave(context.Background(), "paladin")
	assert.Error(t, err)
}

func TestService_Purchase(t *testing.T) {
	ctx := context.Background()
	svc, save := newTestService(t, 300)

	got, err := svc.Purchase(ctx, save.ID, "warrior.bulwark.1")
	require.NoError(t, err)
	assert.Equal(t, 250, got.Shards)
	assert.Equal(t, []data.TalentID{"warrior.bulwark.1"}, got.Talents)

	got, err = svc.Purchase(ctx, save.ID, "warrior.bulwark.2")
	require.NoError(t, err)
	assert.Equal(t, 150, got.Shards)
}

func TestService_PurchaseRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		shards  int
		owned   []data.TalentID
		buy     data.TalentID
		wantErr error
	}{
		{name: "unknown talent", shards: 300, buy: "warrior.bulwark.9", wantErr: ErrUnknownTalent},
		{name: "other class", shards: 300, buy: "mage.flow.1", wantErr: ErrClassMismatch},
		{name: "already owned", shards: 300, owned: []data.TalentID{"warrior.might.1"}, buy: "warrior.might.1", wantErr: ErrAlreadyOwned},
		{name: "skipping a tier", shards: 300, buy: "warrior.might.2", wantErr: ErrPrerequisiteMissing},
		{name: "prerequisite from other branch", shards: 300, owned: []data.TalentID{"warrior.might.1"}, buy: "warrior.vigor.2", wantErr: ErrPrerequisiteMissing},
		{name: "too poor", shards: 49, buy: "warrior.vigor.1", wantErr: ErrInsufficientShards},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, save := newTestService(t, tt.shards+100*len(tt.owned))
			for _, id := range tt.owned {
				_, err := svc.Purchase(ctx, save.ID, id)
				require.NoError(t, err)
			}
			before, err := svc.Save(ctx, save.ID)
			require.NoError(t, err)

			_, err = svc.Purchase(ctx, save.ID, tt.buy)
			require.ErrorIs(t, err, tt.wantErr)

			after, err := svc.Save(ctx, save.ID)
			require.NoError(t, err)
			assert.Equal(t, before.Shards, after.Shards, "rejected purchase spends nothing")
			assert.Equal(t, before.Talents, after.Talents)
		})
	}
}

func TestService_PurchaseUnknownSave(t *testing.T) {
	svc, _ := newTestService(t, 300)

	_, err := svc.Purchase(context.Background(), uuid.New(), "warrior.bulwark.1")
	assert.ErrorIs(t, err, ErrSaveNotFound)
}

func TestService_Loadout(t *testing.T) {
	ctx := context.Background()
	svc, save := newTestService(t, 1000)

	for _, id := range []data.TalentID{"warrior.vigor.1", "warrior.bulwark.1", "warrior.vigor.2", "warrior.bulwark.2"} {
		_, err := svc.Purchase(ctx, save.ID, id)
		require.NoError(t, err)
	}

	loadout, err := svc.Loadout(ctx, save.ID)
	require.NoError(t, err)

	var ids []data.TalentID
	for _, t := range loadout {
		ids = append(ids, t.ID)
	}
	assert.Equal(t, []data.TalentID{
		"warrior.bulwark.1", "warrior.bulwark.2",
		"warrior.vigor.1", "warrior.vigor.2",
	}, ids)
}

func TestService_Available(t *testing.T) {
	ctx := context.Background()
	svc, save := newTestService(t, 300)

	avail, err := svc.Available(ctx, save.ID)
	require.NoError(t, err)
	require.Len(t, avail, 3, "tier 1 of every branch")
	for _, tal := range avail {
		assert.Equal(t, 1, tal.Tier)
	}

	_, err = svc.Purchase(ctx, save.ID, "warrior.might.1")
	require.NoError(t, err)

	avail, err = svc.Available(ctx, save.ID)
	require.NoError(t, err)
	var ids []data.TalentID
	for _, tal := range avail {
		ids = append(ids, tal.ID)
	}
	assert.Equal(t, []data.TalentID{"warrior.bulwark.1", "warrior.might.2", "warrior.vigor.1"}, ids)
}

func TestService_RecordRun(t *testing.T) {
	ctx := context.Background()
	svc, save := newTestService(t, 0)

	got, err := svc.RecordRun(ctx, save.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Crits)
	assert.Equal(t, 50, got.Shards)
	assert.Equal(t, 1, got.Runs)

	got, err = svc.RecordRun(ctx, save.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Crits, "negative crit counts are ignored")
	assert.Equal(t, 2, got.Runs)

	_, err = svc.RecordRun(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrSaveNotFound)
}

func TestMemoryRepository_ConcurrentPurchaseSpendsOnce(t *testing.T) {
	ctx := context.Background()
	svc, save := newTestService(t, 50)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		oks int
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Purchase(ctx, save.ID, "warrior.bulwark.1"); err == nil {
				mu.Lock()
				oks++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, oks)
	got, err := svc.Save(ctx, save.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Shards)
	assert.Len(t, got.Talents, 1)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	s := &Save{ID: uuid.New(), Class: data.ClassMage, Shards: 10}
	require.NoError(t, repo.CreateSave(ctx, s))

	got, err := repo.LoadSave(ctx, s.ID)
	require.NoError(t, err)
	got.Shards = 9999
	got.Talents = append(got.Talents, "mage.flow.1")

	again, err := repo.LoadSave(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, again.Shards)
	assert.Empty(t, again.Talents)

	assert.Error(t, repo.CreateSave(ctx, s), "duplicate id")
}
