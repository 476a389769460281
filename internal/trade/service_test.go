package trade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GachaBot_Go/internal/domain"
	"github.com/osse101/GachaBot_Go/internal/rarity"
	"github.com/osse101/GachaBot_Go/internal/repository"
)

var (
	luffy = domain.Character{ID: "1", Name: "Luffy", Series: "One Piece", Rarity: rarity.Common}
	zoro  = domain.Character{ID: "2", Name: "Zoro", Series: "One Piece", Rarity: rarity.Rare}
)

func newFixture() (Service, *repository.FakeInventory) {
	inv := repository.NewFakeInventory()
	inv.Put(&domain.UserRecord{UserID: "alice", Characters: []domain.Character{luffy, luffy}})
	inv.Put(&domain.UserRecord{UserID: "bob", Characters: []domain.Character{zoro}})
	return NewService(inv), inv
}

func TestTradeLifecycle(t *testing.T) {
	svc, inv := newFixture()
	ctx := context.Background()

	session, err := svc.ProposeTrade(ctx, "alice", "bob", "1", "2")
	require.NoError(t, err)
	assert.Equal(t, KindTrade, session.Kind)
	assert.NotEmpty(t, session.ID)

	done, err := svc.Confirm(ctx, session.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, session.ID, done.ID)

	alice, err := inv.FindOne(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, alice.Characters, 2, "one of two Luffy copies traded away")
	assert.Equal(t, "1", alice.Characters[0].ID)
	assert.Equal(t, "2", alice.Characters[1].ID)

	bob, err := inv.FindOne(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, bob.Characters, 1)
	assert.Equal(t, "1", bob.Characters[0].ID)

	// The session is consumed.
	_, err = svc.Confirm(ctx, session.ID, "bob")
	assert.ErrorIs(t, err, domain.ErrNoPendingSession)
}

func TestGiftLifecycle(t *testing.T) {
	svc, inv := newFixture()
	ctx := context.Background()

	session, err := svc.ProposeGift(ctx, "alice", "bob", "1")
	require.NoError(t, err)
	assert.Equal(t, KindGift, session.Kind)

	_, err = svc.Confirm(ctx, session.ID, "bob")
	require.NoError(t, err)

	alice, err := inv.FindOne(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, alice.Characters, 1)

	bob, err := inv.FindOne(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bob.Characters, 2)
}

func TestProposeValidation(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	_, err := svc.ProposeTrade(ctx, "alice", "alice", "1", "1")
	assert.ErrorIs(t, err, domain.ErrSelfTarget)

	_, err = svc.ProposeTrade(ctx, "alice", "bob", "404", "2")
	assert.ErrorIs(t, err, domain.ErrNotOwned)

	_, err = svc.ProposeTrade(ctx, "alice", "bob", "1", "404")
	assert.ErrorIs(t, err, domain.ErrNotOwned)

	_, err = svc.ProposeGift(ctx, "ghost", "bob", "1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestOnlyRecipientConfirms(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	session, err := svc.ProposeTrade(ctx, "alice", "bob", "1", "2")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, session.ID, "alice")
	assert.ErrorIs(t, err, domain.ErrNotYourSession)
	_, err = svc.Confirm(ctx, session.ID, "mallory")
	assert.ErrorIs(t, err, domain.ErrNotYourSession)

	// The failed confirmations did not consume the session.
	_, err = svc.Confirm(ctx, session.ID, "bob")
	require.NoError(t, err)
}

func TestCancel(t *testing.T) {
	svc, inv := newFixture()
	ctx := context.Background()

	session, err := svc.ProposeGift(ctx, "alice", "bob", "1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(ctx, session.ID, "mallory"), domain.ErrNotYourSession)
	require.NoError(t, svc.Cancel(ctx, session.ID, "alice"))
	assert.ErrorIs(t, svc.Cancel(ctx, session.ID, "alice"), domain.ErrNoPendingSession)

	_, err = svc.Confirm(ctx, session.ID, "bob")
	assert.ErrorIs(t, err, domain.ErrNoPendingSession)

	alice, err := inv.FindOne(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, alice.Characters, 2, "cancel moves nothing")
}

func TestNewProposalReplacesPendingForPair(t *testing.T) {
	svc, _ := newFixture()
	ctx := context.Background()

	first, err := svc.ProposeGift(ctx, "alice", "bob", "1")
	require.NoError(t, err)
	second, err := svc.ProposeTrade(ctx, "alice", "bob", "1", "2")
	require.NoError(t, err)

	_, ok := svc.Get(first.ID)
	assert.False(t, ok, "a new proposal for the same pair supersedes the old one")
	_, ok = svc.Get(second.ID)
	assert.True(t, ok)
}

func TestConfirmRevalidatesOwnership(t *testing.T) {
	svc, inv := newFixture()
	ctx := context.Background()

	session, err := svc.ProposeTrade(ctx, "alice", "bob", "1", "2")
	require.NoError(t, err)

	// Bob loses Zoro between proposal and confirmation.
	require.NoError(t, inv.ReplaceCharacters(ctx, "bob", nil))

	_, err = svc.Confirm(ctx, session.ID, "bob")
	assert.ErrorIs(t, err, domain.ErrNotOwned)

	alice, err := inv.FindOne(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, alice.Characters, 2, "a failed revalidation moves nothing")
}
