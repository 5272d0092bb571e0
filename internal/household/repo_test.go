package household

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealhub/pkg/database"
	"mealhub/pkg/models"
)

func newTestRepo(t *testing.T) (*Repo, *sql.DB) {
	t.Helper()

	cfg := database.Config{Path: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	return NewRepo(db), db
}

func seedUser(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO users (id, username, email, password_hash)
		VALUES (?, ?, ?, 'x')
	`, id, id, id+"@example.com")
	require.NoError(t, err)
}

func TestCreateWithProfileAndLookups(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seedUser(t, db, "user-1")
	require.NoError(t, repo.CreateWithProfile(ctx,
		models.Household{ID: "h1", Name: "familjen", InviteCode: "abc123"},
		models.Profile{ID: "p1", HouseholdID: "h1", UserID: "user-1", Name: "anna"},
	))

	hh, err := repo.GetByInviteCode(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, hh)
	assert.Equal(t, "h1", hh.ID)

	missing, err := repo.GetByInviteCode(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	p, err := repo.GetProfileByUser(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "h1", p.HouseholdID)
}

func TestAddProfileWithoutAccount(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seedUser(t, db, "user-1")
	require.NoError(t, repo.CreateWithProfile(ctx,
		models.Household{ID: "h1", Name: "familjen", InviteCode: "abc123"},
		models.Profile{ID: "p1", HouseholdID: "h1", UserID: "user-1", Name: "anna"},
	))

	// a child profile has no user behind it
	require.NoError(t, repo.AddProfile(ctx, models.Profile{
		ID: "p2", HouseholdID: "h1", Name: "liam",
	}))

	members, err := repo.ListProfiles(ctx, "h1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "anna", members[0].Name)
	assert.Equal(t, "liam", members[1].Name)
	assert.Empty(t, members[1].UserID)
}

func TestMoveProfileBetweenHouseholds(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seedUser(t, db, "user-1")
	seedUser(t, db, "user-2")
	require.NoError(t, repo.CreateWithProfile(ctx,
		models.Household{ID: "h1", Name: "familjen a", InviteCode: "code-a"},
		models.Profile{ID: "p1", HouseholdID: "h1", UserID: "user-1", Name: "anna"},
	))
	require.NoError(t, repo.CreateWithProfile(ctx,
		models.Household{ID: "h2", Name: "familjen b", InviteCode: "code-b"},
		models.Profile{ID: "p2", HouseholdID: "h2", UserID: "user-2", Name: "berit"},
	))

	require.NoError(t, repo.MoveProfile(ctx, "p2", "h1"))

	p, err := repo.GetProfile(ctx, "p2")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "h1", p.HouseholdID)

	members, err := repo.ListProfiles(ctx, "h2")
	require.NoError(t, err)
	assert.Empty(t, members)

	err = repo.MoveProfile(ctx, "missing", "h1")
	assert.Error(t, err)
}
