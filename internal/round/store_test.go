package round

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/luckygame/apps/go-server/assets"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "rounds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := assets.FS.ReadFile("sql/001_rounds.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func TestStoreSeedAndLoad(t *testing.T) {
	ctx := context.Background()
	st := NewStore(newTestDB(t))

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	def, err := Default()
	require.NoError(t, err)
	require.NoError(t, st.Seed(ctx, def))

	n, err = st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, def.Len(), n)

	reg, err := st.Load(ctx)
	require.NoError(t, err)
	for _, idx := range def.Indices() {
		want, _ := def.Lookup(idx)
		got, ok := reg.Lookup(idx)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestStoreKeepsUnsetSlots(t *testing.T) {
	ctx := context.Background()
	st := NewStore(newTestDB(t))

	require.NoError(t, st.Seed(ctx, MustNew(map[uint64]Round{4: {Color: "white"}})))
	reg, err := st.Load(ctx)
	require.NoError(t, err)

	_, err = reg.ExpectedLucky(4)
	assert.ErrorIs(t, err, ErrUnknownRound)
	color, err := reg.ExpectedColor(4)
	require.NoError(t, err)
	assert.Equal(t, "white", color)
}

func TestStoreSeedDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	st := NewStore(newTestDB(t))

	require.NoError(t, st.Seed(ctx, MustNew(map[uint64]Round{1: {Lucky: "1", Color: "green"}})))
	require.NoError(t, st.Seed(ctx, MustNew(map[uint64]Round{1: {Lucky: "9", Color: "black"}})))

	reg, err := st.Load(ctx)
	require.NoError(t, err)
	rd, _ := reg.Lookup(1)
	assert.Equal(t, Round{Lucky: "1", Color: "green"}, rd)
}

func TestStoreSeedRejectsHugeIndex(t *testing.T) {
	st := NewStore(newTestDB(t))
	err := st.Seed(context.Background(), MustNew(map[uint64]Round{1 << 63: {Lucky: "x"}}))
	assert.ErrorIs(t, err, ErrInvalidRound)
}

func TestStoreLoadRejectsBadRows(t *testing.T) {
	db := newTestDB(t)
	_, err := db.Exec(`INSERT INTO rounds(idx, lucky, color) VALUES (3, '3', 'teal')`)
	require.NoError(t, err)

	_, err = NewStore(db).Load(context.Background())
	assert.ErrorIs(t, err, ErrInvalidRound)
}
