package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/sqlgroups/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertAndRecent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first, err := db.InsertAnswer(ctx, Answer{Command: "CREATE", Expected: domain.DDL, Guess: domain.DDL, Correct: true})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.AnsweredAt.IsZero())

	_, err = db.InsertAnswer(ctx, Answer{Command: "GRANT", Expected: domain.DCL, Guess: domain.TCL})
	require.NoError(t, err)

	recent, err := db.RecentAnswers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "GRANT", recent[0].Command)
	assert.Equal(t, domain.TCL, recent[0].Guess)
	assert.False(t, recent[0].Correct)
	assert.Equal(t, first.ID, recent[1].ID)
	assert.True(t, recent[1].Correct)
	assert.WithinDuration(t, first.AnsweredAt, recent[1].AnsweredAt, time.Second)

	limited, err := db.RecentAnswers(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	empty, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Asked)
	assert.Len(t, empty.ByCategory, 4)
	assert.Zero(t, empty.Accuracy())

	for _, a := range []Answer{
		{Command: "SELECT", Expected: domain.DML, Guess: domain.DML, Correct: true},
		{Command: "INSERT", Expected: domain.DML, Guess: domain.DDL},
		{Command: "COMMIT", Expected: domain.TCL, Guess: domain.TCL, Correct: true},
	} {
		_, err := db.InsertAnswer(ctx, a)
		require.NoError(t, err)
	}

	st, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Asked)
	assert.Equal(t, 2, st.Correct)
	assert.InDelta(t, 2.0/3.0, st.Accuracy(), 1e-9)
	assert.Equal(t, []CategoryStats{
		{Key: domain.DDL},
		{Key: domain.DML, Asked: 2, Correct: 1},
		{Key: domain.DCL},
		{Key: domain.TCL, Asked: 1, Correct: 1},
	}, st.ByCategory)
}
