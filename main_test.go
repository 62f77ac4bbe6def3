package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

func TestOpenStore(t *testing.T) {
	st, closeFn, err := openStore(config.Config{Store: "memory"})
	require.NoError(t, err)
	closeFn()
	_, err = st.Get(context.Background(), "x")
	assert.ErrorIs(t, err, store.ErrNotFound)

	st, closeFn, err = openStore(config.Config{Store: "sqlite", DBPath: filepath.Join(t.TempDir(), "db", "s.db")})
	require.NoError(t, err)
	defer closeFn()
	_, err = st.Get(context.Background(), "x")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
