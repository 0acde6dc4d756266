package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conorfennell/sqlgroups/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--log.level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestClassifyCmd(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		out, err := execute(t, "classify", "--plain", "drop", "table", "users")
		require.NoError(t, err)
		assert.Contains(t, out, "# DDL: Data Definition Language")
		assert.Contains(t, out, "`CREATE` `ALTER` `DROP`")
	})

	t.Run("styled", func(t *testing.T) {
		out, err := execute(t, "classify", "COMMIT")
		require.NoError(t, err)
		assert.Contains(t, out, "Transaction Control Language")
	})

	t.Run("not found", func(t *testing.T) {
		out, err := execute(t, "classify", "merge into t")
		require.ErrorIs(t, err, errNoMatch)
		assert.Contains(t, out, "MERGE was not found")
	})

	t.Run("empty", func(t *testing.T) {
		out, err := execute(t, "classify", "   ")
		require.ErrorIs(t, err, errNoMatch)
		assert.Contains(t, out, "Please type a SQL command.")
	})
}

func TestCategoriesCmd(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, "categories", "-o", "yaml")
		require.NoError(t, err)

		var got []domain.Category
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.Equal(t, domain.Table(), got)
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "categories", "--output", "json")
		require.NoError(t, err)

		var got []domain.Category
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 4)
		assert.Equal(t, domain.TCL, got[3].Key)
	})

	t.Run("markdown", func(t *testing.T) {
		out, err := execute(t, "categories", "-o", "markdown")
		require.NoError(t, err)
		assert.Contains(t, out, "# DCL: Data Control Language")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "categories", "-o", "xml")
		assert.ErrorContains(t, err, "unknown output format")
	})
}

func TestInvalidConfigFails(t *testing.T) {
	_, err := execute(t, "categories", "--log.format", "xml")
	assert.ErrorContains(t, err, "invalid config")
}
