package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_RequiresURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Connect(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestOpenMemory_Isolated(t *testing.T) {
	a, err := OpenMemory(false)
	require.NoError(t, err)
	defer Close(a)

	b, err := OpenMemory(false)
	require.NoError(t, err)
	defer Close(b)

	require.NoError(t, a.Exec("CREATE TABLE t (v INTEGER)").Error)
	require.NoError(t, a.Exec("INSERT INTO t (v) VALUES (?)", 42).Error)

	var v int
	require.NoError(t, a.Raw("SELECT v FROM t").Scan(&v).Error)
	assert.Equal(t, 42, v)

	assert.Error(t, b.Exec("SELECT v FROM t").Error)
}
