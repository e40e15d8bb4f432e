package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-site-server/models"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "dsn")
	assert.Error(t, err)
}

func TestMigrate_CreatesTables(t *testing.T) {
	db, err := Open("sqlite", "file:migrate_test?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, Migrate(db))

	for _, table := range []string{"reviews", "projects", "team_members", "inquiries", "users", "refresh_tokens"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestMigrate_BackfillsTeamOrder(t *testing.T) {
	db, err := Open("sqlite", "file:backfill_test?mode=memory&cache=shared")
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, Migrate(db))

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"Ada", "Grace", "Linus"} {
		m := models.TeamMember{Name: name, Role: "Engineer", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, db.Create(&m).Error)
	}

	require.NoError(t, Migrate(db))

	var members []models.TeamMember
	require.NoError(t, db.Order("display_order ASC").Find(&members).Error)
	require.Len(t, members, 3)
	assert.Equal(t, "Ada", members[0].Name)
	assert.Equal(t, 0, members[0].Order)
	assert.Equal(t, "Grace", members[1].Name)
	assert.Equal(t, 1, members[1].Order)
	assert.Equal(t, "Linus", members[2].Name)
	assert.Equal(t, 2, members[2].Order)
}
