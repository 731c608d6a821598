package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestBuildDSN_ReportsMatchedRows(t *testing.T) {
	dsn := buildDSN(DatabaseConfig{Host: "db", Port: "3307", User: "lib", Password: "secret", DBName: "library"})

	assert.Equal(t, "lib:secret@tcp(db:3307)/library?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true", dsn)
}

func TestGormLogger_WritesThroughZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	gormLog := newGormLogger(false, zap.New(core))

	gormLog.Info(context.Background(), "hidden in prod")
	gormLog.Error(context.Background(), "broken %s", "query")
	gormLog.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, gorm.ErrRecordNotFound)

	entries := logs.FilterLoggerName("gorm").All()
	if assert.Len(t, entries, 1) {
		assert.Contains(t, entries[0].Message, "broken query")
	}

	core, logs = observer.New(zap.DebugLevel)
	newGormLogger(true, zap.New(core)).Info(context.Background(), "shown in dev")
	assert.Equal(t, 1, logs.Len())

	var _ logger.Interface = gormLog
}
