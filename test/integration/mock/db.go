package mock

import (
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is an in-memory SQLite database shared by every scenario of a run.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	order  []string
}

// NewDb opens the shared database and migrates models, keyed by table name.
// order lists the tables children first, so rows can be cleared without breaking foreign keys.
func NewDb(schema string, models map[string]any, order []string) *Db {
	once.Do(func() {
		db = open(schema, models, order)
	})
	return db
}

func open(schema string, models map[string]any, order []string) *Db {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", schema)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := conn.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	for _, table := range order {
		if err := conn.AutoMigrate(models[table]); err != nil {
			panic(fmt.Sprintf("failed to migrate %s. err: %s", table, err.Error()))
		}
	}

	return &Db{DbConn: conn, models: models, order: order}
}

// ClearDB deletes every row of every table.
func (d *Db) ClearDB() error {
	for _, table := range d.order {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Unscoped().
			Delete(d.models[table]).Error
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
