package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"checkinly-backend/models"
	"checkinly-backend/utils"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	port := u.Port()
	if port == "" {
		port = "3306"
	}
	pass, _ := u.User.Password()

	mc := newMySQLConfig()
	mc.User = u.User.Username()
	mc.Passwd = pass
	mc.Addr = u.Hostname() + ":" + port
	mc.DBName = dbName
	for k, v := range u.Query() {
		if len(v) > 0 {
			mc.Params[k] = v[0]
		}
	}
	return mc.FormatDSN(), nil
}

func newMySQLConfig() *mysqldriver.Config {
	mc := mysqldriver.NewConfig()
	mc.Net = "tcp"
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc
}

func resolveMySQLDSN(c DatabaseConfig) (string, error) {
	raw := strings.TrimSpace(c.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(c.URL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	port := c.Port
	if port == "" {
		port = "3306"
	}
	mc := newMySQLConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Addr = c.Host + ":" + port
	mc.DBName = c.Name
	return mc.FormatDSN(), nil
}

func resolvePostgresDSN(c DatabaseConfig) string {
	if raw := strings.TrimSpace(c.URL); raw != "" {
		return raw
	}
	port := c.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.Host, port, c.User, c.Password, c.Name,
	)
}

// Dialector picks the gorm driver for the configured DB_DRIVER.
func Dialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Driver {
	case DriverMySQL, "":
		dsn, err := resolveMySQLDSN(c)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case DriverPostgres, "postgresql":
		return postgres.Open(resolvePostgresDSN(c)), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.Driver)
	}
}

// GormConfig is shared by the server and the test database helpers.
func GormConfig(level string) *gorm.Config {
	lvl := logger.Warn
	switch strings.ToLower(level) {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}

	return &gorm.Config{
		Logger: logger.New(
			utils.Logger,
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  lvl,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

func ConnectDatabase(cfg Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DB)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(cfg.DB.LogLevel))
	if err != nil {
		return nil, err
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		utils.Logger.Warnf("cannot get raw sql.DB: %v", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates tables in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Hotel{},
		&models.User{},
		&models.Session{},
		&models.Profile{},
		&models.Room{},
		&models.Guest{},
		&models.Booking{},
		&models.Payment{},
		&models.SmartLock{},
		&models.NotificationSetting{},
		&models.Notification{},
	)
}
