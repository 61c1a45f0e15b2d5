package dbcore

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/zt6453928/lunatv-enhanced/cmd/flags"
	"github.com/zt6453928/lunatv-enhanced/database/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	instance *gorm.DB
	once     sync.Once
)

// InitDatabase prepares the database backend.
// For SQLite it returns true if the database file already existed and
// false if it had to be created (the caller then seeds the owner account).
// For MySQL it always returns true.
func InitDatabase() bool {
	if flags.DatabaseType == "" || flags.DatabaseType == "sqlite" {
		if _, err := os.Stat(flags.DatabaseFile); os.IsNotExist(err) {
			log.Printf("SQLite database file %q does not exist, creating...", flags.DatabaseFile)
			dbDir := filepath.Dir(flags.DatabaseFile)
			if dbDir != "" {
				if err := os.MkdirAll(dbDir, 0755); err != nil {
					log.Fatalf("Failed to create database file directory %q: %v", dbDir, err)
				}
			}
			file, err := os.Create(flags.DatabaseFile)
			if err != nil {
				log.Fatalf("Failed to create SQLite database file %q: %v", flags.DatabaseFile, err)
			}
			if err := file.Close(); err != nil {
				log.Fatalf("Failed to close database file %q: %v", flags.DatabaseFile, err)
			}
			return false
		} else if err != nil {
			log.Fatalf("Failed to check database file %q: %v", flags.DatabaseFile, err)
		}
		return true
	} else if flags.DatabaseType == "mysql" {
		log.Printf("Using MySQL database: %s@%s:%s/%s",
			flags.DatabaseUser, flags.DatabaseHost, flags.DatabasePort, flags.DatabaseName)
		return true
	} else {
		log.Fatalf("Unsupported database type: %s", flags.DatabaseType)
		return false
	}
}

func GetDBInstance() *gorm.DB {
	once.Do(func() {
		var err error
		logConfig := &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
		switch flags.DatabaseType {
		case "", "sqlite":
			instance, err = gorm.Open(sqlite.Open(flags.DatabaseFile), logConfig)
		case "mysql":
			dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				flags.DatabaseUser, flags.DatabasePass, flags.DatabaseHost, flags.DatabasePort, flags.DatabaseName)
			instance, err = gorm.Open(mysql.Open(dsn), logConfig)
		default:
			log.Fatalf("Unsupported database type: %s", flags.DatabaseType)
		}
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		err = instance.AutoMigrate(
			&models.User{},
			&models.Session{},
			&models.ConfigDocument{},
		)
		if err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	})
	return instance
}
