package database

import (
    "fmt"
    "gorm.io/driver/postgres"
    "gorm.io/gorm"
)

type Config struct {
    Host     string
    Port     string
    User     string
    Password string
    DBName   string
}

func NewPostgresDB(config *Config) (*gorm.DB, error) {
    dsn := fmt.Sprintf(
        "host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
        config.Host,
        config.User,
        config.Password,
        config.DBName,
        config.Port,
    )

    // TranslateError maps driver unique-violation errors to
    // gorm.ErrDuplicatedKey, which the ingestion pipeline relies on.
    db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
    if err != nil {
        return nil, err
    }

    return db, nil
}