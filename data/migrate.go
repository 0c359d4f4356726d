package data

import (
	"errors"

	"github.com/Pjt727/soc/collection/projectpath"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// cannot embed these bc it then would not work for tests
func MigrationsURL() string {
	return "file://" + projectpath.Root + "/migrations"
}

// Migrate applies every pending up migration
func Migrate(connString string) error {
	if connString == "" {
		return ErrNoConnection
	}
	m, err := migrate.New(MigrationsURL(), connString)
	if err != nil {
		return err
	}
	defer m.Close()
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
