package testdb

import (
	"errors"
	"os"

	"github.com/Pjt727/soc/data"
	"github.com/golang-migrate/migrate/v4"
)

var ErrNoTestDb = errors.New("TEST_DB_CONN is not set")

// SetupTestDb points DB_CONN at the test database and rebuilds its schema
func SetupTestDb() error {
	testDb := os.Getenv("TEST_DB_CONN")
	if testDb == "" {
		return ErrNoTestDb
	}
	os.Setenv("DB_CONN", testDb)

	m, err := migrate.New(data.MigrationsURL(), testDb)
	if err != nil {
		return err
	}
	defer m.Close()
	if err = m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func ReloadDb() error {
	// this is really scary so only reset the actual database if this env variable is set
	//    the real database should be reset manually if ever needed
	isLocal := os.Getenv("LOCAL") == "true"
	if !isLocal {
		return errors.New("Reset database manually or set the LOCAL=\"true\" env variable")
	}

	m, err := migrate.New(data.MigrationsURL(), os.Getenv("DB_CONN"))
	if err != nil {
		return err
	}
	defer m.Close()
	if err = m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return m.Up()
}
