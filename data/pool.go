package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Pjt727/soc/collection/projectpath"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	dbPool *pgxpool.Pool
	pgOnce sync.Once
)

var ErrNoConnection = errors.New("DB_CONN is not set")

func init() {
	err := godotenv.Load(filepath.Join(projectpath.Root, ".env"))
	// the environment may come from the process instead of a file
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprint("Error loading .env file: ", err))
	}
}

func NewPool(ctx context.Context) (*pgxpool.Pool, error) {
	connString := os.Getenv("DB_CONN")
	if connString == "" {
		return nil, ErrNoConnection
	}

	var poolErr error = nil
	pgOnce.Do(func() {
		pgPool, err := pgxpool.New(ctx, connString)
		if err != nil {
			log.Error(fmt.Errorf("Unable to create connection pool: %w", err))
			poolErr = err
		}
		dbPool = pgPool
	})
	if poolErr != nil {
		return dbPool, poolErr
	}

	return dbPool, nil
}
