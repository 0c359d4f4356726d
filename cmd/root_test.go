package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesJsonFile(t *testing.T) {
	logFileFlag = filepath.Join(t.TempDir(), "soc.log")
	logLevelFlag = "BROKEN_PROCESS"
	t.Cleanup(func() {
		logFileFlag = ""
		logLevelFlag = "INFO"
	})

	logger, closeLog, err := newLogger()
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("filtered out")
	logger.Log(context.Background(), 12, "identity keys collided")
	closeLog()

	contents, err := os.ReadFile(logFileFlag)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(contents), "filtered out") {
		t.Errorf("info record written at BROKEN_PROCESS level: %s", contents)
	}
	if !strings.Contains(string(contents), `"level":"BROKEN_PROCESS"`) {
		t.Errorf("missing broken process record: %s", contents)
	}
}

func TestOpenStore(t *testing.T) {
	t.Cleanup(func() { storeFlag = "postgres" })

	storeFlag = "none"
	store, closeStore, err := openStore(context.Background())
	if err != nil || store != nil {
		t.Fatalf("none store = %v, %v", store, err)
	}
	closeStore()

	storeFlag = "sqlite"
	if _, _, err := openStore(context.Background()); err == nil {
		t.Error("expected error for unknown store")
	}
}
