// Утилита переноса CSV-истории закрытых сигналов в Postgres.
// Конфиг: .siglog.yaml (dir, db_dsn), значения можно перекрыть env-ами.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/spf13/viper"

	"signal_bot/internal/models"
	siglogsvc "signal_bot/internal/modules/siglog/service"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	logger.SetServiceName("siglog_import")

	viper.SetConfigName(".siglog")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetDefault("dir", "data")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	dsn := viper.GetString("db_dsn")
	if dsn == "" {
		dsn = os.Getenv("DATABASE_DSN")
	}
	if dsn == "" {
		logger.Fatal("db_dsn is required")
	}

	ctx := context.Background()
	if err := run(ctx, viper.GetString("dir"), dsn); err != nil {
		logger.Fatal("%v", err)
	}
}

func run(ctx context.Context, dir, dsn string) error {
	pool, err := db.NewPool(ctx, db.PoolConfig{DSN: dsn})
	if err != nil {
		return errors.Wrap(err, "create pool")
	}
	manager := db.NewPgTxManager(pool)
	defer manager.Close()

	history, err := siglogsvc.NewHistory(ctx, manager)
	if err != nil {
		return errors.Wrap(err, "init history")
	}

	path := filepath.Join(dir, "signals.csv")
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open signals.csv")
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // заголовок
		return errors.Wrap(err, "read header")
	}

	imported := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "read row")
		}

		sig, err := parseRow(row)
		if err != nil {
			logger.Error("skip row: %v", err)
			continue
		}
		if err := history.Insert(ctx, sig); err != nil {
			return errors.Wrap(err, "insert")
		}
		imported++
	}

	logger.Info("imported %d closed signals from %s", imported, path)
	return nil
}

func parseRow(row []string) (models.ClosedSignal, error) {
	var sig models.ClosedSignal
	if len(row) < 9 {
		return sig, errors.Errorf("short row: %d fields", len(row))
	}

	sig.Symbol = row[0]
	for _, e := range strings.Split(row[1], "|") {
		px, err := strconv.ParseFloat(e, 64)
		if err != nil {
			return sig, errors.Wrap(err, "entry price")
		}
		sig.EntryPrices = append(sig.EntryPrices, px)
	}

	var err error
	if sig.SellPrice, err = strconv.ParseFloat(row[2], 64); err != nil {
		return sig, errors.Wrap(err, "sell price")
	}
	durSec, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return sig, errors.Wrap(err, "duration")
	}
	sig.Duration = time.Duration(durSec) * time.Second
	if sig.BottomPrice, err = strconv.ParseFloat(row[4], 64); err != nil {
		return sig, errors.Wrap(err, "bottom price")
	}
	if sig.DropPct, err = strconv.ParseFloat(row[5], 64); err != nil {
		return sig, errors.Wrap(err, "drop pct")
	}
	if row[6] != "" && row[7] != "" {
		if sig.RefChangePct, err = strconv.ParseFloat(row[6], 64); err != nil {
			return sig, errors.Wrap(err, "ref change")
		}
		if sig.RefChange30mPct, err = strconv.ParseFloat(row[7], 64); err != nil {
			return sig, errors.Wrap(err, "ref change 30m")
		}
		sig.RefAvailable = true
	}
	if sig.ClosedAt, err = time.Parse(time.RFC3339, row[8]); err != nil {
		return sig, errors.Wrap(err, "closed at")
	}
	return sig, nil
}
