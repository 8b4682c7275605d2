package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/trustabee/honey-marketplace/internal/config"
	"github.com/trustabee/honey-marketplace/migrations"
	"github.com/trustabee/honey-marketplace/pkg/logging"
	"github.com/trustabee/honey-marketplace/pkg/migrate"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration")
	steps := flag.Int("steps", 0, "apply n migrations, or roll back -n")
	version := flag.Bool("version", false, "print the current schema version")
	flag.Parse()

	cfg, err := config.Load("migrate", ".", "/etc/honey")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Log.Level).With("service", cfg.Service)
	if !cfg.Postgres.Enabled() {
		log.Error("postgres.url is required")
		os.Exit(1)
	}

	m, err := migrate.New(migrations.FS, cfg.Postgres.URL, log)
	if err != nil {
		log.Error("open migrations", "err", err)
		os.Exit(1)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, verr := m.Version()
		if verr != nil {
			err = verr
			break
		}
		fmt.Printf("version=%d dirty=%t\n", v, dirty)
	case *down:
		err = m.Down()
	case *steps != 0:
		err = m.Steps(*steps)
	default:
		err = m.Up()
	}
	if err != nil {
		log.Error("migrate failed", "err", err)
		_ = m.Close()
		os.Exit(1)
	}
}
