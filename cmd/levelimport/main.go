// levelimport stores YAML terrain levels in PostgreSQL for navsim's
// database source.
//
// Usage:
//
//	go run ./cmd/levelimport -name ford levels/ford.yaml
//	go run ./cmd/levelimport -list
//	go run ./cmd/levelimport -name ford -export ford.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/udisondev/gridnav/internal/config"
	"github.com/udisondev/gridnav/internal/db"
	"github.com/udisondev/gridnav/internal/terrain"
)

func main() {
	cfgPath := flag.String("config", "config/navsim.yaml", "navsim config with database settings")
	name := flag.String("name", "", "level name (defaults to the level's own name, then the file name)")
	list := flag.Bool("list", false, "list stored levels")
	export := flag.String("export", "", "write the stored level -name to this YAML file")
	flag.Parse()

	if p := os.Getenv("GRIDNAV_CONFIG"); p != "" {
		*cfgPath = p
	}

	if err := run(context.Background(), *cfgPath, *name, *list, *export, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath, name string, list bool, export string, files []string) error {
	if !list && export == "" && len(files) != 1 {
		return fmt.Errorf("expected exactly one level file, got %d", len(files))
	}
	if export != "" && name == "" {
		return fmt.Errorf("-export requires -name")
	}

	cfg, err := config.LoadNavigation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dsn := cfg.Database.DSN()
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return err
	}
	database, err := db.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer database.Close()
	levels := database.Levels()

	switch {
	case list:
		infos, err := levels.List(ctx)
		if err != nil {
			return err
		}
		for _, l := range infos {
			fmt.Printf("%-24s %4dx%-4d %s\n", l.Name, l.Width, l.Height, l.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil

	case export != "":
		m, err := levels.Load(ctx, name)
		if err != nil {
			return err
		}
		if err := terrain.SaveLevel(export, name, m); err != nil {
			return err
		}
		fmt.Printf("exported %s (%dx%d) to %s\n", name, m.Width(), m.Height(), export)
		return nil
	}

	path := files[0]
	lvl, err := terrain.LoadLevel(path)
	if err != nil {
		return err
	}
	m, err := lvl.Map()
	if err != nil {
		return fmt.Errorf("building level %s: %w", path, err)
	}

	name = levelName(name, lvl.Name, path)
	if err := levels.Save(ctx, name, m); err != nil {
		return err
	}
	fmt.Printf("imported %s (%dx%d) from %s\n", name, m.Width(), m.Height(), path)
	return nil
}

// levelName picks the first non-empty of the flag, the level's own name
// and the file's base name without extension.
func levelName(flagName, own, path string) string {
	if flagName != "" {
		return flagName
	}
	if own != "" {
		return own
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
