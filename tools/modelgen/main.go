package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"
)

// saveSlotTable is created by 0001_save_slots.sql and backs gormrepo.SnapshotRepo.
const saveSlotTable = "save_slots"

func main() {
	var dsn, out, migrations string
	flag.StringVar(&dsn, "dsn", os.Getenv("WARPED_STORE_DSN"), "postgres dsn")
	flag.StringVar(&out, "out", "internal/adapter/repo/gorm/model", "output dir for generated models")
	flag.StringVar(&migrations, "migrations", "internal/adapter/repo/gorm/migrations", "sql migrations applied before introspection; empty skips")
	flag.Parse()

	if dsn == "" {
		log.Fatal("missing --dsn or WARPED_STORE_DSN")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}

	if migrations != "" {
		files, err := migrationFiles(migrations)
		if err != nil {
			log.Fatalf("list migrations: %v", err)
		}
		for _, f := range files {
			sql, err := os.ReadFile(f)
			if err != nil {
				log.Fatalf("read %s: %v", f, err)
			}
			// migrations are written with IF NOT EXISTS, so re-running is safe
			if err := db.Exec(string(sql)).Error; err != nil {
				log.Fatalf("apply %s: %v", f, err)
			}
		}
		fmt.Printf("applied %d migrations from %s\n", len(files), migrations)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      out,
		ModelPkgPath: "model",
		Mode:         gen.WithoutContext,
	})
	g.UseDB(db)
	g.GenerateModel(saveSlotTable)
	g.Execute()

	fmt.Printf("generated %s model at %s\n", saveSlotTable, out)
}

// migrationFiles lists the .sql files in dir in name order, matching the
// order the server applies its embedded copy.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .sql files in %s", dir)
	}
	return files, nil
}
