// Command migrate runs schema operations for the backend.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"modelhub/internal/config"
	"modelhub/internal/database"

	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate/main.go <up|status|reset>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}
	cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0)))
	if cmd != "up" && cmd != "status" && cmd != "reset" {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Connect applies the schema, so "up" needs nothing more.
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch cmd {
	case "up":
		log.Println("automigrations applied")
	case "status":
		return printStatus(db, os.Stdout)
	case "reset":
		if err := reset(db); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		log.Println("schema dropped and recreated")
	}
	return nil
}

// printStatus lists each managed table with its columns.
func printStatus(db *gorm.DB, w io.Writer) error {
	migrator := db.Migrator()
	for _, model := range database.PersistentModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return err
		}
		table := stmt.Schema.Table
		if !migrator.HasTable(model) {
			fmt.Fprintf(w, "%s: missing\n", table)
			continue
		}

		columns, err := migrator.ColumnTypes(model)
		if err != nil {
			return fmt.Errorf("columns of %s: %w", table, err)
		}
		fmt.Fprintf(w, "%s:\n", table)
		for _, c := range columns {
			fmt.Fprintf(w, " - %s: %s\n", c.Name(), c.DatabaseTypeName())
		}
	}
	return nil
}

// reset drops every managed table, children first, and migrates again.
func reset(db *gorm.DB) error {
	tables := database.PersistentModels()
	slices.Reverse(tables)
	if err := db.Migrator().DropTable(tables...); err != nil {
		return err
	}
	return database.Migrate(db)
}
