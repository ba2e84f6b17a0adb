package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/uw-gac/phenotag/pkg/domain/phenotag/db/postgres"
)

func main() {
	logger := log.Default()

	port := 5432
	if sp := os.Getenv("DB_PORT"); sp != "" {
		if p, err := strconv.Atoi(sp); err == nil {
			port = p
		}
	}

	host := flag.String("host", os.Getenv("DB_HOST"), "The host of the database.")
	pport := flag.Int("port", port, "The port of the database.")
	user := flag.String("user", os.Getenv("DB_USER"), "The user of the database.")
	pass := flag.String("pass", os.Getenv("DB_PASSWORD"), "The password of the database.")
	database := flag.String("database", os.Getenv("DB_NAME"), "The name of the database.")
	schema := flag.String(
		"schema", os.Getenv("PHENOTAG_SCHEMA"),
		"The path to the schema repository directory.",
	)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	if *schema == "" {
		logger.Fatal("no schema repository given (pass -schema or set PHENOTAG_SCHEMA)")
	}

	db, err := postgres.New(
		ctx,
		fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s",
			*user, *pass, *host, *pport, *database,
		),
		postgres.WithSchemaRepository(*schema),
	)
	if err != nil {
		logger.Fatal(err)
	}
	defer db.Close()

	if err := db.Schema().Upgrade(ctx); err != nil {
		logger.Fatal(err)
	}

	version, err := db.Schema().Version(ctx)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Printf("schema is at version %d", version)
}
