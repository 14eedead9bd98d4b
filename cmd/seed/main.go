package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"lucky-numbers-platform/internal/config"
	pg "lucky-numbers-platform/internal/infra/db/postgres"
	"lucky-numbers-platform/internal/infra/logging"
	"lucky-numbers-platform/internal/usecase"
)

// Applies the schema and, with -demo, issues a demo customer/code pair so the
// redemption flow can be exercised end to end.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	demo := flag.Bool("demo", false, "issue a demo customer and access code")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	schema, err := os.ReadFile("deploy/postgres/init.sql")
	if err != nil {
		log.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	fmt.Println("schema applied")

	if !*demo {
		return
	}

	logger := logging.New(cfg.Log, true)
	issuanceUC := usecase.NewIssuanceUseCase(
		pg.NewCustomerRepo(pool),
		pg.NewAccessCodeRepo(pool),
		pg.NewTxManager(pool),
		logger,
	)

	customer, code, err := issuanceUC.Issue(ctx, "demo@example.com")
	if err != nil {
		log.Fatalf("issue demo code: %v", err)
	}
	fmt.Printf("seeded: customer=%s email=%s code=%s\n", customer.ID, customer.Email, code.Code)
}
