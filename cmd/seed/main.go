package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lensfolio/printshop-backend/config"
	"github.com/lensfolio/printshop-backend/internal/db"
	"github.com/lensfolio/printshop-backend/internal/seed"
	"github.com/lensfolio/printshop-backend/pkg/logger"
	"github.com/lensfolio/printshop-backend/pkg/util"
)

func main() {
	dir := flag.String("dir", "", "rate card directory (defaults to SEED_DATA_DIR)")
	file := flag.String("file", "", "apply a single .yaml/.yml/.xlsx rate card instead of a directory")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	dedupe := flag.Bool("dedupe", false, "remove duplicate products after applying")
	audit := flag.Bool("audit", false, "only report products whose sub-options disagree with their type")
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := util.HashPassword(*hashPassword)
		if err != nil {
			log.Fatal("Failed to hash password: ", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	logger.Initialize(logger.Config{Level: "info", Format: "console", EnableColor: true})

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	importer := seed.NewImporter(db.GetDB())

	if *audit {
		printAudit(importer)
		return
	}

	var cards []*seed.RateCard
	if *file != "" {
		card, err := seed.LoadFile(*file)
		if err != nil {
			log.Fatal("Failed to read rate card: ", err)
		}
		cards = append(cards, card)
	} else {
		if *dir == "" {
			*dir = cfg.Seed.DataDir
		}
		cards, err = seed.LoadDir(*dir)
		if err != nil {
			log.Fatal("Failed to read rate cards: ", err)
		}
		if len(cards) == 0 {
			log.Fatalf("No rate cards found in %s", *dir)
		}
	}

	fmt.Printf("Rate cards to apply: %d\n", len(cards))
	for _, card := range cards {
		fmt.Printf("  %s (%d product types)\n", card.Source, len(card.ProductTypes))
	}

	if !*yes && !confirm("Do you want to proceed with the import? (yes/no): ") {
		fmt.Println("Import cancelled.")
		return
	}

	report, err := importer.Apply(cards...)
	if err != nil {
		log.Fatal("Import failed: ", err)
	}
	fmt.Printf("Created: %d, Updated: %d, Unchanged: %d\n", report.Created, report.Updated, report.Unchanged)

	if *dedupe {
		removed, err := importer.Deduplicate()
		if err != nil {
			log.Fatal("Deduplicate failed: ", err)
		}
		fmt.Printf("Duplicate products removed: %d\n", removed)
	}

	printAudit(importer)
}

func printAudit(importer *seed.Importer) {
	violations, err := importer.Audit()
	if err != nil {
		log.Fatal("Audit failed: ", err)
	}
	if len(violations) == 0 {
		fmt.Println("Catalog audit: no violations")
		return
	}
	fmt.Printf("Catalog audit: %d violations\n", len(violations))
	for _, v := range violations {
		fmt.Printf("  #%d %s: %s\n", v.ProductID, v.ProductName, v.Reason)
	}
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}
