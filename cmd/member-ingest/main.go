package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/regedner/Research-Group-Portfolio/config"
	"github.com/regedner/Research-Group-Portfolio/services"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	var (
		sourceID     string
		providerType string
	)

	flag.StringVar(&sourceID, "source-id", "", "provider identifier of the member to ingest (required)")
	flag.StringVar(&providerType, "provider", "openalex", "bibliographic provider: openalex or serpapi")
	flag.Parse()

	if strings.TrimSpace(sourceID) == "" {
		log.Fatal("source-id is required")
	}

	svc := services.NewIngestService(nil, nil)
	member, err := svc.FetchAndSave(context.Background(), sourceID, providerType)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	fmt.Printf("Member saved: %s (id=%d)\n", member.Name, member.ID)
	fmt.Printf("Publications stored: %d, citations: %d\n", member.WorksCount, member.CitedByCount)
}
