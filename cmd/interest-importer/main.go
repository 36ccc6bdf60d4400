// Command interest-importer replaces the user_interests reference
// collection with the contents of a text file. The file lists categories as
// lines ending with ":" followed by one interest name per line:
//
//	Hobbies:
//	Video games
//	Psychology
package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MagicWinnie/MeetingAppBackend/config"
	"github.com/MagicWinnie/MeetingAppBackend/models"
	"github.com/MagicWinnie/MeetingAppBackend/repositories"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	path := "interests.txt"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	interests, err := parseInterestsFile(path)
	if err != nil {
		log.Fatal(err)
	}
	if len(interests) == 0 {
		log.Fatal("No interests to create")
	}

	client := config.ConnectDB()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	log.Printf("Creating %d interests", len(interests))

	repo := repositories.NewUserInterestRepository(client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.ReplaceAll(ctx, interests); err != nil {
		log.Fatal(err)
	}

	log.Println("Interests imported successfully")
}

func parseInterestsFile(path string) ([]models.UserInterest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var interests []models.UserInterest
	category := ""

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasSuffix(line, ":"):
			category = strings.TrimSuffix(line, ":")
		default:
			if category == "" {
				log.Fatalf("Interest %q appears before any category", line)
			}
			interests = append(interests, models.UserInterest{Category: category, Name: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return interests, nil
}
