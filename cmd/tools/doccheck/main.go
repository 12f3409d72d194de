// cmd/tools/doccheck/main.go
//
// Offline save-gate validator. Runs the same checks the editor applies
// before export, so asset pipelines can reject broken documents without
// starting the server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fankit/teamstudio/internal/document"
)

func main() {
	var (
		kind = flag.String("kind", "", "Document kind (league or team)")
		file = flag.String("file", "", "Path to the JSON document")
	)
	flag.Parse()

	if *kind == "" || *file == "" {
		log.Println("All flags are required:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read document: %v", err)
	}

	var result document.Result
	switch *kind {
	case "league":
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			log.Fatalf("Invalid JSON: %v", err)
		}
		if result = document.ValidateUpload(raw, document.KindLeague); result.Valid {
			var doc document.LeagueDocument
			if err := json.Unmarshal(data, &doc); err != nil {
				log.Fatalf("Invalid JSON: %v", err)
			}
			result = document.ValidateLeagueSave(doc)
		}
	case "team":
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			log.Fatalf("Invalid JSON: %v", err)
		}
		if result = document.ValidateUpload(raw, document.KindTeam); result.Valid {
			var team document.Team
			if err := json.Unmarshal(data, &team); err != nil {
				log.Fatalf("Invalid JSON: %v", err)
			}
			result = document.ValidateTeamSave(team)
		}
	default:
		log.Fatalf("Unknown kind %q (want league or team)", *kind)
	}

	if result.Valid {
		fmt.Println("OK")
		return
	}
	for _, verr := range result.Errors {
		fmt.Println(verr.String())
	}
	os.Exit(1)
}
