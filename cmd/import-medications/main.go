// Command import-medications bulk-loads the medication catalog from a
// ;-delimited CSV file with columns: name;national_code;presentation;
// active_ingredient. The first row is treated as a header and skipped.
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"pharmacy-loan-tracker/internal/config"
	"pharmacy-loan-tracker/internal/database"
	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/repository"
)

func main() {
	file := flag.String("file", "", "path to the medications CSV file")
	flag.Parse()

	if *file == "" {
		log.Fatal("Usage: import-medications -file <medications.csv>")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *file, err)
	}
	defer f.Close()

	cfg := config.LoadConfig()
	db := database.Connect(cfg)
	medicationRepo := repository.NewMedicationRepo(db)

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	var medications []models.Medication
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read CSV: %v", err)
		}
		line++
		if line == 1 {
			// header row
			continue
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}

		med := models.Medication{
			Name:     strings.TrimSpace(record[0]),
			IsActive: true,
		}
		if len(record) > 1 {
			med.NationalCode = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			med.Presentation = strings.TrimSpace(record[2])
		}
		if len(record) > 3 {
			med.ActiveIngredient = strings.TrimSpace(record[3])
		}
		medications = append(medications, med)
	}

	if err := medicationRepo.CreateMedications(medications); err != nil {
		log.Fatalf("Failed to import medications: %v", err)
	}

	log.Printf("Imported %d medications", len(medications))
}
