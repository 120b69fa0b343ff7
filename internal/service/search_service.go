package service

import (
	"strings"

	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/repository"
)

// searchLimit caps each result bucket of the quick search.
const searchLimit = 8

type SearchService struct {
	loanRepo       *repository.LoanRepository
	hospitalRepo   *repository.HospitalRepository
	medicationRepo *repository.MedicationRepository
}

func NewSearchService(
	loanRepo *repository.LoanRepository,
	hospitalRepo *repository.HospitalRepository,
	medicationRepo *repository.MedicationRepository,
) *SearchService {
	return &SearchService{
		loanRepo:       loanRepo,
		hospitalRepo:   hospitalRepo,
		medicationRepo: medicationRepo,
	}
}

// SearchResults groups quick-search matches by entity.
type SearchResults struct {
	Hospitals   []models.Hospital   `json:"hospitals"`
	Medications []models.Medication `json:"medications"`
	Loans       []models.Loan       `json:"loans"`
}

// Search runs the quick search across hospitals, medications and loan
// references. An empty query returns empty buckets.
func (s *SearchService) Search(query string) (*SearchResults, error) {
	results := &SearchResults{
		Hospitals:   []models.Hospital{},
		Medications: []models.Medication{},
		Loans:       []models.Loan{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}

	hospitals, err := s.hospitalRepo.SearchHospitals(query, searchLimit)
	if err != nil {
		return nil, err
	}
	medications, err := s.medicationRepo.SearchMedications(query, searchLimit)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.SearchLoans(query, searchLimit)
	if err != nil {
		return nil, err
	}

	results.Hospitals = hospitals
	results.Medications = medications
	results.Loans = loans
	return results, nil
}
