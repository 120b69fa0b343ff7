package service

import (
	"pharmacy-loan-tracker/internal/models"
	"pharmacy-loan-tracker/internal/repository"
)

type DashboardService struct {
	loanRepo       *repository.LoanRepository
	hospitalRepo   *repository.HospitalRepository
	medicationRepo *repository.MedicationRepository
	auditRepo      *repository.AuditRepository
}

func NewDashboardService(
	loanRepo *repository.LoanRepository,
	hospitalRepo *repository.HospitalRepository,
	medicationRepo *repository.MedicationRepository,
	auditRepo *repository.AuditRepository,
) *DashboardService {
	return &DashboardService{
		loanRepo:       loanRepo,
		hospitalRepo:   hospitalRepo,
		medicationRepo: medicationRepo,
		auditRepo:      auditRepo,
	}
}

// Summary aggregates the dashboard cards and the activity feed.
type Summary struct {
	Loans             *repository.LoanCounts `json:"loans"`
	ActiveHospitals   int64                  `json:"active_hospitals"`
	ActiveMedications int64                  `json:"active_medications"`
	RecentActivity    []models.AuditLog      `json:"recent_activity"`
}

// GetSummary builds the dashboard summary
func (s *DashboardService) GetSummary() (*Summary, error) {
	counts, err := s.loanRepo.CountLoans()
	if err != nil {
		return nil, err
	}
	hospitals, err := s.hospitalRepo.CountActiveHospitals()
	if err != nil {
		return nil, err
	}
	medications, err := s.medicationRepo.CountActiveMedications()
	if err != nil {
		return nil, err
	}
	activity, err := s.auditRepo.GetRecentActivity(10)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Loans:             counts,
		ActiveHospitals:   hospitals,
		ActiveMedications: medications,
		RecentActivity:    activity,
	}, nil
}
