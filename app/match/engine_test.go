package match

import (
	"context"
	"errors"
	"testing"

	"github.com/oncofeed/oncofeed/app/database"
)

type fakeTrialRepo struct {
	trials      []database.Trial
	findErr     error
	lastZipCode string
}

func (f *fakeTrialRepo) GetByNCTID(nctID string) (*database.Trial, error) { return nil, nil }
func (f *fakeTrialRepo) Insert(trial database.Trial) error               { return nil }
func (f *fakeTrialRepo) Update(trial database.Trial) error               { return nil }
func (f *fakeTrialRepo) GetTrialCount() (int, error)                     { return len(f.trials), nil }

func (f *fakeTrialRepo) FindMatching(cancerType string, statuses []string, zipCode string) ([]database.Trial, error) {
	f.lastZipCode = zipCode
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.trials, nil
}

type fakeMatchRepo struct {
	matches    map[string][]database.TrialMatch
	replaceErr error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[string][]database.TrialMatch)}
}

func (f *fakeMatchRepo) ReplaceMatches(userID string, matches []database.TrialMatch) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.matches[userID] = matches
	return nil
}

func (f *fakeMatchRepo) GetMatches(userID string) ([]database.TrialMatch, error) {
	return f.matches[userID], nil
}

func TestEngineRun(t *testing.T) {
	trialRepo := &fakeTrialRepo{
		trials: []database.Trial{
			{
				NCTID:      "NCT01234567",
				Status:     "RECRUITING",
				Conditions: []string{"Metastatic Breast Cancer"},
			},
			{
				NCTID:      "NCT07654321",
				Status:     "NOT_YET_RECRUITING",
				Conditions: []string{"Solid Tumors"},
			},
		},
	}
	matchRepo := newFakeMatchRepo()

	engine := NewEngine(trialRepo, matchRepo)
	criteria := Criteria{CancerType: "breast", Statuses: DefaultStatuses}

	if err := engine.Run(context.Background(), "user-1", criteria); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	matches := matchRepo.matches["user-1"]
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got: %d", len(matches))
	}

	if matches[0].NCTID != "NCT01234567" {
		t.Errorf("Expected NCTID 'NCT01234567', got: %s", matches[0].NCTID)
	}
	if matches[0].ConditionMatched != "Metastatic Breast Cancer" {
		t.Errorf("Expected matched condition 'Metastatic Breast Cancer', got: %s", matches[0].ConditionMatched)
	}
	// No condition contains the cancer type, so the cancer type stands in
	if matches[1].ConditionMatched != "breast" {
		t.Errorf("Expected matched condition 'breast', got: %s", matches[1].ConditionMatched)
	}
}

func TestEngineRunReplacesPreviousMatches(t *testing.T) {
	trialRepo := &fakeTrialRepo{
		trials: []database.Trial{
			{NCTID: "NCT01234567", Status: "RECRUITING", Conditions: []string{"Lung Cancer"}},
		},
	}
	matchRepo := newFakeMatchRepo()
	matchRepo.matches["user-1"] = []database.TrialMatch{
		{UserID: "user-1", NCTID: "NCT00000001"},
		{UserID: "user-1", NCTID: "NCT00000002"},
	}

	engine := NewEngine(trialRepo, matchRepo)
	criteria := Criteria{CancerType: "lung", Statuses: DefaultStatuses}

	if err := engine.Run(context.Background(), "user-1", criteria); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	matches := matchRepo.matches["user-1"]
	if len(matches) != 1 {
		t.Fatalf("Expected previous matches to be replaced, got %d matches", len(matches))
	}
	if matches[0].NCTID != "NCT01234567" {
		t.Errorf("Expected NCTID 'NCT01234567', got: %s", matches[0].NCTID)
	}
}

func TestEngineRunPassesZipConstraint(t *testing.T) {
	trialRepo := &fakeTrialRepo{}
	matchRepo := newFakeMatchRepo()
	engine := NewEngine(trialRepo, matchRepo)

	criteria := Criteria{CancerType: "lung", ZipCode: "10001", Statuses: DefaultStatuses}
	if err := engine.Run(context.Background(), "user-1", criteria); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if trialRepo.lastZipCode != "10001" {
		t.Errorf("Expected zip code '10001' passed to query, got: %s", trialRepo.lastZipCode)
	}

	criteria.ZipCode = ""
	if err := engine.Run(context.Background(), "user-1", criteria); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if trialRepo.lastZipCode != "" {
		t.Errorf("Expected zip constraint omitted, got: %s", trialRepo.lastZipCode)
	}
}

func TestEngineRunQueryError(t *testing.T) {
	trialRepo := &fakeTrialRepo{findErr: errors.New("database locked")}
	matchRepo := newFakeMatchRepo()
	engine := NewEngine(trialRepo, matchRepo)

	criteria := Criteria{CancerType: "lung", Statuses: DefaultStatuses}
	if err := engine.Run(context.Background(), "user-1", criteria); err == nil {
		t.Error("Expected error to propagate from trial query")
	}
}

func TestEngineRunCancelledContext(t *testing.T) {
	engine := NewEngine(&fakeTrialRepo{}, newFakeMatchRepo())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	criteria := Criteria{CancerType: "lung", Statuses: DefaultStatuses}
	if err := engine.Run(ctx, "user-1", criteria); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
