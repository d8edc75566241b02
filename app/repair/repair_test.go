package repair

import (
	"context"
	"testing"

	"github.com/oncofeed/oncofeed/app/database"
)

type fakeApprovalRepo struct {
	approvals []database.Approval
}

func (f *fakeApprovalRepo) GetByApplicationNumber(applicationNumber string) (*database.Approval, error) {
	for i := range f.approvals {
		if f.approvals[i].ApplicationNumber == applicationNumber {
			return &f.approvals[i], nil
		}
	}
	return nil, nil
}

func (f *fakeApprovalRepo) Insert(approval database.Approval) error {
	f.approvals = append(f.approvals, approval)
	return nil
}

func (f *fakeApprovalRepo) Update(approval database.Approval) error {
	for i := range f.approvals {
		if f.approvals[i].ApplicationNumber == approval.ApplicationNumber {
			f.approvals[i] = approval
		}
	}
	return nil
}

func (f *fakeApprovalRepo) GetApprovalCount() (int, error) {
	return len(f.approvals), nil
}

func (f *fakeApprovalRepo) ListWithDrugName(drugName string) ([]database.Approval, error) {
	var result []database.Approval
	for _, a := range f.approvals {
		if a.DrugName == drugName {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeApprovalRepo) ListWithURL() ([]database.Approval, error) {
	var result []database.Approval
	for _, a := range f.approvals {
		if a.URL != "" && a.ApplicationNumber != "" {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeApprovalRepo) UpdateDrugName(id int64, drugName string) error {
	for i := range f.approvals {
		if f.approvals[i].ID == id {
			f.approvals[i].DrugName = drugName
		}
	}
	return nil
}

func (f *fakeApprovalRepo) UpdateURL(id int64, url string) error {
	for i := range f.approvals {
		if f.approvals[i].ID == id {
			f.approvals[i].URL = url
		}
	}
	return nil
}

func TestRepairDrugNames(t *testing.T) {
	repo := &fakeApprovalRepo{
		approvals: []database.Approval{
			{
				ID:                1,
				ApplicationNumber: "BLA125514",
				DrugName:          UnknownDrugName,
				RawData:           `{"brand_name": ["KEYTRUDA"]}`,
			},
			{
				ID:                2,
				ApplicationNumber: "NDA021357",
				DrugName:          UnknownDrugName,
				RawData:           `{}`,
			},
			{
				ID:                3,
				ApplicationNumber: "NDA020702",
				DrugName:          UnknownDrugName,
				RawData:           `not json`,
			},
			{
				ID:                4,
				ApplicationNumber: "BLA125085",
				DrugName:          "Avastin",
				RawData:           `{"brand_name": ["AVASTIN"]}`,
			},
		},
	}

	repairer := NewRepairer(repo)
	result, err := repairer.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.Fixed != 1 {
		t.Errorf("Expected 1 fixed, got: %d", result.Fixed)
	}
	if result.Failed != 2 {
		t.Errorf("Expected 2 failed, got: %d", result.Failed)
	}

	if repo.approvals[0].DrugName != "Keytruda" {
		t.Errorf("Expected drug name 'Keytruda', got: %s", repo.approvals[0].DrugName)
	}
	// Records without the sentinel name are untouched
	if repo.approvals[3].DrugName != "Avastin" {
		t.Errorf("Expected drug name 'Avastin' to be untouched, got: %s", repo.approvals[3].DrugName)
	}
}

func TestRepairURLs(t *testing.T) {
	repo := &fakeApprovalRepo{
		approvals: []database.Approval{
			{
				ID:                1,
				ApplicationNumber: "BLA125514",
				DrugName:          "Keytruda",
				URL:               "https://example.com/stale",
			},
			{
				ID:                2,
				ApplicationNumber: "NDA021357",
				DrugName:          "Cialis",
				URL:               CanonicalURL("021357"),
			},
		},
	}

	repairer := NewRepairer(repo)
	result, err := repairer.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.URLsFixed != 1 {
		t.Errorf("Expected 1 URL fixed, got: %d", result.URLsFixed)
	}

	expected := CanonicalURL("125514")
	if repo.approvals[0].URL != expected {
		t.Errorf("Expected URL %q, got: %s", expected, repo.approvals[0].URL)
	}
	// Already-canonical URL is unchanged
	if repo.approvals[1].URL != CanonicalURL("021357") {
		t.Errorf("Expected canonical URL to be untouched, got: %s", repo.approvals[1].URL)
	}
}

func TestRepairIdempotent(t *testing.T) {
	repo := &fakeApprovalRepo{
		approvals: []database.Approval{
			{
				ID:                1,
				ApplicationNumber: "BLA125514",
				DrugName:          UnknownDrugName,
				RawData:           `{"brand_name": ["KEYTRUDA"]}`,
				URL:               "https://example.com/stale",
			},
		},
	}

	repairer := NewRepairer(repo)

	first, err := repairer.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error on first run, got: %v", err)
	}
	if first.Fixed != 1 || first.URLsFixed != 1 {
		t.Fatalf("Expected first run to fix 1 name and 1 URL, got: %+v", first)
	}

	second, err := repairer.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error on second run, got: %v", err)
	}
	if second.Fixed != 0 || second.Failed != 0 || second.URLsFixed != 0 {
		t.Errorf("Expected second run to change nothing, got: %+v", second)
	}
}

func TestRepairContextCancelled(t *testing.T) {
	repo := &fakeApprovalRepo{
		approvals: []database.Approval{
			{
				ID:                1,
				ApplicationNumber: "BLA125514",
				DrugName:          UnknownDrugName,
				RawData:           `{"brand_name": ["KEYTRUDA"]}`,
			},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repairer := NewRepairer(repo)
	if _, err := repairer.Run(ctx); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
