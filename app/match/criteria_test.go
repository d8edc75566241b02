package match

import (
	"testing"
)

func TestCriteriaFromProfile(t *testing.T) {
	profile := Profile{
		CancerType: "breast",
		Age:        54,
		ZipCode:    "10001",
		InUSA:      true,
	}

	criteria, ok := CriteriaFromProfile(profile)
	if !ok {
		t.Fatal("Expected criteria to be derivable")
	}

	if criteria.CancerType != "breast" {
		t.Errorf("Expected cancer type 'breast', got: %s", criteria.CancerType)
	}
	if criteria.Age != 54 {
		t.Errorf("Expected age 54, got: %d", criteria.Age)
	}
	if criteria.ZipCode != "10001" {
		t.Errorf("Expected zip code '10001', got: %s", criteria.ZipCode)
	}
	if len(criteria.Statuses) != 3 {
		t.Errorf("Expected 3 default statuses, got: %d", len(criteria.Statuses))
	}
}

func TestCriteriaFromProfileNoCancerType(t *testing.T) {
	profile := Profile{
		Age:     60,
		ZipCode: "10001",
		InUSA:   true,
	}

	// Cancer type is the only mandatory field
	if _, ok := CriteriaFromProfile(profile); ok {
		t.Error("Expected criteria to be unsatisfiable without a cancer type")
	}
}

func TestCriteriaFromProfileUSAWithoutZip(t *testing.T) {
	profile := Profile{
		CancerType: "lung",
		InUSA:      true,
	}

	criteria, ok := CriteriaFromProfile(profile)
	if !ok {
		t.Fatal("Expected criteria to be derivable without a zip code")
	}
	if criteria.ZipCode != "" {
		t.Errorf("Expected empty zip constraint, got: %s", criteria.ZipCode)
	}
}

func TestCriteriaFromProfileOutsideUSA(t *testing.T) {
	profile := Profile{
		CancerType: "lung",
		ZipCode:    "10001",
		InUSA:      false,
	}

	criteria, ok := CriteriaFromProfile(profile)
	if !ok {
		t.Fatal("Expected criteria to be derivable")
	}
	// ZIP constraint applies only to in-country users
	if criteria.ZipCode != "" {
		t.Errorf("Expected zip constraint to be omitted outside USA, got: %s", criteria.ZipCode)
	}
}
