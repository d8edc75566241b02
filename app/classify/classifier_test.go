package classify

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []CancerType
	}{
		{
			name:     "single specific match",
			text:     "Lung cancer patients respond to immunotherapy",
			expected: []CancerType{Lung},
		},
		{
			name:     "case insensitive",
			text:     "BREAST CANCER screening guidelines updated",
			expected: []CancerType{Breast},
		},
		{
			name:     "multiple specific matches",
			text:     "Study compares breast cancer and ovarian cancer outcomes",
			expected: []CancerType{Breast, Ovarian},
		},
		{
			name:     "abbreviation matches",
			text:     "NSCLC treatment advances in 2024",
			expected: []CancerType{Lung},
		},
		{
			name:     "generic term alone yields other",
			text:     "New tumor imaging technique announced",
			expected: []CancerType{Other},
		},
		{
			name:     "generic term suppressed by specific match",
			text:     "Melanoma tumor shrinks under new regimen",
			expected: []CancerType{Melanoma},
		},
		{
			name:     "no match",
			text:     "Quarterly earnings report released",
			expected: nil,
		},
		{
			name:     "duplicate keywords collapse",
			text:     "lung cancer study confirms lung cancer risk",
			expected: []CancerType{Lung},
		},
		{
			name:     "empty text",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.text)
			if len(result) != len(tt.expected) {
				t.Fatalf("Classify(%q) = %v, want %v", tt.text, result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("Classify(%q)[%d] = %s, want %s", tt.text, i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"New cancer treatment approved", true},
		{"Chemotherapy side effects studied", true},
		{"Radiotherapy scheduling improved", true},
		{"Metastatic disease progression halted", true},
		{"Stock market closes higher", false},
		{"", false},
	}

	for _, tt := range tests {
		if result := IsRelevant(tt.text); result != tt.expected {
			t.Errorf("IsRelevant(%q) = %v, want %v", tt.text, result, tt.expected)
		}
	}
}

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "fda approval",
			text:     "FDA grants approval for new drug",
			expected: []string{"Approval", "FDA"},
		},
		{
			name:     "clinical trial",
			text:     "Phase 3 clinical trial begins enrollment",
			expected: []string{"Trial"},
		},
		{
			name:     "breakthrough designation",
			text:     "Therapy receives breakthrough designation",
			expected: []string{"Breakthrough"},
		},
		{
			name:     "no labels",
			text:     "Routine checkup recommendations",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractTags(tt.text)
			if len(result) != len(tt.expected) {
				t.Fatalf("ExtractTags(%q) = %v, want %v", tt.text, result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("ExtractTags(%q)[%d] = %s, want %s", tt.text, i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestStrings(t *testing.T) {
	if result := Strings(nil); result != nil {
		t.Errorf("Expected nil for empty tag set, got: %v", result)
	}

	result := Strings([]CancerType{Breast, Lung})
	if len(result) != 2 || result[0] != "breast" || result[1] != "lung" {
		t.Errorf("Expected [breast lung], got: %v", result)
	}
}
