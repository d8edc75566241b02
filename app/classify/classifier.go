package classify

import (
	"sort"
	"strings"
)

// CancerType is a domain tag attached to ingested records
type CancerType string

const (
	Breast     CancerType = "breast"
	Lung       CancerType = "lung"
	Prostate   CancerType = "prostate"
	Colorectal CancerType = "colorectal"
	Melanoma   CancerType = "melanoma"
	Leukemia   CancerType = "leukemia"
	Lymphoma   CancerType = "lymphoma"
	Pancreatic CancerType = "pancreatic"
	Ovarian    CancerType = "ovarian"
	Bladder    CancerType = "bladder"
	Kidney     CancerType = "kidney"
	Liver      CancerType = "liver"
	Brain      CancerType = "brain"
	Other      CancerType = "other"
)

// cancerKeywords maps keyword substrings to the tag they classify. Generic
// oncology terms fall back to Other.
var cancerKeywords = []struct {
	keyword string
	tag     CancerType
}{
	{"breast cancer", Breast},
	{"lung cancer", Lung},
	{"nsclc", Lung},
	{"prostate cancer", Prostate},
	{"colorectal cancer", Colorectal},
	{"colon cancer", Colorectal},
	{"rectal cancer", Colorectal},
	{"melanoma", Melanoma},
	{"leukemia", Leukemia},
	{"leukaemia", Leukemia},
	{"lymphoma", Lymphoma},
	{"pancreatic cancer", Pancreatic},
	{"ovarian cancer", Ovarian},
	{"bladder cancer", Bladder},
	{"kidney cancer", Kidney},
	{"renal cell", Kidney},
	{"liver cancer", Liver},
	{"hepatocellular", Liver},
	{"brain tumor", Brain},
	{"glioblastoma", Brain},
	{"tumor", Other},
	{"tumour", Other},
	{"oncology", Other},
	{"carcinoma", Other},
}

// relevanceKeywords is the broader list gating ingestion of untagged items
var relevanceKeywords = []string{
	"cancer",
	"tumor",
	"tumour",
	"oncology",
	"oncologist",
	"carcinoma",
	"malignancy",
	"malignant",
	"metastatic",
	"metastasis",
	"chemotherapy",
	"radiation therapy",
	"radiotherapy",
	"immunotherapy",
}

// crossCuttingLabels are detected by ExtractTags independent of cancer type
var crossCuttingLabels = []struct {
	keyword string
	tag     string
}{
	{"fda", "FDA"},
	{"approval", "Approval"},
	{"approved", "Approval"},
	{"clinical trial", "Trial"},
	{"trial", "Trial"},
	{"breakthrough", "Breakthrough"},
}

// Classify maps free text to the set of cancer type tags whose keywords it
// contains. Duplicates collapse; order is stable but irrelevant to callers.
func Classify(text string) []CancerType {
	lower := strings.ToLower(text)

	seen := make(map[CancerType]bool)
	var tags []CancerType
	for _, entry := range cancerKeywords {
		if !strings.Contains(lower, entry.keyword) {
			continue
		}
		if seen[entry.tag] {
			continue
		}
		seen[entry.tag] = true
		tags = append(tags, entry.tag)
	}

	// Generic terms only contribute Other when nothing specific matched
	if len(tags) > 1 && seen[Other] {
		filtered := tags[:0]
		for _, tag := range tags {
			if tag != Other {
				filtered = append(filtered, tag)
			}
		}
		tags = filtered
	}

	return tags
}

// IsRelevant reports whether the text contains any of the broader oncology
// relevance keywords. An item with no classified tag and no relevance keyword
// is discarded before persistence.
func IsRelevant(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range relevanceKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// ExtractTags detects cross-cutting labels (FDA, Approval, Trial,
// Breakthrough) from fixed substring tests.
func ExtractTags(text string) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	var tags []string
	for _, entry := range crossCuttingLabels {
		if !strings.Contains(lower, entry.keyword) {
			continue
		}
		if seen[entry.tag] {
			continue
		}
		seen[entry.tag] = true
		tags = append(tags, entry.tag)
	}

	sort.Strings(tags)
	return tags
}

// Strings converts a tag set to plain strings for persistence
func Strings(tags []CancerType) []string {
	if len(tags) == 0 {
		return nil
	}
	values := make([]string, 0, len(tags))
	for _, tag := range tags {
		values = append(values, string(tag))
	}
	return values
}
