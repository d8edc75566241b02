package repair

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/oncofeed/oncofeed/app/database"
)

// UnknownDrugName is the sentinel display name written when ingestion could
// not determine a drug name.
const UnknownDrugName = "Unknown Drug"

// Result counts the effective changes of one repair run
type Result struct {
	Fixed     int
	Failed    int
	URLsFixed int
}

// Repairer is the one-shot reconciliation job over the approval store. Both
// passes are independent and idempotent: a second run fixes zero additional
// records.
type Repairer struct {
	approvalRepo database.ApprovalRepository
}

func NewRepairer(approvalRepo database.ApprovalRepository) *Repairer {
	return &Repairer{approvalRepo: approvalRepo}
}

// Run executes both repair passes and returns the aggregated counts
func (r *Repairer) Run(ctx context.Context) (Result, error) {
	var result Result

	if err := r.repairDrugNames(ctx, &result); err != nil {
		return result, err
	}
	if err := r.repairURLs(ctx, &result); err != nil {
		return result, err
	}

	slog.Info("Approval repair run completed",
		"fixed", result.Fixed,
		"failed", result.Failed,
		"urls_fixed", result.URLsFixed)

	return result, nil
}

// repairDrugNames re-derives the display name from stored raw metadata for
// every approval still carrying the sentinel name. Extraction failure is
// expected data sparsity, counted but not an error.
func (r *Repairer) repairDrugNames(ctx context.Context, result *Result) error {
	approvals, err := r.approvalRepo.ListWithDrugName(UnknownDrugName)
	if err != nil {
		return err
	}

	for _, approval := range approvals {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if approval.RawData == "" || approval.RawData == "{}" {
			result.Failed++
			continue
		}

		var raw map[string]interface{}
		if err := json.Unmarshal([]byte(approval.RawData), &raw); err != nil {
			result.Failed++
			continue
		}

		name := ExtractDrugName(raw)
		if name == "" {
			result.Failed++
			continue
		}

		if err := r.approvalRepo.UpdateDrugName(approval.ID, displayName(name)); err != nil {
			return err
		}
		result.Fixed++
	}

	return nil
}

// repairURLs recomputes the canonical record URL from the cleaned
// application number and updates only records whose stored URL differs.
func (r *Repairer) repairURLs(ctx context.Context, result *Result) error {
	approvals, err := r.approvalRepo.ListWithURL()
	if err != nil {
		return err
	}

	for _, approval := range approvals {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		cleaned := CleanApplicationNumber(approval.ApplicationNumber)
		if cleaned == "" {
			continue
		}

		canonical := CanonicalURL(cleaned)
		if canonical == approval.URL {
			continue
		}

		if err := r.approvalRepo.UpdateURL(approval.ID, canonical); err != nil {
			return err
		}
		result.URLsFixed++
	}

	return nil
}
