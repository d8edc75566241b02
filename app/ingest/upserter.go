package ingest

import (
	"fmt"

	"github.com/oncofeed/oncofeed/app/database"
)

// Upserter is the dedup engine: it decides create vs. update against the
// store by natural key and writes exactly one audit log entry per effective
// write, synchronously in the same logical step.
type Upserter struct {
	newsRepo     database.NewsRepository
	trialRepo    database.TrialRepository
	approvalRepo database.ApprovalRepository
	paperRepo    database.PaperRepository
	auditRepo    database.AuditRepository
}

func NewUpserter(newsRepo database.NewsRepository, trialRepo database.TrialRepository,
	approvalRepo database.ApprovalRepository, paperRepo database.PaperRepository,
	auditRepo database.AuditRepository) *Upserter {
	return &Upserter{
		newsRepo:     newsRepo,
		trialRepo:    trialRepo,
		approvalRepo: approvalRepo,
		paperRepo:    paperRepo,
		auditRepo:    auditRepo,
	}
}

// UpsertNewsItem persists a news item keyed by link and returns the action
// taken. The design favors freshness: an existing record is overwritten with
// the latest fetched values.
func (u *Upserter) UpsertNewsItem(source string, item database.NewsItem) (string, error) {
	if item.Link == "" {
		return database.ActionSkipped, &ValidationError{
			RecordType: database.RecordTypeNews,
			Reason:     "missing link",
		}
	}

	existing, err := u.newsRepo.GetByLink(item.Link)
	if err != nil {
		return database.ActionSkipped, &StoreError{RecordID: item.Link, Err: err}
	}

	action := database.ActionCreated
	if existing != nil {
		action = database.ActionUpdated
		err = u.newsRepo.Update(item)
	} else {
		err = u.newsRepo.Insert(item)
	}
	if err != nil {
		return database.ActionSkipped, &StoreError{RecordID: item.Link, Err: err}
	}

	if err := u.audit(source, item.Link, database.RecordTypeNews, action, item.Title); err != nil {
		return action, err
	}

	return action, nil
}

// UpsertTrial persists a trial keyed by registry ID and returns the action taken
func (u *Upserter) UpsertTrial(source string, trial database.Trial) (string, error) {
	if trial.NCTID == "" {
		return database.ActionSkipped, &ValidationError{
			RecordType: database.RecordTypeTrial,
			Reason:     "missing registry ID",
		}
	}

	existing, err := u.trialRepo.GetByNCTID(trial.NCTID)
	if err != nil {
		return database.ActionSkipped, &StoreError{RecordID: trial.NCTID, Err: err}
	}

	action := database.ActionCreated
	if existing != nil {
		action = database.ActionUpdated
		err = u.trialRepo.Update(trial)
	} else {
		err = u.trialRepo.Insert(trial)
	}
	if err != nil {
		return database.ActionSkipped, &StoreError{RecordID: trial.NCTID, Err: err}
	}

	if err := u.audit(source, trial.NCTID, database.RecordTypeTrial, action, trial.Title); err != nil {
		return action, err
	}

	return action, nil
}

// UpsertApproval persists an approval keyed by application number and
// returns the action taken.
func (u *Upserter) UpsertApproval(source string, approval database.Approval) (string, error) {
	if approval.ApplicationNumber == "" {
		return database.ActionSkipped, &ValidationError{
			RecordType: database.RecordTypeApproval,
			Reason:     "missing application number",
		}
	}

	existing, err := u.approvalRepo.GetByApplicationNumber(approval.ApplicationNumber)
	if err != nil {
		return database.ActionSkipped, &StoreError{RecordID: approval.ApplicationNumber, Err: err}
	}

	action := database.ActionCreated
	if existing != nil {
		action = database.ActionUpdated
		err = u.approvalRepo.Update(approval)
	} else {
		err = u.approvalRepo.Insert(approval)
	}
	if err != nil {
		return database.ActionSkipped, &StoreError{RecordID: approval.ApplicationNumber, Err: err}
	}

	if err := u.audit(source, approval.ApplicationNumber, database.RecordTypeApproval, action, approval.DrugName); err != nil {
		return action, err
	}

	return action, nil
}

// UpsertPaper persists a paper keyed by PMID and returns the action taken
func (u *Upserter) UpsertPaper(source string, paper database.Paper) (string, error) {
	if paper.PaperID == "" {
		return database.ActionSkipped, &ValidationError{
			RecordType: database.RecordTypePaper,
			Reason:     "missing paper ID",
		}
	}

	existing, err := u.paperRepo.GetByPaperID(paper.PaperID)
	if err != nil {
		return database.ActionSkipped, &StoreError{RecordID: paper.PaperID, Err: err}
	}

	action := database.ActionCreated
	if existing != nil {
		action = database.ActionUpdated
		err = u.paperRepo.Update(paper)
	} else {
		err = u.paperRepo.Insert(paper)
	}
	if err != nil {
		return database.ActionSkipped, &StoreError{RecordID: paper.PaperID, Err: err}
	}

	if err := u.audit(source, paper.PaperID, database.RecordTypePaper, action, paper.Title); err != nil {
		return action, err
	}

	return action, nil
}

func (u *Upserter) audit(source, recordID, recordType, action, title string) error {
	metadata := map[string]interface{}{}
	if title != "" {
		metadata["title"] = title
	}

	err := u.auditRepo.CreateEntry(source, recordID, recordType, action, metadata)
	if err != nil {
		return fmt.Errorf("failed to write audit entry for %s: %w", recordID, err)
	}
	return nil
}
