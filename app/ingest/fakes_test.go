package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/oncofeed/oncofeed/app/database"
)

type fakeSourceRepo struct {
	sources []database.Source
	listErr error
	fetched []string
}

func (f *fakeSourceRepo) UpsertSource(name, kind, url, title string, enabled bool) error {
	return nil
}

func (f *fakeSourceRepo) ListEnabled() ([]database.Source, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sources, nil
}

func (f *fakeSourceRepo) MarkFetched(name string) error {
	f.fetched = append(f.fetched, name)
	return nil
}

func (f *fakeSourceRepo) GetSourceCount() (int, error) {
	return len(f.sources), nil
}

type fakeNewsRepo struct {
	items     map[string]database.NewsItem
	inserts   int
	updates   int
	insertErr error
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{items: make(map[string]database.NewsItem)}
}

func (f *fakeNewsRepo) GetByLink(link string) (*database.NewsItem, error) {
	if item, ok := f.items[link]; ok {
		return &item, nil
	}
	return nil, nil
}

func (f *fakeNewsRepo) Insert(item database.NewsItem) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserts++
	f.items[item.Link] = item
	return nil
}

func (f *fakeNewsRepo) Update(item database.NewsItem) error {
	f.updates++
	f.items[item.Link] = item
	return nil
}

func (f *fakeNewsRepo) GetItemCount() (int, error) { return len(f.items), nil }

func (f *fakeNewsRepo) GetItemsWithoutContent(limit int) ([]database.NewsItem, error) {
	return nil, nil
}

func (f *fakeNewsRepo) UpdateContent(id int64, content string) error { return nil }

type fakeTrialRepo struct {
	trials  map[string]database.Trial
	inserts int
	updates int
	getErr  error
}

func newFakeTrialRepo() *fakeTrialRepo {
	return &fakeTrialRepo{trials: make(map[string]database.Trial)}
}

func (f *fakeTrialRepo) GetByNCTID(nctID string) (*database.Trial, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if trial, ok := f.trials[nctID]; ok {
		return &trial, nil
	}
	return nil, nil
}

func (f *fakeTrialRepo) Insert(trial database.Trial) error {
	f.inserts++
	f.trials[trial.NCTID] = trial
	return nil
}

func (f *fakeTrialRepo) Update(trial database.Trial) error {
	f.updates++
	f.trials[trial.NCTID] = trial
	return nil
}

func (f *fakeTrialRepo) GetTrialCount() (int, error) { return len(f.trials), nil }

func (f *fakeTrialRepo) FindMatching(cancerType string, statuses []string, zipCode string) ([]database.Trial, error) {
	return nil, nil
}

type fakeApprovalRepo struct {
	approvals map[string]database.Approval
	inserts   int
	updates   int
}

func newFakeApprovalRepo() *fakeApprovalRepo {
	return &fakeApprovalRepo{approvals: make(map[string]database.Approval)}
}

func (f *fakeApprovalRepo) GetByApplicationNumber(applicationNumber string) (*database.Approval, error) {
	if approval, ok := f.approvals[applicationNumber]; ok {
		return &approval, nil
	}
	return nil, nil
}

func (f *fakeApprovalRepo) Insert(approval database.Approval) error {
	f.inserts++
	f.approvals[approval.ApplicationNumber] = approval
	return nil
}

func (f *fakeApprovalRepo) Update(approval database.Approval) error {
	f.updates++
	f.approvals[approval.ApplicationNumber] = approval
	return nil
}

func (f *fakeApprovalRepo) GetApprovalCount() (int, error) { return len(f.approvals), nil }

func (f *fakeApprovalRepo) ListWithDrugName(drugName string) ([]database.Approval, error) {
	return nil, nil
}

func (f *fakeApprovalRepo) ListWithURL() ([]database.Approval, error) { return nil, nil }

func (f *fakeApprovalRepo) UpdateDrugName(id int64, drugName string) error { return nil }

func (f *fakeApprovalRepo) UpdateURL(id int64, url string) error { return nil }

type fakePaperRepo struct {
	papers  map[string]database.Paper
	inserts int
	updates int
}

func newFakePaperRepo() *fakePaperRepo {
	return &fakePaperRepo{papers: make(map[string]database.Paper)}
}

func (f *fakePaperRepo) GetByPaperID(paperID string) (*database.Paper, error) {
	if paper, ok := f.papers[paperID]; ok {
		return &paper, nil
	}
	return nil, nil
}

func (f *fakePaperRepo) Insert(paper database.Paper) error {
	f.inserts++
	f.papers[paper.PaperID] = paper
	return nil
}

func (f *fakePaperRepo) Update(paper database.Paper) error {
	f.updates++
	f.papers[paper.PaperID] = paper
	return nil
}

func (f *fakePaperRepo) GetPaperCount() (int, error) { return len(f.papers), nil }

type auditRecord struct {
	Source     string
	RecordID   string
	RecordType string
	Action     string
}

type fakeAuditRepo struct {
	entries []auditRecord
}

func (f *fakeAuditRepo) CreateEntry(source, recordID, recordType, action string, metadata map[string]interface{}) error {
	f.entries = append(f.entries, auditRecord{
		Source:     source,
		RecordID:   recordID,
		RecordType: recordType,
		Action:     action,
	})
	return nil
}

func (f *fakeAuditRepo) GetEntryCount() (int, error) { return len(f.entries), nil }

type fakeSummarizer struct {
	summary string
	err     error
	calls   int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

var errStoreDown = errors.New("database is locked")

func newTestUpserter() (*Upserter, *fakeNewsRepo, *fakeTrialRepo, *fakeApprovalRepo, *fakePaperRepo, *fakeAuditRepo) {
	newsRepo := newFakeNewsRepo()
	trialRepo := newFakeTrialRepo()
	approvalRepo := newFakeApprovalRepo()
	paperRepo := newFakePaperRepo()
	auditRepo := &fakeAuditRepo{}
	upserter := NewUpserter(newsRepo, trialRepo, approvalRepo, paperRepo, auditRepo)
	return upserter, newsRepo, trialRepo, approvalRepo, paperRepo, auditRepo
}

func testFetchTimeout() time.Duration {
	return 5 * time.Second
}
