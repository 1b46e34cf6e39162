package service

import (
	"context"
	"sync"

	"github.com/alexanderramin/chronomap/internal/domain"
	"github.com/alexanderramin/chronomap/internal/locale"
	"github.com/alexanderramin/chronomap/internal/testutil"
	"github.com/alexanderramin/chronomap/internal/timer"
)

// fakeCreds is a CredentialSource returning a fixed pair.
type fakeCreds struct {
	creds domain.Credentials
	err   error
	reads int
}

func (f *fakeCreds) Current(context.Context) (domain.Credentials, error) {
	f.reads++
	return f.creds, f.err
}

func validCreds() *fakeCreds {
	return &fakeCreds{creds: domain.Credentials{APIKey: "key", Token: "tok"}}
}

// fakeMetadata is a MetadataFetcher with a canned comment or error.
type fakeMetadata struct {
	comment string
	err     error
	calls   int
}

func (f *fakeMetadata) ChangesetComment(context.Context, string) (string, error) {
	f.calls++
	return f.comment, f.err
}

// fakeAccounting records every call and plays back configured results.
type fakeAccounting struct {
	mu sync.Mutex

	shareholderID  int64
	shareholderErr error
	reportID       int64
	reportErr      error
	feeErr         error

	shareholderCalls int
	reportCalls      int
	feeCalls         int

	lastReport domain.LaborReport
	lastFee    domain.FeeCharge
}

func (f *fakeAccounting) CheckOrAddShareholder(_ context.Context, _ domain.Credentials) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shareholderCalls++
	return f.shareholderID, f.shareholderErr
}

func (f *fakeAccounting) CreateWorkReport(_ context.Context, _ domain.Credentials, report domain.LaborReport) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reportCalls++
	f.lastReport = report
	return f.reportID, f.reportErr
}

func (f *fakeAccounting) ChargeUsageFee(_ context.Context, _ domain.Credentials, fee domain.FeeCharge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feeCalls++
	f.lastFee = fee
	return f.feeErr
}

// recordingNotifier collects every notification.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recordingNotifier) Notify(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recordingNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

// fixture bundles a controller with all its fakes.
type fixture struct {
	clock      *testutil.Clock
	tm         *timer.Timer
	creds      *fakeCreds
	metadata   *fakeMetadata
	accounting *fakeAccounting
	notifier   *recordingNotifier
	confirm    ConfirmerFunc
	tr         *locale.Translator
}

func newFixture() *fixture {
	clock := testutil.NewClock()
	return &fixture{
		clock:      clock,
		tm:         timer.New(timer.WithClock(clock.Now)),
		creds:      validCreds(),
		metadata:   &fakeMetadata{comment: "Added sidewalks"},
		accounting: &fakeAccounting{shareholderID: 9912, reportID: 42},
		notifier:   &recordingNotifier{},
		confirm:    func(context.Context, string) (bool, error) { return true, nil },
		tr:         locale.NewTranslator(locale.LangEN),
	}
}

func (f *fixture) controller() SessionController {
	return NewSessionController(f.tm, f.creds, f.metadata, f.accounting, f.confirm, f.notifier, nil, f.tr)
}
