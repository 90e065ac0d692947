package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aurora-api/aurora/internal/auth/entity"
	"github.com/aurora-api/aurora/internal/pkg/config"
	"github.com/aurora-api/aurora/internal/pkg/goerror"
	"github.com/aurora-api/aurora/internal/pkg/idempotency"
	"github.com/aurora-api/aurora/internal/pkg/instrument"
	"github.com/aurora-api/aurora/internal/pkg/session"
	"github.com/aurora-api/aurora/internal/pkg/validator"
)

var (
	testNow   = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	errBroker = errors.New("broker unavailable")
)

func newTestConfig(yaml string) (config.Config, error) {
	return config.NewViperFromBytes("yaml", []byte(yaml))
}

const testConfigYAML = `
modules:
  auth:
    otp_ttl_minutes: 5
    otp_window_hours: 1
    otp_max_active: 5
    debug_reveal_otp: false
`

type fakeDB struct {
	users map[string]*entity.User

	recentCount    int64
	recentCountErr error

	createdOTPs  []entity.NewOTP
	createOTPErr error

	createdUsers  []entity.NewUser
	createUserErr error

	candidates    []entity.OTPRecord
	candidatesErr error

	mu          sync.Mutex
	consumed    []entity.ConsumeOTP
	consumeOK   bool
	consumeOnce bool
	consumeUsed bool
	consumeErr  error
	getUserErrs map[string]error

	clearedUsers []int64
	clearErr     error
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: map[string]*entity.User{}, consumeOK: true}
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if err, ok := f.getUserErrs[email]; ok {
		return nil, err
	}
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) CreateUser(_ context.Context, user entity.NewUser) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	if _, ok := f.users[user.Email]; ok {
		return goerror.ErrConflict
	}
	f.createdUsers = append(f.createdUsers, user)
	f.users[user.Email] = &entity.User{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Password: user.Password,
		IsActive: user.IsActive,
	}
	return nil
}

func (f *fakeDB) CountRecentOTPs(_ context.Context, _ int64, _ time.Time) (int64, error) {
	return f.recentCount, f.recentCountErr
}

func (f *fakeDB) CreateOTP(_ context.Context, in entity.NewOTP) error {
	if f.createOTPErr != nil {
		return f.createOTPErr
	}
	f.createdOTPs = append(f.createdOTPs, in)
	return nil
}

// GetOTPCandidates applies the repository's usability filter: unconsumed
// and not expired at the supplied time.
func (f *fakeDB) GetOTPCandidates(_ context.Context, _ int64, _ entity.OTPPurpose, now time.Time, _ int32) ([]entity.OTPRecord, error) {
	if f.candidatesErr != nil {
		return nil, f.candidatesErr
	}

	var usable []entity.OTPRecord
	for _, rec := range f.candidates {
		if rec.UsedAt == nil && !rec.ExpiresAt.Before(now) {
			usable = append(usable, rec)
		}
	}
	return usable, nil
}

func (f *fakeDB) DeleteUnconsumedOTPs(_ context.Context, userID int64) (int64, error) {
	if f.clearErr != nil {
		return 0, f.clearErr
	}
	f.clearedUsers = append(f.clearedUsers, userID)
	return 0, nil
}

func (f *fakeDB) ConsumeOTP(_ context.Context, in entity.ConsumeOTP) (bool, error) {
	if f.consumeErr != nil {
		return false, f.consumeErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.consumed = append(f.consumed, in)
	if f.consumeOnce {
		if f.consumeUsed {
			return false, nil
		}
		f.consumeUsed = true
		return true, nil
	}
	return f.consumeOK, nil
}

type fakeMQ struct {
	published []OTPIssuedEvent
	err       error
}

func (f *fakeMQ) PublishOTPIssued(_ context.Context, msg OTPIssuedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

type fakeSession struct {
	mu       sync.Mutex
	minted   []string
	revoked  []int64
	mintErr  error
	revokErr error
}

func (f *fakeSession) Mint(_ context.Context, userID int64, device string) (string, error) {
	if f.mintErr != nil {
		return "", f.mintErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	token := "token-for-" + device
	f.minted = append(f.minted, token)
	return token, nil
}

func (f *fakeSession) Verify(context.Context, string) (session.Auth, error) {
	return session.Auth{}, session.ErrInvalidToken
}

func (f *fakeSession) Revoke(_ context.Context, tokenID int64) error {
	if f.revokErr != nil {
		return f.revokErr
	}
	f.revoked = append(f.revoked, tokenID)
	return nil
}

// plainHash keeps hashing deterministic and fast in tests.
type plainHash struct{}

func (plainHash) Hash(plaintext string) ([]byte, error) {
	return []byte("h:" + plaintext), nil
}

func (plainHash) Verify(hashed, plaintext string) bool {
	return hashed == "h:"+plaintext
}

type fixedOTP struct {
	code string
	err  error
}

func (f fixedOTP) Generate() (string, error) {
	return f.code, f.err
}

type seqUID struct {
	next int64
}

func (s *seqUID) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

// passIdemp runs the function directly, as if the lock was always free.
type passIdemp struct {
	state idempotency.State
}

func (p passIdemp) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return p.state, nil
}

func (passIdemp) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (passIdemp) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (p passIdemp) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	switch p.state {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		return idempotency.ErrAlreadyFailed
	}
	return fn(ctx)
}

type fixture struct {
	uc      *Usecase
	db      *fakeDB
	mq      *fakeMQ
	session *fakeSession
}

func newFixture(t *testing.T, mutate ...func(*Dependency)) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	t.Cleanup(func() { cfg.Close() })

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	db := newFakeDB()
	mq := &fakeMQ{}
	sess := &fakeSession{}

	dep := Dependency{
		RepoDB:        db,
		RepoMessaging: mq,
		Idempotency:   passIdemp{},
		Validator:     v,
		Config:        cfg,
		Password:      plainHash{},
		OTP:           fixedOTP{code: "123456"},
		UID:           &seqUID{},
		Clock:         fixedClock{now: testNow},
		Session:       sess,
		Instrument:    instrument.NewNoop(),
	}
	for _, fn := range mutate {
		fn(&dep)
	}

	return &fixture{uc: New(dep), db: db, mq: mq, session: sess}
}

func seedUser(db *fakeDB, active bool) *entity.User {
	u := &entity.User{
		ID:       42,
		Email:    "jane@example.com",
		FullName: "Jane Miller",
		Password: "h:Sup3rSecret!",
		IsActive: active,
	}
	db.users[u.Email] = u
	return u
}

func asGoError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	return gerr
}

func wantStatus(t *testing.T, err error, status int) *goerror.Error {
	t.Helper()

	gerr := asGoError(t, err)
	if gerr.StatusCode() != status {
		t.Fatalf("status = %d, want %d (%v)", gerr.StatusCode(), status, gerr)
	}
	return gerr
}
