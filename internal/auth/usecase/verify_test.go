package usecase

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aurora-api/aurora/internal/auth/entity"
)

func loginCandidate(id int64, code string, expiresAt time.Time) entity.OTPRecord {
	return entity.OTPRecord{
		ID:        id,
		UserID:    42,
		CodeHash:  "h:" + code,
		Purpose:   entity.OTPPurposeLogin,
		ExpiresAt: expiresAt,
	}
}

func TestVerifyInvalidInput(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   VerifyInput
	}{
		{"bad email", VerifyInput{Email: "nope", Code: "123456"}},
		{"short code", VerifyInput{Email: "jane@example.com", Code: "12345"}},
		{"alpha code", VerifyInput{Email: "jane@example.com", Code: "12a456"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Verify(t.Context(), tc.in)
			wantStatus(t, err, http.StatusUnprocessableEntity)
		})
	}
}

func TestVerifyUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Verify(t.Context(), VerifyInput{Email: "nobody@example.com", Code: "123456"})
	gerr := wantStatus(t, err, http.StatusUnprocessableEntity)
	if gerr.Fields()["email"] == "" {
		t.Fatalf("fields = %v", gerr.Fields())
	}
}

func TestVerifyNoUsableCode(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, true)

	_, err := f.uc.Verify(t.Context(), VerifyInput{Email: "jane@example.com", Code: "123456"})
	gerr := wantStatus(t, err, http.StatusUnprocessableEntity)
	if gerr.Fields()["code"] != "The provided code is invalid or has expired." {
		t.Fatalf("fields = %v", gerr.Fields())
	}
}

func TestVerifyWrongCode(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, true)
	f.db.candidates = []entity.OTPRecord{loginCandidate(1, "654321", testNow.Add(time.Minute))}

	_, err := f.uc.Verify(t.Context(), VerifyInput{Email: "jane@example.com", Code: "123456"})
	wantStatus(t, err, http.StatusUnprocessableEntity)
	if len(f.db.consumed) != 0 {
		t.Fatal("nothing should be consumed on a miss")
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, true)
	f.db.candidates = []entity.OTPRecord{loginCandidate(1, "123456", testNow.Add(-time.Minute))}

	_, err := f.uc.Verify(t.Context(), VerifyInput{Email: "jane@example.com", Code: "123456"})
	gerr := wantStatus(t, err, http.StatusUnprocessableEntity)
	if gerr.Fields()["code"] != "The provided code is invalid or has expired." {
		t.Fatalf("fields = %v", gerr.Fields())
	}
	if len(f.db.consumed) != 0 {
		t.Fatal("an expired code must never be consumed")
	}
	if len(f.session.minted) != 0 {
		t.Fatal("an expired code must never mint a token")
	}
}

// staleReadDB returns candidate rows without the usability filter, modeling
// a read whose snapshot predates the expiry boundary.
type staleReadDB struct{ *fakeDB }

func (f *staleReadDB) GetOTPCandidates(_ context.Context, _ int64, _ entity.OTPPurpose, _ time.Time, _ int32) ([]entity.OTPRecord, error) {
	return f.candidates, f.candidatesErr
}

func TestVerifyExpiredCodeFromStaleRead(t *testing.T) {
	f := newFixture(t, func(dep *Dependency) {
		dep.RepoDB = &staleReadDB{dep.RepoDB.(*fakeDB)}
	})
	seedUser(f.db, true)
	f.db.candidates = []entity.OTPRecord{loginCandidate(1, "123456", testNow.Add(-time.Minute))}

	_, err := f.uc.Verify(t.Context(), VerifyInput{Email: "jane@example.com", Code: "123456"})
	wantStatus(t, err, http.StatusUnprocessableEntity)
	if len(f.db.consumed) != 0 {
		t.Fatal("an expired code must never be consumed")
	}
}

func TestVerifySuccess(t *testing.T) {
	f := newFixture(t)
	user := seedUser(f.db, true)
	f.db.candidates = []entity.OTPRecord{
		loginCandidate(9, "999999", testNow.Add(2*time.Minute)),
		loginCandidate(7, "123456", testNow.Add(time.Minute)),
	}

	out, err := f.uc.Verify(t.Context(), VerifyInput{
		Email:      "jane@example.com",
		Code:       "123456",
		DeviceName: "iphone-15",
	})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if out.TokenType != "Bearer" {
		t.Fatalf("token type = %q", out.TokenType)
	}
	if out.AccessToken != "token-for-iphone-15" {
		t.Fatalf("access token = %q", out.AccessToken)
	}
	if out.UserID != user.ID || out.FullName != user.FullName {
		t.Fatalf("out = %+v", out)
	}

	if len(f.db.consumed) != 1 {
		t.Fatalf("consumed = %d, want 1", len(f.db.consumed))
	}
	c := f.db.consumed[0]
	if c.RecordID != 7 || c.UserID != user.ID || c.Purpose != entity.OTPPurposeLogin {
		t.Fatalf("consume = %+v", c)
	}
	if !c.UsedAt.Equal(testNow) {
		t.Fatalf("used at = %v, want %v", c.UsedAt, testNow)
	}
}

func TestVerifyDefaultDeviceName(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, true)
	f.db.candidates = []entity.OTPRecord{loginCandidate(1, "123456", testNow.Add(time.Minute))}

	out, err := f.uc.Verify(t.Context(), VerifyInput{Email: "jane@example.com", Code: "123456"})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.HasPrefix(out.AccessToken, "token-for-api-") {
		t.Fatalf("access token = %q, want generated api- device", out.AccessToken)
	}
}

func TestVerifyRaceLoser(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, true)
	f.db.candidates = []entity.OTPRecord{loginCandidate(1, "123456", testNow.Add(time.Minute))}
	f.db.consumeOK = false

	_, err := f.uc.Verify(t.Context(), VerifyInput{Email: "jane@example.com", Code: "123456"})
	gerr := wantStatus(t, err, http.StatusUnprocessableEntity)
	if gerr.Fields()["code"] != "The provided code is invalid or has expired." {
		t.Fatalf("fields = %v", gerr.Fields())
	}
	if len(f.session.minted) != 0 {
		t.Fatal("no token should be minted for the losing request")
	}
}

func TestVerifyConcurrentSameCode(t *testing.T) {
	f := newFixture(t)
	seedUser(f.db, true)
	f.db.candidates = []entity.OTPRecord{loginCandidate(1, "123456", testNow.Add(time.Minute))}
	f.db.consumeOnce = true

	outs := make([]*VerifyOutput, 2)
	errs := make([]error, 2)

	var wg sync.WaitGroup
	for i := range outs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outs[i], errs[i] = f.uc.Verify(t.Context(), VerifyInput{Email: "jane@example.com", Code: "123456"})
		}()
	}
	wg.Wait()

	var winners, losers int
	for i := range outs {
		if errs[i] == nil {
			if outs[i].AccessToken == "" {
				t.Fatal("winning request must carry a token")
			}
			winners++
			continue
		}

		gerr := wantStatus(t, errs[i], http.StatusUnprocessableEntity)
		if gerr.Fields()["code"] != "The provided code is invalid or has expired." {
			t.Fatalf("fields = %v", gerr.Fields())
		}
		losers++
	}

	if winners != 1 || losers != 1 {
		t.Fatalf("winners = %d, losers = %d, want exactly one of each", winners, losers)
	}
	if len(f.session.minted) != 1 {
		t.Fatalf("minted = %d, want 1", len(f.session.minted))
	}
}
