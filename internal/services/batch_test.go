package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/etkecc/langdetect/internal/model"
)

type staticConfig struct {
	cfg *model.Config
}

func (c *staticConfig) Get() *model.Config {
	return c.cfg
}

func newStaticConfig() *staticConfig {
	cfg := &model.Config{}
	cfg.ApplyDefaults()
	return &staticConfig{cfg}
}

// fakeDetector detects "language" as the first word of the text, falls back to the account locale
type fakeDetector struct{}

func (fakeDetector) DetectOrFallback(_ context.Context, text string, account *model.Account) (*model.Detection, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if account.HasLocale() {
		return &model.Detection{Language: account.Locale, Source: model.SourceAccount, Reason: model.ReasonShort}, nil
	}
	return &model.Detection{Language: strings.Fields(text)[0], Source: model.SourceClassifier}, nil
}

var errBrokenStorage = errors.New("storage is broken")

type fakeAccounts struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
	lookups  int
}

func (f *fakeAccounts) GetAccount(_ context.Context, id string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if id == "broken" {
		return nil, errBrokenStorage
	}
	return f.accounts[id], nil
}

func TestDetection_Detect(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]*model.Account{"alice": {ID: "alice", Locale: "de"}}}
	d := NewDetection(newStaticConfig(), fakeDetector{}, accounts)
	ctx := context.Background()

	tests := []struct {
		name      string
		text      string
		accountID string
		want      string
		wantErr   bool
	}{
		{"no account", "fr text", "", "fr", false},
		{"unknown account", "fr text", "bob", "fr", false},
		{"account locale", "fr text", "alice", "de", false},
		{"empty", "  ", "alice", "", false},
		{"broken storage", "fr text", "broken", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detection, err := d.Detect(ctx, tt.text, tt.accountID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("got error %v, want error: %t", err, tt.wantErr)
			}
			var got string
			if detection != nil {
				got = detection.Language
			}
			if got != tt.want {
				t.Errorf("got [%s], want [%s]", got, tt.want)
			}
		})
	}
}

func TestDetection_DetectMany(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[string]*model.Account{"alice": {ID: "alice", Locale: "de"}}}
	d := NewDetection(newStaticConfig(), fakeDetector{}, accounts)

	items := make([]*model.DetectRequest, 0, 50)
	for i := 0; i < 50; i++ {
		items = append(items, &model.DetectRequest{ID: fmt.Sprint(i), Text: fmt.Sprintf("l%d text", i)})
	}
	items[10].AccountID = "alice"
	items[20].Text = ""

	responses, err := d.DetectMany(context.Background(), items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(responses) != len(items) {
		t.Fatalf("got %d responses, want %d", len(responses), len(items))
	}
	for i, resp := range responses {
		if resp.ID != items[i].ID {
			t.Errorf("order is broken: got [%s], want [%s]", resp.ID, items[i].ID)
		}
		switch i {
		case 10:
			if resp.Detection.Language != "de" {
				t.Errorf("got [%s], want [de]", resp.Detection.Language)
			}
		case 20:
			if resp.Detection != nil {
				t.Errorf("got %+v, want nil", resp.Detection)
			}
		default:
			if want := fmt.Sprintf("l%d", i); resp.Detection.Language != want {
				t.Errorf("got [%s], want [%s]", resp.Detection.Language, want)
			}
		}
	}
	if accounts.lookups != 1 {
		t.Errorf("got %d account lookups, want 1", accounts.lookups)
	}
}

func TestDetection_DetectMany_PartialFailure(t *testing.T) {
	d := NewDetection(newStaticConfig(), fakeDetector{}, &fakeAccounts{})
	items := []*model.DetectRequest{
		{ID: "ok", Text: "en text"},
		{ID: "failed", Text: "en text", AccountID: "broken"},
	}

	responses, err := d.DetectMany(context.Background(), items)
	if err == nil {
		t.Fatal("want aggregated error")
	}
	if !strings.Contains(err.Error(), `"failed"`) {
		t.Errorf("error [%s] does not mention the failed item", err)
	}
	if !errors.Is(err, errBrokenStorage) {
		t.Errorf("got error %v, want it to wrap %v", err, errBrokenStorage)
	}
	if responses[0].Detection == nil || responses[0].Error != "" {
		t.Errorf("successful item: got %+v", responses[0])
	}
	if responses[1].Detection != nil || responses[1].Error == "" {
		t.Errorf("failed item: got %+v", responses[1])
	}
}

func TestDetection_DetectMany_Empty(t *testing.T) {
	d := NewDetection(newStaticConfig(), fakeDetector{}, nil)

	responses, err := d.DetectMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(responses) != 0 {
		t.Errorf("got %d responses, want 0", len(responses))
	}
}
