package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/etkecc/go-apm"
	"github.com/etkecc/go-kit/workpool"

	"github.com/etkecc/langdetect/internal/model"
)

type detectorService interface {
	DetectOrFallback(ctx context.Context, text string, account *model.Account) (*model.Detection, error)
}

type accountsRepository interface {
	GetAccount(ctx context.Context, id string) (*model.Account, error)
}

// Detection service resolves accounts and detects languages of one or many texts
type Detection struct {
	cfg      ConfigService
	detector detectorService
	accounts accountsRepository
}

// NewDetection creates new detection service
func NewDetection(cfg ConfigService, detector detectorService, accounts accountsRepository) *Detection {
	return &Detection{
		cfg:      cfg,
		detector: detector,
		accounts: accounts,
	}
}

// Detect the language of a single text, using the account's locale as a fallback.
// Returns nil detection for texts without content
func (d *Detection) Detect(ctx context.Context, text, accountID string) (*model.Detection, error) {
	account, err := d.getAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return d.detector.DetectOrFallback(ctx, text, account)
}

// DetectMany detects languages of the texts concurrently, results keep the order of the requests.
// Failed items have the error set and do not fail the whole batch
func (d *Detection) DetectMany(ctx context.Context, items []*model.DetectRequest) ([]*model.DetectResponse, error) {
	log := apm.Log(ctx)
	workers := d.cfg.Get().Detection.Workers
	responses := make([]*model.DetectResponse, len(items))
	errs := make([]error, len(items))

	wp := workpool.New(workers)
	log.Debug().Int("items", len(items)).Int("workers", workers).Msg("detecting batch")
	for i, item := range items {
		idx := i
		req := item
		wp.Do(func() {
			resp := &model.DetectResponse{ID: req.ID}
			detection, err := d.Detect(ctx, req.Text, req.AccountID)
			if err != nil {
				errs[idx] = fmt.Errorf("item %q: %w", req.ID, err)
				resp.Error = err.Error()
			}
			resp.Detection = detection
			responses[idx] = resp
		})
	}
	wp.Run()

	var failed int
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == 0 {
		return responses, nil
	}

	err := errors.Join(errs...)
	log.Warn().Err(err).Int("failed", failed).Msg("some batch items failed")
	return responses, err
}

func (d *Detection) getAccount(ctx context.Context, accountID string) (*model.Account, error) {
	if accountID == "" || d.accounts == nil {
		return nil, nil
	}
	account, err := d.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("cannot get account: %w", err)
	}
	return account, nil
}
