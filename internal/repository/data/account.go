package data

import (
	"context"
	"time"

	"github.com/etkecc/go-apm"
	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"github.com/etkecc/langdetect/internal/model"
	"github.com/etkecc/langdetect/internal/repository/batch"
)

// importBatchSize is the amount of accounts stored within a single transaction during import
const importBatchSize = 1000

// GetAccount by ID, returns nil account if it is not stored
func (d *Data) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if id == "" {
		return nil, model.ErrEmptyAccountID
	}

	var account *model.Account
	err := d.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(accountsBucket).Get([]byte(id))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &account)
	})
	if err != nil {
		apm.Log(ctx).Error().Err(err).Str("id", id).Msg("cannot get account")
		return nil, err
	}
	return account, nil
}

// SetAccountLocale stores preferred locale of the account. The locale must be canonical already
func (d *Data) SetAccountLocale(ctx context.Context, id, locale string) error {
	if id == "" {
		return model.ErrEmptyAccountID
	}
	if locale == "" {
		return model.ErrEmptyLocale
	}

	return d.db.Batch(func(tx *bbolt.Tx) error {
		return putAccount(ctx, tx, &model.Account{ID: id, Locale: locale, UpdatedAt: time.Now().UTC()})
	})
}

// RemoveAccount by ID, removing missing account is not an error
func (d *Data) RemoveAccount(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrEmptyAccountID
	}

	apm.Log(ctx).Info().Str("id", id).Msg("removing account")
	return d.db.Batch(func(tx *bbolt.Tx) error {
		return tx.Bucket(accountsBucket).Delete([]byte(id))
	})
}

// ImportAccounts stores accounts in chunks, returns the amount of stored accounts.
// Accounts without ID or locale are skipped
func (d *Data) ImportAccounts(ctx context.Context, accounts []*model.Account) int {
	log := apm.Log(ctx)
	var stored int
	now := time.Now().UTC()
	b := batch.New(importBatchSize, func(ctx context.Context, items []*model.Account) {
		err := d.db.Update(func(tx *bbolt.Tx) error {
			for _, account := range items {
				if err := putAccount(ctx, tx, account); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Error().Err(err).Int("accounts", len(items)).Msg("cannot import accounts")
			return
		}
		stored += len(items)
	})

	for _, account := range accounts {
		if account == nil || account.ID == "" || !account.HasLocale() {
			continue
		}
		account.UpdatedAt = now
		b.Add(ctx, account)
	}
	log.Debug().Int("pending", b.Len()).Msg("flushing the last accounts batch")
	b.Flush(ctx)

	log.Info().Int("accounts", len(accounts)).Int("stored", stored).Msg("accounts imported")
	return stored
}

// CountAccounts returns the amount of stored accounts
func (d *Data) CountAccounts() int {
	var count int
	d.db.View(func(tx *bbolt.Tx) error { //nolint:errcheck // that's ok
		count = tx.Bucket(accountsBucket).Stats().KeyN
		return nil
	})
	return count
}

func putAccount(ctx context.Context, tx *bbolt.Tx, account *model.Account) error {
	accountb, err := json.Marshal(account)
	if err != nil {
		apm.Log(ctx).Error().Err(err).Str("id", account.ID).Msg("cannot marshal account")
		return err
	}
	return tx.Bucket(accountsBucket).Put([]byte(account.ID), accountb)
}
