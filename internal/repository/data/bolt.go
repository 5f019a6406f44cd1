package data

import (
	"go.etcd.io/bbolt"
)

var (
	// accounts bucket
	// contains account preferences (preferred locale), keyed by account ID
	accountsBucket = []byte(`accounts`)

	buckets = [][]byte{accountsBucket}
)

// initBuckets creates known buckets and drops the unknown ones left by previous versions
func initBuckets(db *bbolt.DB) error {
	known := make(map[string]bool, len(buckets))
	for _, bucket := range buckets {
		known[string(bucket)] = true
	}

	return db.Update(func(tx *bbolt.Tx) error {
		stale := [][]byte{}
		err := tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			if !known[string(name)] {
				stale = append(stale, append([]byte(nil), name...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, name := range stale {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
		}

		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
