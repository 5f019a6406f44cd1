package data

import (
	"go.etcd.io/bbolt"
)

// Data repository, backed by bbolt
type Data struct {
	db *bbolt.DB
}

// New opens (or creates) the database at path
func New(path string) (*Data, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = initBuckets(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Data{db: db}, nil
}

// Close data repository
func (d *Data) Close() error {
	return d.db.Close()
}
