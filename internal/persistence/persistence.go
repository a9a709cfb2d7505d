package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/fin2go/internal/gait"
	"github.com/markusressel/fin2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketNeutralTrim = "neutralTrim"
)

// Persistence stores runtime calibration that must survive restarts,
// most importantly the neutral trim angles adjusted via the servo cli.
type Persistence interface {
	Init() error

	LoadNeutrals(side gait.Side) ([]float64, error)
	SaveNeutrals(side gait.Side, neutrals []float64) (err error)
	DeleteNeutrals(side gait.Side) (err error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveNeutrals saves the neutral trim angles of one fin bank to persistence
func (p persistence) SaveNeutrals(side gait.Side, neutrals []float64) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	key := side.String()

	data, err := json.Marshal(neutrals)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketNeutralTrim))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		err = b.Put([]byte(key), data)
		return err
	})
}

// LoadNeutrals loads the neutral trim angles of one fin bank from persistence
func (p persistence) LoadNeutrals(side gait.Side) ([]float64, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	key := side.String()

	var neutrals []float64
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketNeutralTrim))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(key))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &neutrals)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved neutral trim for %s: %v", key, err)
			err := b.Delete([]byte(key))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", key, err)
			}
			return nil
		}

		return err
	})

	return neutrals, err
}

func (p persistence) DeleteNeutrals(side gait.Side) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	key := side.String()

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketNeutralTrim))
		if b == nil {
			// no trim bucket yet
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(key))
	})
}
