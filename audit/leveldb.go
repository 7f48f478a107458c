package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"SmartCare360/models"

	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	keyHeadSeq  = "head_seq"
	keyHeadHash = "head_hash"
	entryPrefix = "entry_"
)

// ChainRecord is one stored audit entry linked to its predecessor.
type ChainRecord struct {
	Seq      uint64               `json:"seq"`
	PrevHash string               `json:"prevHash"`
	Hash     string               `json:"hash"`
	Entry    models.AuditLogEntry `json:"entry"`
}

// ChainSink is an append-only LevelDB log. Every record carries the SHA-256
// of the previous one, so rewriting any record breaks Verify.
type ChainSink struct {
	mu       sync.Mutex
	db       *leveldb.DB
	seq      uint64
	lastHash string
}

func OpenChain(path string) (*ChainSink, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit chain at %s: %w", path, err)
	}
	return newChain(db)
}

// OpenChainStorage opens the chain on an arbitrary goleveldb storage, such as
// storage.NewMemStorage in tests.
func OpenChainStorage(stor storage.Storage) (*ChainSink, error) {
	db, err := leveldb.Open(stor, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit chain: %w", err)
	}
	return newChain(db)
}

func newChain(db *leveldb.DB) (*ChainSink, error) {
	c := &ChainSink{db: db}
	raw, err := db.Get([]byte(keyHeadSeq), nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return c, nil
	case err != nil:
		db.Close()
		return nil, err
	}
	if c.seq, err = strconv.ParseUint(string(raw), 10, 64); err != nil {
		db.Close()
		return nil, fmt.Errorf("corrupt audit chain head: %w", err)
	}
	hash, err := db.Get([]byte(keyHeadHash), nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	c.lastHash = string(hash)
	return c, nil
}

func entryKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", entryPrefix, seq))
}

func chainHash(prev string, entry models.AuditLogEntry) (string, error) {
	body, err := json.Marshal(entry)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append([]byte(prev), body...))
	return hex.EncodeToString(sum[:]), nil
}

func (c *ChainSink) AppendAudit(_ context.Context, entry *models.AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	hash, err := chainHash(c.lastHash, *entry)
	if err != nil {
		return err
	}
	rec := ChainRecord{Seq: c.seq + 1, PrevHash: c.lastHash, Hash: hash, Entry: *entry}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	batch.Put(entryKey(rec.Seq), data)
	batch.Put([]byte(keyHeadSeq), []byte(strconv.FormatUint(rec.Seq, 10)))
	batch.Put([]byte(keyHeadHash), []byte(hash))
	if err := c.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	c.seq, c.lastHash = rec.Seq, hash
	return nil
}

// Records returns the chain in append order.
func (c *ChainSink) Records() ([]ChainRecord, error) {
	iter := c.db.NewIterator(util.BytesPrefix([]byte(entryPrefix)), nil)
	defer iter.Release()

	var out []ChainRecord
	for iter.Next() {
		var rec ChainRecord
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, iter.Error()
}

// Verify recomputes every link and reports the first broken sequence number.
func (c *ChainSink) Verify() error {
	records, err := c.Records()
	if err != nil {
		return err
	}
	prev := ""
	for i, rec := range records {
		want, err := chainHash(prev, rec.Entry)
		if err != nil {
			return err
		}
		if rec.Seq != uint64(i+1) || rec.PrevHash != prev || rec.Hash != want {
			return fmt.Errorf("audit chain broken at seq %d", rec.Seq)
		}
		prev = rec.Hash
	}
	return nil
}

func (c *ChainSink) Close() error {
	return c.db.Close()
}
