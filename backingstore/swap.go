// Package backingstore implements the swap primitives consumed by the
// translator: Evict persists a frame's content under a page key, Restore
// loads it back. It is backed by SQLite instead of an in-memory map so a
// trace run's swapped-out pages survive a process restart, mirroring
// this corpus's SQLite-backed trace writer.
package backingstore

import (
	"database/sql"
	"encoding/binary"
	"fmt"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/physmem"
)

// Store is the SQLite-backed swap area.
type Store struct {
	db       *sql.DB
	mem      *physmem.Memory
	pageSize uint64

	loadStmt *sql.Stmt
	saveStmt *sql.Stmt
}

// Open creates (or reopens) the swap database at path and binds it to
// the physical memory it will evict frames from and restore pages into.
func Open(path string, mem *physmem.Memory, pageSize uint64) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("backingstore: opening %s: %w", path, err)
	}

	s := &Store{db: db, mem: mem, pageSize: pageSize}
	if err := s.init(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS swapped_pages (
		page_number INTEGER PRIMARY KEY,
		data BLOB NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("backingstore: creating table: %w", err)
	}

	s.loadStmt, err = s.db.Prepare(
		`SELECT data FROM swapped_pages WHERE page_number = ?`)
	if err != nil {
		return fmt.Errorf("backingstore: preparing load: %w", err)
	}

	s.saveStmt, err = s.db.Prepare(
		`INSERT INTO swapped_pages (page_number, data) VALUES (?, ?)
		 ON CONFLICT(page_number) DO UPDATE SET data = excluded.data`)
	if err != nil {
		return fmt.Errorf("backingstore: preparing save: %w", err)
	}

	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Evict copies frame's content into the swap slot for page.
func (s *Store) Evict(frame, page uint64) error {
	data := make([]byte, s.pageSize*8)
	base := frame * s.pageSize
	for i := uint64(0); i < s.pageSize; i++ {
		w, err := s.mem.ReadWord(base + i)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(data[i*8:], uint64(w))
	}

	_, err := s.saveStmt.Exec(int64(page), data)
	if err != nil {
		return fmt.Errorf("backingstore: evicting page %d: %w", page, err)
	}

	return nil
}

// Restore loads page's swap slot into frame. If page has never been
// evicted, frame is left unchanged (spec §6: the core must tolerate
// either a no-op or a zero-fill here; right after a clear_table the two
// are indistinguishable).
func (s *Store) Restore(frame, page uint64) error {
	row := s.loadStmt.QueryRow(int64(page))

	var data []byte
	err := row.Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("backingstore: restoring page %d: %w", page, err)
	}

	base := frame * s.pageSize
	for i := uint64(0); i < s.pageSize; i++ {
		w := int64(binary.LittleEndian.Uint64(data[i*8:]))
		if err := s.mem.WriteWord(base+i, physmem.Word(w)); err != nil {
			return err
		}
	}

	return nil
}
