// Package tracing persists translator Events to a SQLite database so a
// replayed trace run can be inspected after the fact, mirroring this
// corpus's SQLite-backed trace writer.
package tracing

import (
	"database/sql"
	"fmt"
	"os"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/Nenimor/Virtual-Memory-Hierarchical-Page-Tables-Implementation/vm"
)

var kindNames = map[vm.EventKind]string{
	vm.EventFresh:   "fresh",
	vm.EventReclaim: "reclaim",
	vm.EventEvict:   "evict",
	vm.EventRestore: "restore",
}

// Recorder is a vm.EventSink that batches Events and flushes them to
// SQLite, registering an atexit hook so an exit through atexit.Exit
// doesn't lose the final, unflushed batch. A panic does not run the hook.
type Recorder struct {
	db   *sql.DB
	stmt *sql.Stmt

	buffer    []record
	batchSize int
}

type record struct {
	id    string
	kind  string
	page  uint64
	frame uint64
}

// Open creates (or reuses) the trace database at path and prepares the
// event table.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("tracing: opening %s: %w", path, err)
	}

	r := &Recorder{db: db, batchSize: 1000}
	if err := r.init(); err != nil {
		return nil, err
	}

	atexit.Register(func() { r.Flush() })

	return r, nil
}

func (r *Recorder) init() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS events (
		event_id TEXT PRIMARY KEY,
		kind     TEXT NOT NULL,
		page     INTEGER NOT NULL,
		frame    INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("tracing: creating table: %w", err)
	}

	r.stmt, err = r.db.Prepare(
		`INSERT INTO events (event_id, kind, page, frame) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("tracing: preparing insert: %w", err)
	}

	return nil
}

// Record implements vm.EventSink. It never returns an error to its
// caller — the translator's hot path cannot fail on observability — so
// write failures are only reported by Flush, which Record itself calls
// once batchSize events are buffered.
func (r *Recorder) Record(e vm.Event) {
	r.buffer = append(r.buffer, record{
		id:    xid.New().String(),
		kind:  kindNames[e.Kind],
		page:  e.Page,
		frame: e.Frame,
	})

	if len(r.buffer) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes all buffered events to the database. Errors are logged
// to stderr rather than returned, matching Record's fire-and-forget
// contract; on error the buffer is kept, so a later Flush or Close
// writes it again.
func (r *Recorder) Flush() {
	if len(r.buffer) == 0 {
		return
	}

	tx, err := r.db.Begin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tracing: beginning flush transaction: %v\n", err)
		return
	}

	stmt := tx.Stmt(r.stmt)
	for _, rec := range r.buffer {
		if _, err := stmt.Exec(rec.id, rec.kind, rec.page, rec.frame); err != nil {
			fmt.Fprintf(os.Stderr, "tracing: inserting event %s: %v\n", rec.id, err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		fmt.Fprintf(os.Stderr, "tracing: committing flush: %v\n", err)
		return
	}

	r.buffer = nil
}

// Close flushes any buffered events and releases the database handle.
func (r *Recorder) Close() error {
	r.Flush()
	return r.db.Close()
}

// Counts reports how many events of each kind have been committed to
// the database so far.
func (r *Recorder) Counts() (map[string]int64, error) {
	rows, err := r.db.Query(`SELECT kind, COUNT(*) FROM events GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("tracing: counting events: %w", err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("tracing: scanning counts: %w", err)
		}
		counts[kind] = n
	}

	return counts, rows.Err()
}
