package backup

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eslsoft/studytrack/internal/entity"
	"github.com/eslsoft/studytrack/internal/repository"
)

const formatVersion = 1

var errNoTablesSelected = errors.New("backup: no tables selected")

type ProgressReporter interface {
	StartTable(table string, total int)
	Increment(table string, delta int)
	FinishTable(table string)
}

type noopProgress struct{}

func (noopProgress) StartTable(string, int) {}
func (noopProgress) Increment(string, int)  {}
func (noopProgress) FinishTable(string)     {}

// Table adapts one entity repository to the snapshot format. decode turns a
// payload into a row without touching the store; apply writes a decoded row.
type Table struct {
	Name   string
	dump   func(ctx context.Context) ([]any, error)
	decode func(payload json.RawMessage) (any, error)
	apply  func(ctx context.Context, row any) error
}

// StoreTable exposes store under name.
func StoreTable[T repository.Entity](name string, store repository.Store[T]) Table {
	return Table{
		Name: name,
		dump: func(ctx context.Context) ([]any, error) {
			items, err := store.All(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]any, len(items))
			for i := range items {
				rows[i] = items[i]
			}
			return rows, nil
		},
		decode: func(payload json.RawMessage) (any, error) {
			var item T
			if err := json.Unmarshal(payload, &item); err != nil {
				return nil, err
			}
			if item.GetID() == uuid.Nil {
				return nil, entity.ErrInvalidID
			}
			return item, nil
		},
		apply: func(ctx context.Context, row any) error {
			item, ok := row.(T)
			if !ok {
				return fmt.Errorf("backup: unexpected row type %T", row)
			}
			return store.Add(ctx, &item)
		},
	}
}

type Service struct {
	tables     []Table
	tableIndex map[string]Table
	schemaHash string
	clock      func() time.Time
}

// NewService constructs a snapshot service over the given tables.
func NewService(tables ...Table) (*Service, error) {
	if len(tables) == 0 {
		return nil, errors.New("backup: at least one table is required")
	}
	index := make(map[string]Table, len(tables))
	for _, tbl := range tables {
		name := strings.TrimSpace(strings.ToLower(tbl.Name))
		if name == "" || tbl.dump == nil || tbl.decode == nil || tbl.apply == nil {
			return nil, fmt.Errorf("backup: invalid table %q", tbl.Name)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("backup: duplicate table %q", name)
		}
		tbl.Name = name
		index[name] = tbl
	}
	sorted := make([]Table, 0, len(index))
	for _, tbl := range index {
		sorted = append(sorted, tbl)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	return &Service{
		tables:     sorted,
		tableIndex: index,
		schemaHash: computeSchemaHash(sorted),
		clock:      time.Now,
	}, nil
}

// TableNames lists the known tables in export order.
func (s *Service) TableNames() []string {
	return tableNames(s.tables)
}

type ExportOption func(*exportConfig)

type exportConfig struct {
	tables   []string
	reporter ProgressReporter
}

// WithTables restricts export to the provided table names.
func WithTables(tables []string) ExportOption {
	return func(cfg *exportConfig) {
		if len(tables) == 0 {
			return
		}
		cfg.tables = append([]string{}, tables...)
	}
}

// WithProgressReporter registers a reporter that receives progress callbacks during export.
func WithProgressReporter(reporter ProgressReporter) ExportOption {
	return func(cfg *exportConfig) {
		cfg.reporter = reporter
	}
}

type ImportOption func(*importConfig)

type importConfig struct {
	tables []string
}

// WithImportTables restricts import to the provided table names.
func WithImportTables(tables []string) ImportOption {
	return func(cfg *importConfig) {
		if len(tables) == 0 {
			return
		}
		cfg.tables = append([]string{}, tables...)
	}
}

type record struct {
	Type       string         `json:"type"`
	Version    int            `json:"version,omitempty"`
	ExportedAt *time.Time     `json:"exported_at,omitempty"`
	SchemaHash string         `json:"schema_hash,omitempty"`
	Tables     []string       `json:"tables,omitempty"`
	RowCounts  map[string]int `json:"row_counts,omitempty"`
	Payload    any            `json:"payload,omitempty"`
}

type rawRecord struct {
	Type       string          `json:"type"`
	Version    int             `json:"version"`
	ExportedAt *time.Time      `json:"exported_at"`
	SchemaHash string          `json:"schema_hash"`
	Tables     []string        `json:"tables"`
	RowCounts  map[string]int  `json:"row_counts"`
	Payload    json.RawMessage `json:"payload"`
}

func (s *Service) Export(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	cfg := exportConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	tables, err := s.selectTables(cfg.tables)
	if err != nil {
		return err
	}
	reporter := cfg.reporter
	if reporter == nil {
		reporter = noopProgress{}
	}

	// Read everything first so the meta counts match the rows written.
	rows := make(map[string][]any, len(tables))
	counts := make(map[string]int, len(tables))
	for _, tbl := range tables {
		items, err := tbl.dump(ctx)
		if err != nil {
			return fmt.Errorf("read table %s: %w", tbl.Name, err)
		}
		rows[tbl.Name] = items
		counts[tbl.Name] = len(items)
	}

	writer := bufio.NewWriter(w)
	defer writer.Flush()

	now := s.clock().UTC()
	meta := record{
		Type:       "meta",
		Version:    formatVersion,
		ExportedAt: &now,
		SchemaHash: s.schemaHash,
		Tables:     tableNames(tables),
		RowCounts:  counts,
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}

	for _, tbl := range tables {
		reporter.StartTable(tbl.Name, counts[tbl.Name])
		for _, row := range rows[tbl.Name] {
			if err := writeRecord(writer, record{Type: tbl.Name, Payload: row}); err != nil {
				return err
			}
			reporter.Increment(tbl.Name, 1)
		}
		reporter.FinishTable(tbl.Name)
	}
	return writer.Flush()
}

type stagedRow struct {
	table Table
	row   any
}

// Import decodes every row of the snapshot before writing anything, so a
// malformed snapshot leaves the stores untouched.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) error {
	cfg := importConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	tables, err := s.selectTables(cfg.tables)
	if err != nil {
		return err
	}
	tableFilter := make(map[string]Table, len(tables))
	for _, tbl := range tables {
		tableFilter[tbl.Name] = tbl
	}

	br := bufio.NewReader(r)
	var (
		metaSeen bool
		meta     rawRecord
		staged   []stagedRow
	)

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read backup: %w", err)
		}
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var rec rawRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}

			switch rec.Type {
			case "meta":
				metaSeen = true
				meta = rec
			default:
				tbl, ok := tableFilter[rec.Type]
				if !ok {
					// Skip records for tables not requested.
					break
				}
				if len(rec.Payload) == 0 {
					return fmt.Errorf("backup: missing payload for table %s", rec.Type)
				}
				row, err := tbl.decode(rec.Payload)
				if err != nil {
					return fmt.Errorf("decode %s row: %w", tbl.Name, err)
				}
				staged = append(staged, stagedRow{table: tbl, row: row})
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	if !metaSeen {
		return errors.New("backup: missing meta record")
	}
	if meta.Version != formatVersion {
		return fmt.Errorf("backup: unsupported format version %d", meta.Version)
	}

	for _, row := range staged {
		if err := row.table.apply(ctx, row.row); err != nil {
			return fmt.Errorf("import into %s: %w", row.table.Name, err)
		}
	}
	return nil
}

// LoadFile imports a snapshot file. A missing file is not an error. Any other
// failure is reported as *entity.StorageError.
func (s *Service) LoadFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &entity.StorageError{Op: "open snapshot", Path: path, Err: err}
	}
	defer file.Close()

	reader, err := maybeGzip(file)
	if err != nil {
		return &entity.StorageError{Op: "open snapshot", Path: path, Err: err}
	}
	if err := s.Import(ctx, reader); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &entity.StorageError{Op: "load snapshot", Path: path, Err: err}
	}
	return nil
}

// SaveFile writes a full snapshot to path through a temporary file.
func (s *Service) SaveFile(ctx context.Context, path string, compress bool) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &entity.StorageError{Op: "save snapshot", Path: path, Err: err}
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return &entity.StorageError{Op: "save snapshot", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	var w io.Writer = tmp
	var gz *gzip.Writer
	if compress {
		gz = gzip.NewWriter(tmp)
		w = gz
	}
	if err = s.Export(ctx, w); err != nil {
		tmp.Close()
		return &entity.StorageError{Op: "save snapshot", Path: path, Err: err}
	}
	if gz != nil {
		if err = gz.Close(); err != nil {
			tmp.Close()
			return &entity.StorageError{Op: "save snapshot", Path: path, Err: err}
		}
	}
	if err = tmp.Close(); err != nil {
		return &entity.StorageError{Op: "save snapshot", Path: path, Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return &entity.StorageError{Op: "save snapshot", Path: path, Err: err}
	}
	return nil
}

// maybeGzip unwraps r when it starts with the gzip magic bytes.
func maybeGzip(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}

func (s *Service) selectTables(requested []string) ([]Table, error) {
	if len(requested) == 0 {
		tbls := make([]Table, len(s.tables))
		copy(tbls, s.tables)
		return tbls, nil
	}
	set := make(map[string]struct{}, len(requested))
	for _, name := range requested {
		n := strings.TrimSpace(strings.ToLower(name))
		if n == "" {
			continue
		}
		if _, ok := s.tableIndex[n]; !ok {
			return nil, fmt.Errorf("backup: unsupported table %q", name)
		}
		set[n] = struct{}{}
	}
	if len(set) == 0 {
		return nil, errNoTablesSelected
	}
	tbls := make([]Table, 0, len(set))
	for _, tbl := range s.tables {
		if _, ok := set[tbl.Name]; ok {
			tbls = append(tbls, tbl)
		}
	}
	return tbls, nil
}

func tableNames(tables []Table) []string {
	names := make([]string, len(tables))
	for i, tbl := range tables {
		names[i] = tbl.Name
	}
	return names
}

func computeSchemaHash(tables []Table) string {
	builder := &strings.Builder{}
	fmt.Fprintf(builder, "v%d|", formatVersion)
	for _, tbl := range tables {
		builder.WriteString(tbl.Name)
		builder.WriteByte(';')
	}
	sum := sha256.Sum256([]byte(builder.String()))
	return fmt.Sprintf("%x", sum[:])
}

func writeRecord(w io.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	return nil
}
