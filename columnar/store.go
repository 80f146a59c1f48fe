package columnar

import (
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/jaggedzip/deferred"
)

// DType identifies a column's scalar type.
type DType uint8

const (
	// DTypeInt64 is a 64-bit signed integer column.
	DTypeInt64 DType = iota + 1
	// DTypeInt32 is a 32-bit signed integer column.
	DTypeInt32
	// DTypeFloat64 is a 64-bit float column.
	DTypeFloat64
	// DTypeFloat32 is a 32-bit float column.
	DTypeFloat32
	// DTypeBool is a boolean column.
	DTypeBool
)

func (d DType) String() string {
	switch d {
	case DTypeInt64:
		return "int64"
	case DTypeInt32:
		return "int32"
	case DTypeFloat64:
		return "float64"
	case DTypeFloat32:
		return "float32"
	case DTypeBool:
		return "bool"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

func (d DType) width() int64 {
	switch d {
	case DTypeInt64, DTypeFloat64:
		return 8
	case DTypeInt32, DTypeFloat32:
		return 4
	default:
		return 1
	}
}

// ErrColumnNotFound indicates a lookup of a column the store does not hold.
type ErrColumnNotFound struct {
	Name string
}

func (e *ErrColumnNotFound) Error() string {
	return fmt.Sprintf("column not found: %s", e.Name)
}

// ErrColumnExists indicates a Put with a name already in use.
type ErrColumnExists struct {
	Name string
}

func (e *ErrColumnExists) Error() string {
	return fmt.Sprintf("column already exists: %s", e.Name)
}

// ErrTypeMismatch indicates a typed read of a column with a different dtype.
type ErrTypeMismatch struct {
	Name     string
	Expected DType
	Actual   DType
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("column %s is %s, not %s", e.Name, e.Actual, e.Expected)
}

type column struct {
	ordinal uint32
	dtype   DType
	rows    int64
	block   []byte
}

// Store is an in-memory compressed column store.
//
// Writes and reads are safe for concurrent use. Each typed read returns a
// fresh deferred cell; cells obtained from separate reads of the same column
// decode independently.
type Store struct {
	mu          sync.Mutex
	compression Compression
	cols        map[string]*column
	names       []string
	accessed    *roaring.Bitmap
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCompression selects the block compression. Default is zstd.
func WithCompression(c Compression) StoreOption {
	return func(s *Store) { s.compression = c }
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		compression: CompressionZSTD,
		cols:        make(map[string]*column),
		accessed:    roaring.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) put(name string, dtype DType, rows int64, raw []byte) error {
	block, err := compressBlock(raw, s.compression)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cols[name]; ok {
		return &ErrColumnExists{Name: name}
	}
	s.cols[name] = &column{
		ordinal: uint32(len(s.names)),
		dtype:   dtype,
		rows:    rows,
		block:   block,
	}
	s.names = append(s.names, name)
	return nil
}

// PutInt64s stores an int64 column.
func (s *Store) PutInt64s(name string, values []int64) error {
	return s.put(name, DTypeInt64, int64(len(values)), encodeInt64s(values))
}

// PutInt32s stores an int32 column.
func (s *Store) PutInt32s(name string, values []int32) error {
	return s.put(name, DTypeInt32, int64(len(values)), encodeInt32s(values))
}

// PutFloat64s stores a float64 column.
func (s *Store) PutFloat64s(name string, values []float64) error {
	return s.put(name, DTypeFloat64, int64(len(values)), encodeFloat64s(values))
}

// PutFloat32s stores a float32 column.
func (s *Store) PutFloat32s(name string, values []float32) error {
	return s.put(name, DTypeFloat32, int64(len(values)), encodeFloat32s(values))
}

// PutBools stores a bool column.
func (s *Store) PutBools(name string, values []bool) error {
	return s.put(name, DTypeBool, int64(len(values)), encodeBools(values))
}

func (s *Store) lookup(name string, dtype DType) (*column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.cols[name]
	if !ok {
		return nil, &ErrColumnNotFound{Name: name}
	}
	if col.dtype != dtype {
		return nil, &ErrTypeMismatch{Name: name, Expected: dtype, Actual: col.dtype}
	}
	return col, nil
}

// readBlock decompresses a column's block and records the access.
func (s *Store) readBlock(col *column) ([]byte, error) {
	raw, err := decompressBlock(col.block, s.compression)
	if err != nil {
		return nil, err
	}
	if want := col.rows * col.dtype.width(); int64(len(raw)) < want {
		return nil, errBlockTruncated
	}

	s.mu.Lock()
	s.accessed.Add(col.ordinal)
	s.mu.Unlock()

	return raw, nil
}

// Int64s returns a deferred cell over an int64 column. The row count is
// declared; the block decompresses on first force.
func (s *Store) Int64s(name string) (*deferred.Cell[[]int64], error) {
	col, err := s.lookup(name, DTypeInt64)
	if err != nil {
		return nil, err
	}
	return deferred.New(func() ([]int64, error) {
		raw, err := s.readBlock(col)
		if err != nil {
			return nil, err
		}
		return decodeInt64s(raw, col.rows), nil
	}, deferred.WithLength(col.rows)), nil
}

// Int32s returns a deferred cell over an int32 column.
func (s *Store) Int32s(name string) (*deferred.Cell[[]int32], error) {
	col, err := s.lookup(name, DTypeInt32)
	if err != nil {
		return nil, err
	}
	return deferred.New(func() ([]int32, error) {
		raw, err := s.readBlock(col)
		if err != nil {
			return nil, err
		}
		return decodeInt32s(raw, col.rows), nil
	}, deferred.WithLength(col.rows)), nil
}

// Float64s returns a deferred cell over a float64 column.
func (s *Store) Float64s(name string) (*deferred.Cell[[]float64], error) {
	col, err := s.lookup(name, DTypeFloat64)
	if err != nil {
		return nil, err
	}
	return deferred.New(func() ([]float64, error) {
		raw, err := s.readBlock(col)
		if err != nil {
			return nil, err
		}
		return decodeFloat64s(raw, col.rows), nil
	}, deferred.WithLength(col.rows)), nil
}

// Float32s returns a deferred cell over a float32 column.
func (s *Store) Float32s(name string) (*deferred.Cell[[]float32], error) {
	col, err := s.lookup(name, DTypeFloat32)
	if err != nil {
		return nil, err
	}
	return deferred.New(func() ([]float32, error) {
		raw, err := s.readBlock(col)
		if err != nil {
			return nil, err
		}
		return decodeFloat32s(raw, col.rows), nil
	}, deferred.WithLength(col.rows)), nil
}

// Bools returns a deferred cell over a bool column.
func (s *Store) Bools(name string) (*deferred.Cell[[]bool], error) {
	col, err := s.lookup(name, DTypeBool)
	if err != nil {
		return nil, err
	}
	return deferred.New(func() ([]bool, error) {
		raw, err := s.readBlock(col)
		if err != nil {
			return nil, err
		}
		return decodeBools(raw, col.rows), nil
	}, deferred.WithLength(col.rows)), nil
}

// Columns returns the column names in insertion order.
func (s *Store) Columns() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// DTypeOf returns the dtype of a column.
func (s *Store) DTypeOf(name string) (DType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.cols[name]
	if !ok {
		return 0, &ErrColumnNotFound{Name: name}
	}
	return col.dtype, nil
}

// Rows returns the row count of a column.
func (s *Store) Rows(name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.cols[name]
	if !ok {
		return 0, &ErrColumnNotFound{Name: name}
	}
	return col.rows, nil
}

// Accessed returns the names of columns that have been materialized since
// the last ResetAccessLog, in insertion order.
func (s *Store) Accessed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, s.accessed.GetCardinality())
	it := s.accessed.Iterator()
	for it.HasNext() {
		out = append(out, s.names[it.Next()])
	}
	return out
}

// Touched reports whether a column has been materialized.
func (s *Store) Touched(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.cols[name]
	if !ok {
		return false
	}
	return s.accessed.Contains(col.ordinal)
}

// ResetAccessLog clears the access log.
func (s *Store) ResetAccessLog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessed.Clear()
}
