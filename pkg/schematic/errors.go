package schematic

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownDiscriminator marks a block or archetype type with no
	// construction routine. The builder recovers with an empty object.
	ErrUnknownDiscriminator = errors.New("unknown discriminator")
	// ErrResourceNotFound marks a template or prefab missing from the
	// catalog. The builder recovers with an empty object.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrIndexOutOfRange marks an index property that does not address an
	// element built from the same record.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrParentUnresolved marks a record whose parent was never built.
	ErrParentUnresolved = errors.New("parent not built")
)

// BlockError is a fatal failure building one record.
type BlockError struct {
	ObjectID  int
	Name      string
	BlockType BlockType
	Err       error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d (%s %q): %v", e.ObjectID, e.BlockType, e.Name, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

func blockError(rec *BlockRecord, err error) *BlockError {
	return &BlockError{ObjectID: rec.ObjectID, Name: rec.Name, BlockType: rec.BlockType, Err: err}
}
