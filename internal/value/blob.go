package value

import (
	"encoding/base64"

	"github.com/google/uuid"
)

var _ Value = NewBlobValue(nil)

// BlobValue is an opaque byte sequence.
type BlobValue []byte

func NewBlobValue(x []byte) BlobValue {
	return BlobValue(x)
}

func (v BlobValue) Type() Type {
	return TypeBlob
}

func (v BlobValue) V() any {
	return []byte(v)
}

func (v BlobValue) String() string {
	return base64.StdEncoding.EncodeToString(v)
}

var _ Value = NewUUIDValue(uuid.UUID{})

// UUIDValue is a 128-bit UUID.
type UUIDValue uuid.UUID

func NewUUIDValue(x uuid.UUID) UUIDValue {
	return UUIDValue(x)
}

func (v UUIDValue) Type() Type {
	return TypeUUID
}

func (v UUIDValue) V() any {
	return uuid.UUID(v)
}

func (v UUIDValue) UUID() uuid.UUID {
	return uuid.UUID(v)
}

func (v UUIDValue) String() string {
	return uuid.UUID(v).String()
}
