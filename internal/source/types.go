package source

type (
	// FileID uniquely identifies a buffer within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a buffer.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the buffer was added from memory (test, stdin, editor).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// MaxBufferLen bounds buffers so byte offsets always fit in uint32.
const MaxBufferLen = 1<<32 - 1

// File captures metadata and content for a single buffer.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a buffer.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
