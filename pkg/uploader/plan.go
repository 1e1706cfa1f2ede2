package uploader

// DefaultPartSize is the fixed part size used for multipart transfers
// unless configured otherwise (100 MiB).
const DefaultPartSize int64 = 100 * 1024 * 1024

// PartCount returns how many parts a file of the given size splits
// into: ceil(size / partSize). A zero-byte file yields zero parts.
func PartCount(size, partSize int64) int64 {
	n := size / partSize
	if size%partSize > 0 {
		n++
	}
	return n
}

// PartSizeOf returns the byte length of the 1-based part partNo. Every
// part carries partSize bytes except the last, which carries the
// remainder — unless size is an exact multiple of partSize, in which
// case the last part is a full one.
func PartSizeOf(size, partSize, parts, partNo int64) int64 {
	if partNo < parts {
		return partSize
	}
	if partNo == parts && size%partSize == 0 {
		return partSize
	}
	return size % partSize
}
