package md5

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
)

func FromBytes(data []byte) string {
	result := md5.Sum(data)
	return fmt.Sprintf("%x", result)
}

// Base64FromBytes returns the base64-encoded raw digest of data, the
// form expected by the Content-MD5 header.
func Base64FromBytes(data []byte) string {
	result := md5.Sum(data)
	return base64.StdEncoding.EncodeToString(result[:])
}
