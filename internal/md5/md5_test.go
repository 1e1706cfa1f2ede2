package md5

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBytes(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", FromBytes(nil))
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", FromBytes([]byte("hello")))
}

func TestBase64FromBytes(t *testing.T) {
	assert.Equal(t, "1B2M2Y8AsgTpgAmY7PhCfg==", Base64FromBytes(nil))
	assert.Equal(t, "XUFAKrxLKna5cZ2REBfFkg==", Base64FromBytes([]byte("hello")))
}
