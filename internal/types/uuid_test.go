package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUUIDWithPrefix(t *testing.T) {
	id := GenerateUUIDWithPrefix(UUID_PREFIX_CUSTOMER)
	assert.True(t, strings.HasPrefix(id, "cust_"))
	assert.Len(t, id, len("cust_")+26)
	assert.NotEqual(t, id, GenerateUUIDWithPrefix(UUID_PREFIX_CUSTOMER))
	assert.Len(t, GenerateUUIDWithPrefix(""), 26)
}
