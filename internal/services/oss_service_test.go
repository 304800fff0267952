package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("Hoodie.PNG", time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^rewards/2026/02/[0-9a-f-]{36}\.png$`), key)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://gcore.oss-cn-beijing.aliyuncs.com/rewards/a.png",
		PublicURL("oss-cn-beijing.aliyuncs.com", "gcore", "rewards/a.png"))
	assert.Equal(t,
		"http://gcore.localhost:9000/k",
		PublicURL("http://localhost:9000/", "gcore", "k"))
}
