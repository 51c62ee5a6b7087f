package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewChromeManagerDefaults(t *testing.T) {
	m := NewChromeManager(Options{})
	assert.Equal(t, 30*time.Second, m.opts.NavTimeout)

	m = NewChromeManager(Options{NavTimeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, m.opts.NavTimeout)
}
