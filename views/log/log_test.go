package log

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanelHeight(t *testing.T) {
	assert.Equal(t, 1, PanelHeight(0))
	assert.Equal(t, 5, PanelHeight(15), "never below the reserved minimum on small screens")
	assert.Equal(t, 10, PanelHeight(30))
	assert.Equal(t, 15, PanelHeight(100), "capped at 15 lines")
}

func TestBufferConcurrentWrites(t *testing.T) {
	var buf Buffer
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fmt.Fprintf(&buf, "line %d\n", i)
		}()
	}
	wg.Wait()
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 8)
}
