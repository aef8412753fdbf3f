package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Holyblitz/Sysiphe-v2/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Seen("https://acme.com.au/contact"))
	assert.True(t, f.Seen("https://acme.com.au/contact"))
	assert.False(t, f.Seen("https://acme.com.au/about"))
}

func TestFilter_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10000, 0.01)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Seen(fmt.Sprintf("https://example%d.com/page%d", worker, j))
			}
		}(i)
	}
	wg.Wait()

	assert.Greater(t, f.EstimatedCount(), uint(0))
}
