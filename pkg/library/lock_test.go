package library

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/vizscript/pkg/adapters/memory"
)

func TestLibrary_LockLifecycle(t *testing.T) {
	lib := New(memory.NewStore())
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		name := fmt.Sprintf("script-%d", i)
		_ = lib.Save(ctx, name, []string{"echo"})
		_ = lib.Delete(ctx, name)
	}

	if n := lib.activeLocks(); n != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", n)
	}
}
