package memory_test

import (
	"testing"

	"github.com/aretw0/vizscript/pkg/adapters/memory"
	"github.com/aretw0/vizscript/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunScriptStoreContract(t, store)
}
