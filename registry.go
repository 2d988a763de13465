package luneffi

import (
	"sync"

	"github.com/dolthub/swiss"
)

// CallbackManager tracks every currently-live CallbackHandle by the native
// code pointer it handed out, so the handle owning a pointer can be looked up
// and the package can report how many native-callable closures are
// outstanding. Double-close protection lives in CallbackHandle.Close itself.
//
// This is flapc's HotReloadManager (hotreload_unix.go) adapted from
// "executable pages currently mapped" to "closures currently callable from
// native code" -- same shape (a manager owning a set of live native-facing
// handles with orderly teardown), different backing allocator.
type CallbackManager struct {
	mu     sync.Mutex
	active *swiss.Map[uintptr, *CallbackHandle]
}

// defaultCallbackManager is the package-wide registry used by
// CreateCallback; tests may construct their own via newCallbackManager for
// isolation.
var defaultCallbackManager = newCallbackManager()

func newCallbackManager() *CallbackManager {
	return &CallbackManager{active: swiss.NewMap[uintptr, *CallbackHandle](8)}
}

func (m *CallbackManager) track(codePtr uintptr, h *CallbackHandle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active.Put(codePtr, h)
}

func (m *CallbackManager) untrack(codePtr uintptr) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active.Delete(codePtr)
}

// Lookup finds the handle owning a given native function pointer, if any
// callback created through this manager still owns it.
func (m *CallbackManager) Lookup(codePtr uintptr) (*CallbackHandle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active.Get(codePtr)
}

// Count reports how many callback closures are currently live.
func (m *CallbackManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active.Count()
}
