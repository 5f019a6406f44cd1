package services

import (
	"sync"

	"github.com/etkecc/go-kit"
	"golang.org/x/exp/slices"
)

// Blocklist service, static part comes from the config, dynamic part is managed in runtime
type Blocklist struct {
	mu      *sync.Mutex
	cfg     ConfigService
	dynamic map[string]struct{}
}

// NewBlocklist creates new blocklist service
func NewBlocklist(cfg ConfigService) *Blocklist {
	return &Blocklist{
		mu:      &sync.Mutex{},
		cfg:     cfg,
		dynamic: map[string]struct{}{},
	}
}

// Len of the blocklist
func (b *Blocklist) Len() int {
	return len(b.Slice())
}

// Slice returns sorted slice of the static+dynamic blocklist
func (b *Blocklist) Slice() []string {
	b.mu.Lock()
	ips := kit.Uniq(append(kit.MapKeys(b.dynamic), b.cfg.Get().Blocklist.IPs...))
	b.mu.Unlock()

	slices.Sort(ips)
	return ips
}

// Add IP to the dynamic blocklist
func (b *Blocklist) Add(ip string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.dynamic[ip] = struct{}{}
}

// Remove IP from the dynamic blocklist. Static IPs can be removed only from the config
func (b *Blocklist) Remove(ip string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.dynamic, ip)
}

// Has checks if IP is present in the blocklist
func (b *Blocklist) Has(ip string) bool {
	if slices.Contains(b.cfg.Get().Blocklist.IPs, ip) {
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.dynamic[ip]
	return ok
}
