package service

import (
	"fmt"
	"slices"
	"sync"
)

// Hub owns the shell's services and runs their lifecycle in dependency order
type Hub struct {
	mu       sync.RWMutex
	services map[string]Service
	args     map[string][]any
	sorted   []string // dependency order, computed on InitAll
	inited   []string
	started  []string
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		services: make(map[string]Service),
		args:     make(map[string][]any),
	}
}

// Register adds a service with the args its Init will receive
func (h *Hub) Register(svc Service, args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("service already registered: %s", name)
	}
	h.services[name] = svc
	h.args[name] = args
	h.sorted = nil
	return nil
}

// Get retrieves a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	svc, ok := h.services[name]
	return svc, ok
}

// Lookup retrieves a service by name typed as T
func Lookup[T any](h *Hub, name string) (T, error) {
	var zero T
	svc, ok := h.Get(name)
	if !ok {
		return zero, fmt.Errorf("service not found: %s", name)
	}
	typed, ok := svc.(T)
	if !ok {
		return zero, fmt.Errorf("service %s: type mismatch, got %T", name, svc)
	}
	return typed, nil
}

// InitAll calls Init on every service in dependency order
// On failure, already initialized services are stopped in reverse order
func (h *Hub) InitAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sorted == nil {
		order, err := h.topologicalSort()
		if err != nil {
			return err
		}
		h.sorted = order
	}

	h.inited = nil
	for _, name := range h.sorted {
		if err := h.services[name].Init(h.args[name]...); err != nil {
			for i := len(h.inited) - 1; i >= 0; i-- {
				_ = h.services[h.inited[i]].Stop()
			}
			h.inited = nil
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		h.inited = append(h.inited, name)
	}
	return nil
}

// StartAll calls Start on every service in dependency order
// On failure, every initialized service is stopped in reverse order
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.started = nil
	for _, name := range h.sorted {
		if err := h.services[name].Start(); err != nil {
			for i := len(h.inited) - 1; i >= 0; i-- {
				_ = h.services[h.inited[i]].Stop()
			}
			h.started = nil
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll stops every initialized service in reverse dependency order
// Errors are collected and the first is returned after all services are stopped
func (h *Hub) StopAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var firstErr error
	for i := len(h.inited) - 1; i >= 0; i-- {
		if err := h.services[h.inited[i]].Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("service %s stop failed: %w", h.inited[i], err)
		}
	}
	h.inited, h.started = nil, nil
	return firstErr
}

// Order returns the dependency order computed by the last InitAll
func (h *Hub) Order() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.sorted)
}

// topologicalSort computes Init order with Kahn's algorithm
// Ties are broken by name so the order is stable across runs
func (h *Hub) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(h.services))
	dependents := make(map[string][]string)

	for name := range h.services {
		inDegree[name] = 0
	}
	for name, svc := range h.services {
		for _, dep := range svc.Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return nil, fmt.Errorf("service %s depends on unregistered service: %s", name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	slices.Sort(queue)

	var result []string
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, name)

		next := dependents[name]
		slices.Sort(next)
		for _, dependent := range next {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(h.services) {
		return nil, fmt.Errorf("circular dependency detected in services")
	}
	return result, nil
}
