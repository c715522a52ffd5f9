// MIT License

// Copyright (c) 2023 anagilda

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package mobilestore

import (
	"context"
	"fmt"
	"sync"
)

// CatalogStore the persistence boundary of the pipeline
// Phones are keyed by model, companies by name, both natural keys
// The pipeline only creates records, it never updates or deletes
type CatalogStore interface {
	// PhoneExists existence check by model
	PhoneExists(ctx context.Context, model string) (bool, error)

	// CompanyIDByName company lookup by natural key
	CompanyIDByName(ctx context.Context, name string) (int64, bool, error)

	// CreateCompany create one company, reusing the existing identity
	// when another writer won the race
	CreateCompany(ctx context.Context, name string) (int64, error)

	// SavePhone persist one record, company creation happens before the
	// phone insert within the same transaction
	SavePhone(ctx context.Context, record *PhoneRecord) error

	// Close release the catalog connection
	Close(ctx context.Context) error
}

// MemoryStore an in-memory catalog holding the same invariants as the
// relational one, used offline and in tests
type MemoryStore struct {
	mu        sync.Mutex
	phones    map[string]*PhoneRecord
	companies map[string]int64
	lastID    int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		phones:    map[string]*PhoneRecord{},
		companies: map[string]int64{},
	}
}

func (s *MemoryStore) PhoneExists(_ context.Context, model string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.phones[model]
	return ok, nil
}

func (s *MemoryStore) CompanyIDByName(_ context.Context, name string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.companies[name]
	return id, ok, nil
}

func (s *MemoryStore) CreateCompany(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.companies[name]; ok {
		return id, nil
	}
	s.lastID++
	s.companies[name] = s.lastID
	return s.lastID, nil
}

func (s *MemoryStore) SavePhone(ctx context.Context, record *PhoneRecord) error {
	if _, err := s.CreateCompany(ctx, record.Manufacturer); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.phones[record.Model]; ok {
		return fmt.Errorf("%s: %w", record.Model, ErrDuplicateRecord)
	}
	saved := *record
	s.phones[record.Model] = &saved
	return nil
}

// Phone fetch one stored record by model, test helper
func (s *MemoryStore) Phone(model string) (*PhoneRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.phones[model]
	return record, ok
}

// Companies number of stored companies, test helper
func (s *MemoryStore) Companies() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.companies)
}

func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}
