package mocks

import (
	"os"
	"sort"
)

// MockStorage keeps program files in memory
type MockStorage struct {
	Data     map[string][]byte
	ReadErr  error
	WriteErr error
}

// NewMockStorage returns an empty drive
func NewMockStorage() *MockStorage {
	return &MockStorage{Data: make(map[string][]byte)}
}

func (ms *MockStorage) ReadFile(name string) ([]byte, error) {
	if ms.ReadErr != nil {
		return nil, ms.ReadErr
	}
	data, ok := ms.Data[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (ms *MockStorage) WriteFile(name string, data []byte) error {
	if ms.WriteErr != nil {
		return ms.WriteErr
	}
	if ms.Data == nil {
		ms.Data = make(map[string][]byte)
	}
	ms.Data[name] = append([]byte(nil), data...)
	return nil
}

func (ms *MockStorage) Files() ([]string, error) {
	if ms.ReadErr != nil {
		return nil, ms.ReadErr
	}
	names := make([]string, 0, len(ms.Data))
	for name := range ms.Data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
