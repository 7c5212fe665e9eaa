package session

import (
	"sync"
)

var _ kvStore = &kvStoreMock{}

type kvStoreMock struct {
	GetFunc          func(key string) ([]byte, error)
	SetFunc          func(key string, value []byte) error
	DeleteFunc       func(key string) error
	DeletePrefixFunc func(prefix string) error

	calls struct {
		Get []struct {
			Key string
		}
		Set []struct {
			Key   string
			Value []byte
		}
		Delete []struct {
			Key string
		}
		DeletePrefix []struct {
			Prefix string
		}
	}
	lockGet          sync.RWMutex
	lockSet          sync.RWMutex
	lockDelete       sync.RWMutex
	lockDeletePrefix sync.RWMutex
}

func (mock *kvStoreMock) Get(key string) ([]byte, error) {
	if mock.GetFunc == nil {
		panic("kvStoreMock.GetFunc: method is nil but kvStore.Get was just called")
	}
	callInfo := struct {
		Key string
	}{Key: key}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(key)
}

func (mock *kvStoreMock) GetCalls() []struct {
	Key string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *kvStoreMock) Set(key string, value []byte) error {
	if mock.SetFunc == nil {
		panic("kvStoreMock.SetFunc: method is nil but kvStore.Set was just called")
	}
	callInfo := struct {
		Key   string
		Value []byte
	}{Key: key, Value: value}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(key, value)
}

func (mock *kvStoreMock) SetCalls() []struct {
	Key   string
	Value []byte
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

func (mock *kvStoreMock) Delete(key string) error {
	if mock.DeleteFunc == nil {
		panic("kvStoreMock.DeleteFunc: method is nil but kvStore.Delete was just called")
	}
	callInfo := struct {
		Key string
	}{Key: key}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(key)
}

func (mock *kvStoreMock) DeleteCalls() []struct {
	Key string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *kvStoreMock) DeletePrefix(prefix string) error {
	if mock.DeletePrefixFunc == nil {
		panic("kvStoreMock.DeletePrefixFunc: method is nil but kvStore.DeletePrefix was just called")
	}
	callInfo := struct {
		Prefix string
	}{Prefix: prefix}
	mock.lockDeletePrefix.Lock()
	mock.calls.DeletePrefix = append(mock.calls.DeletePrefix, callInfo)
	mock.lockDeletePrefix.Unlock()
	return mock.DeletePrefixFunc(prefix)
}

func (mock *kvStoreMock) DeletePrefixCalls() []struct {
	Prefix string
} {
	mock.lockDeletePrefix.RLock()
	calls := mock.calls.DeletePrefix
	mock.lockDeletePrefix.RUnlock()
	return calls
}
