package agent

import (
	"fmt"
	"reflect"
	"sync"
)

// Type represents a specific type of a policy Config. Config's with
// this type create Policies of the corresponding type.
type Type string

const (
	Random Type = "Random"
	Fixed  Type = "Fixed"
)

// Registered types with the package. Once a Type has been registered
// with this map, a TypedConfig with that type can be deserialized.
//
// No Type's are registered with this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var (
	registeredTypes = make(map[Type]reflect.Type)
	registerLock    sync.RWMutex
)

// Register registers a policy's Type with a concrete Config type so
// that upon deserialization of a TypedConfig, Configs of type
// policyType are deserialized into the concrete type of config.
//
// Register panics if policyType is already registered.
func Register(policyType Type, config Config) {
	registerLock.Lock()
	defer registerLock.Unlock()

	if _, ok := registeredTypes[policyType]; ok {
		panic(fmt.Sprintf("register: type %v already registered", policyType))
	}
	registeredTypes[policyType] = reflect.TypeOf(config)
}

// Registered returns whether a Type has been registered
func Registered(policyType Type) bool {
	registerLock.RLock()
	defer registerLock.RUnlock()

	_, ok := registeredTypes[policyType]
	return ok
}

// newConfig returns a pointer to a new zero Config of the concrete
// type registered with policyType
func newConfig(policyType Type) (reflect.Value, error) {
	registerLock.RLock()
	defer registerLock.RUnlock()

	ty, ok := registeredTypes[policyType]
	if !ok {
		return reflect.Value{}, fmt.Errorf("no such policy type %q",
			policyType)
	}
	return reflect.New(ty), nil
}
