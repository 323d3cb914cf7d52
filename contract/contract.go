//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"svc-mute/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// MuteChecker answers whether a subject currently has an active mute.
// "Unknown subject" and "no active record" are both false.
// Implementations never report failures: any error resolves to false.
type MuteChecker interface {
	IsMuted(ctx context.Context, subject domain.Subject) bool
}

// Probe reports which backends the host environment provides.
// It is only queried while the integration manager is built.
type Probe interface {
	PluginPresent(name string) bool
	PluginEnabled(name string) bool
}

// Presence tells whether a subject is connected, and from which address.
type Presence interface {
	Lookup(subject domain.Subject) (domain.Session, bool)
}

// OverridePersistence stores local overrides across restarts.
type OverridePersistence interface {
	Load(ctx context.Context) ([]domain.OverrideEntry, error)
	Save(ctx context.Context, entry domain.OverrideEntry) error
	Delete(ctx context.Context, subject domain.Subject) error
}
