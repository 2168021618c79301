package session

import "time"

// Timer es la porción de *time.Timer que usa el manager; interfaz mínima para
// poder inyectar un reloj falso en tests.
type Timer interface {
	Stop() bool
}

// Clock abstrae el reloj de pared y la programación de callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock devuelve el reloj del sistema.
func RealClock() Clock { return realClock{} }
