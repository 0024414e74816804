// Package core contains the domain records and value helpers shared by every
// scheduling component: titles, members, loan events, reservations, settings,
// and the whole-day date arithmetic that reservation rules operate on.
//
// Everything in this package is plain data and pure functions. Persistence,
// queueing and orchestration live in their own packages.
package core
