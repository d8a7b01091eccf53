package ecs

// System is one step of a tick. Systems may declare Query and Singleton
// fields; the Scheduler binds them on Register.
type System interface {
	Execute(frame *UpdateFrame)
}
