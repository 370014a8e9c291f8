// Package dispatch turns project-list user intents into service calls and
// local UI state changes.
//
// A Dispatcher is created per picker instance with the service it drives,
// the navigator and notifier of its host, and a component-scoped logger:
//
//	d := dispatch.New(svc, host, host, dispatch.WithLogger(logging.Component("projectList")))
//	err := d.Dispatch(ctx, dispatch.ActionDelete, dispatch.Payload{Key: key})
//
// # Actions
//
//	open      set the project current, then reset the host to its loading view
//	delete    delete the project (the host asks for confirmation first)
//	editor    open the project in the external editor
//	edit      show the edit modal prefilled with the payload (synchronous)
//	progress  switch the host to the progress view for the key (synchronous)
//
// Only editor failures are handled locally: they become an error
// notification and Dispatch returns nil. Open failures are returned to the
// caller untouched. Delete and edit-submit failures produce an error
// notification and are also returned.
//
// Dispatches are independent. Two concurrent deletes of the same key both
// reach the service; nothing is cancelled once issued.
package dispatch
