// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by inbound
// adapters. Host ports describe the event objects the host event system hands
// to the drag-and-drop protocol.
package ports
